package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"blueprint-engine/internal/app"
)

type validateOptions struct {
	Blueprint string
	Catalog   string
	Templates string
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a system blueprint without healing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Blueprint, "blueprint", "", "Blueprint document path")
	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "Schema catalog layer path")
	cmd.Flags().StringVar(&opts.Templates, "templates", "", "Port template layer path")
	_ = viper.BindPFlag("blueprint", cmd.Flags().Lookup("blueprint"))
	_ = viper.BindPFlag("catalog", cmd.Flags().Lookup("catalog"))
	_ = viper.BindPFlag("templates", cmd.Flags().Lookup("templates"))
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, opts validateOptions) error {
	service := app.NewService()
	result, err := service.Validate(ctx, app.ValidateRequest{
		BlueprintPath: resolveString(cmd, opts.Blueprint, "blueprint", "blueprint"),
		CatalogPath:   resolveString(cmd, opts.Catalog, "catalog", "catalog"),
		TemplatesPath: resolveString(cmd, opts.Templates, "templates", "templates"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("valid: %s\n", result.SystemName)
	for _, delta := range result.RoleDeltas {
		fmt.Printf("role delta: %s\n", delta)
	}
	return nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveInt(cmd *cobra.Command, value int, key string, flagName string) int {
	if cmd == nil {
		if value != 0 {
			return value
		}
		return viper.GetInt(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetInt(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
