package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"blueprint-engine/internal/app"
)

type resolveOptions struct {
	Blueprint   string
	Output      string
	Catalog     string
	Templates   string
	MaxAttempts int
}

func newResolveCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Validate and heal a system blueprint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Blueprint, "blueprint", "", "Blueprint document path")
	cmd.Flags().StringVar(&opts.Output, "output", "", "Healed blueprint output path")
	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "Schema catalog layer path")
	cmd.Flags().StringVar(&opts.Templates, "templates", "", "Port template layer path")
	cmd.Flags().IntVar(&opts.MaxAttempts, "max-attempts", 0, "Healing attempt budget (default 4)")
	_ = viper.BindPFlag("blueprint", cmd.Flags().Lookup("blueprint"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("catalog", cmd.Flags().Lookup("catalog"))
	_ = viper.BindPFlag("templates", cmd.Flags().Lookup("templates"))
	_ = viper.BindPFlag("max_attempts", cmd.Flags().Lookup("max-attempts"))
	return cmd
}

func runResolve(ctx context.Context, cmd *cobra.Command, opts resolveOptions) error {
	service := app.NewService()
	result, err := service.Resolve(ctx, app.ResolveRequest{
		BlueprintPath: resolveString(cmd, opts.Blueprint, "blueprint", "blueprint"),
		OutputPath:    resolveString(cmd, opts.Output, "output", "output"),
		CatalogPath:   resolveString(cmd, opts.Catalog, "catalog", "catalog"),
		TemplatesPath: resolveString(cmd, opts.Templates, "templates", "templates"),
		MaxAttempts:   resolveInt(cmd, opts.MaxAttempts, "max_attempts", "max-attempts"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("resolved: %s (%d attempts, %d operations)\n", result.SystemName, result.Attempts, result.Operations)
	for _, delta := range result.RoleDeltas {
		fmt.Printf("role delta: %s\n", delta)
	}
	if result.OutputPath != "" {
		fmt.Printf("healed blueprint written: %s\n", result.OutputPath)
	}
	return nil
}
