package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blueprint-engine/internal/adapters"
	"blueprint-engine/internal/app"
	"blueprint-engine/internal/types"
	"blueprint-engine/tests/testutil"
)

// TestGoldenResolve heals the sample blueprint and compares the written
// document against a committed golden file. If the golden file does not
// exist yet (first run), it is written so it can be committed.
//
// To update the golden file after an intentional change, delete the
// testdata/golden/ directory and re-run the test.
func TestGoldenResolve(t *testing.T) {
	root := testutil.RepoRoot(t)
	goldenDir := filepath.Join(root, "tests", "integration", "testdata", "golden")

	outDir := t.TempDir()
	outPath := filepath.Join(outDir, "blueprint-healed.yaml")

	service := app.NewService()
	result, err := service.Resolve(t.Context(), app.ResolveRequest{
		BlueprintPath: testutil.FixturePath(t, "blueprint-heal.yaml"),
		OutputPath:    outPath,
	})
	require.NoError(t, err)
	require.Equal(t, outPath, result.OutputPath)

	actual, err := os.ReadFile(outPath)
	require.NoError(t, err)

	goldenPath := filepath.Join(goldenDir, "blueprint-healed.yaml")
	if _, statErr := os.Stat(goldenPath); os.IsNotExist(statErr) {
		// Golden file doesn't exist yet -- write it.
		require.NoError(t, os.MkdirAll(goldenDir, 0o755))
		require.NoError(t, os.WriteFile(goldenPath, actual, 0o644))
		t.Logf("golden file written: %s (commit it)", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Equal(t, string(expected), string(actual),
		"golden mismatch -- delete testdata/golden/ and re-run to regenerate")
}

// TestGoldenResolveStructure verifies the structural properties of the
// healed blueprint independent of exact bytes -- bindings present,
// transformation attached, policy defaulted.
func TestGoldenResolveStructure(t *testing.T) {
	outDir := t.TempDir()
	outPath := filepath.Join(outDir, "blueprint-healed.yaml")

	service := app.NewService()
	result, err := service.Resolve(t.Context(), app.ResolveRequest{
		BlueprintPath: testutil.FixturePath(t, "blueprint-heal.yaml"),
		OutputPath:    outPath,
	})
	require.NoError(t, err)

	healed, err := adapters.NewBlueprintFileAdapter().Load(outPath)
	require.NoError(t, err)

	t.Run("binding generated with transformation", func(t *testing.T) {
		require.Len(t, healed.System.Bindings, 1)
		binding := healed.System.Bindings[0]
		assert.Equal(t, "event_source.output", binding.From.String())
		require.Len(t, binding.To, 1)
		assert.Equal(t, "event_store.input", binding.To[0].String())
		assert.Equal(t, "convert_common_object_schema_to_ItemSchema", binding.Transformation)
	})

	t.Run("policy block defaulted", func(t *testing.T) {
		require.NotNil(t, healed.Policy)
		assert.Equal(t, 3, healed.Policy.Retry.MaxAttempts)
		assert.Equal(t, "exponential", healed.Policy.Retry.Backoff)
	})

	t.Run("single healing round covers everything", func(t *testing.T) {
		assert.Equal(t, 1, result.Attempts)
		assert.Equal(t, 3, result.Operations)
		require.Len(t, result.Rounds, 1)
		kinds := map[types.OperationKind]int{}
		for _, op := range result.Rounds[0].Operations {
			kinds[op.Kind]++
		}
		assert.Equal(t, 1, kinds[types.OperationBindingGenerated])
		assert.Equal(t, 1, kinds[types.OperationTransformationAdded])
		assert.Equal(t, 1, kinds[types.OperationPolicyBlockInserted])
	})

	t.Run("healed document is stable", func(t *testing.T) {
		again, err := service.Resolve(t.Context(), app.ResolveRequest{BlueprintPath: outPath})
		require.NoError(t, err)
		assert.Equal(t, 1, again.Attempts)
		assert.Empty(t, again.Rounds)
	})
}
