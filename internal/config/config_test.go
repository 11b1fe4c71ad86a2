package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, StrategyDirect, cfg.Validate.CascadeStrategy)
	assert.Equal(t, DefaultConflictWindow, cfg.Validate.MaxDirectConflicts)
	assert.Equal(t, DefaultStringLength, cfg.Types.DefaultStringLength)
	assert.Equal(t, DefaultDecimalPrecision, cfg.Types.DecimalPrecision)
	assert.False(t, cfg.Naming.PreferDescriptive, "descriptive tier is opt-in")
	assert.Contains(t, cfg.Naming.PreserveRoles, "CreatedBy")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`
naming:
  patterns:
    LegacyRef: Legacy
  preserve_roles: [Reviewer]
  prefer_descriptive: true
types:
  default_string_length: 120
validate:
  cascade_strategy: transitive
  max_direct_conflicts: 3
`), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "Legacy", cfg.Naming.Patterns["LegacyRef"])
	assert.Equal(t, []string{"Reviewer"}, cfg.Naming.PreserveRoles)
	assert.True(t, cfg.Naming.PreferDescriptive)
	assert.Equal(t, 120, cfg.Types.DefaultStringLength)
	assert.Equal(t, StrategyTransitive, cfg.Validate.CascadeStrategy)
	assert.Equal(t, 3, cfg.Validate.MaxDirectConflicts)
	// Unset keys still get defaults.
	assert.Equal(t, DefaultDecimalPrecision, cfg.Types.DecimalPrecision)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("MDSCHEMA_VALIDATE__CASCADE_STRATEGY", "transitive")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, StrategyTransitive, cfg.Validate.CascadeStrategy)
}

func TestLoadFlagOverride(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("validate.cascade_strategy", "", "")
	require.NoError(t, flags.Set("validate.cascade_strategy", "transitive"))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, StrategyTransitive, cfg.Validate.CascadeStrategy)
}

func TestLoadRejectsBadSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("validate:\n  cascade_strategy: sideways\n"), 0o644))

	_, err := Load(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cascade_strategy")
}

func TestValidateSettings(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.ValidateSettings())

	cfg.Validate.MaxDirectConflicts = 1
	assert.Error(t, cfg.ValidateSettings())

	cfg = Default()
	cfg.Types.DefaultStringLength = 0
	assert.Error(t, cfg.ValidateSettings())
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileNameAlt), []byte("{}"), 0o644))

	assert.Equal(t, root, FindProjectRoot(nested))
	assert.Equal(t, "", FindProjectRoot(t.TempDir()))
}
