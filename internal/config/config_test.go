package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leandrodaf/midikbd/sdk/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func apply(opts []contracts.Option) contracts.ClientOptions {
	var o contracts.ClientOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"MIDIKBD_ROOT_NOTE", "MIDIKBD_LAYOUT", "MIDIKBD_LOG_LEVEL", "MIDIKBD_LOG_FILE", "MIDIKBD_VELOCITY", "MIDIKBD_CHANNEL"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Config{RootNote: 36, LogLevel: "info", Velocity: 64}, cfg)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MIDIKBD_ROOT_NOTE", "48")
	t.Setenv("MIDIKBD_LOG_LEVEL", "debug")
	t.Setenv("MIDIKBD_VELOCITY", "100")
	t.Setenv("MIDIKBD_CHANNEL", "9")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 48, cfg.RootNote)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 100, cfg.Velocity)
	assert.Equal(t, 9, cfg.Channel)
}

func TestLoadRejectsMalformedEnv(t *testing.T) {
	t.Setenv("MIDIKBD_ROOT_NOTE", "middle-c")

	_, err := Load()
	assert.ErrorIs(t, err, contracts.ErrInvalidOption)
}

func TestLoadLayoutFile(t *testing.T) {
	path := writeFile(t, `
rows:
  - {first: 10, last: 21}
  - {first: 24, last: 35}
exit_combo:
  modifiers: [64]
  terminator: 9
`)

	lf, err := LoadLayoutFile(path)
	require.NoError(t, err)
	assert.Equal(t, []contracts.KeyRange{{First: 10, Last: 21}, {First: 24, Last: 35}}, lf.Rows)
	require.NotNil(t, lf.ExitCombo)
	assert.Equal(t, []int{64}, lf.ExitCombo.Modifiers)
	assert.Equal(t, 9, lf.ExitCombo.Terminator)
}

func TestLoadLayoutFileErrors(t *testing.T) {
	_, err := LoadLayoutFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, contracts.ErrInvalidLayout)

	_, err = LoadLayoutFile(writeFile(t, "rows: [not, a, range"))
	assert.ErrorIs(t, err, contracts.ErrInvalidLayout)

	_, err = LoadLayoutFile(writeFile(t, "rows: []\n"))
	assert.ErrorIs(t, err, contracts.ErrInvalidLayout)
}

func TestConfigOptions(t *testing.T) {
	cfg := Config{
		RootNote: 60,
		LogLevel: "warn",
		Velocity: 90,
		Channel:  2,
		Layout:   writeFile(t, "rows:\n  - {first: 38, last: 48}\n"),
	}

	opts, err := cfg.Options()
	require.NoError(t, err)

	o := apply(opts)
	assert.Equal(t, contracts.WarnLevel, o.LogLevel)
	assert.Equal(t, 60, *o.RootNote)
	assert.Equal(t, 90, o.Velocity)
	assert.Equal(t, 2, o.Channel)
	assert.Equal(t, []contracts.KeyRange{{First: 38, Last: 48}}, o.Rows)
	assert.Nil(t, o.ExitCombo)
}

func TestConfigOptionsErrors(t *testing.T) {
	_, err := Config{LogLevel: "loud", Velocity: 64}.Options()
	assert.ErrorIs(t, err, contracts.ErrInvalidOption)

	_, err = Config{LogLevel: "info", Velocity: 0}.Options()
	assert.ErrorIs(t, err, contracts.ErrInvalidOption)
}
