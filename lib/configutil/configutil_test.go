package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name    string            `json:"name"`
	Years   int               `json:"years"`
	Verbose bool              `json:"verbose"`
	Extra   map[string]string `json:"extra"`
}

func write(t *testing.T, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
}

func TestLocalPath(t *testing.T) {
	require.Equal(t, "a/b/config.local.json5", LocalPath("a/b/config.json5"))
	require.Equal(t, "config.local", LocalPath("config"))
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json5")

	_, err := ReadConfig[testConfig](path)
	require.ErrorIs(t, err, os.ErrNotExist)

	write(t, path, `{
		// comments and trailing commas are allowed
		name: "roster",
		years: 12,
		extra: {"Pa.": "PA"},
	}`)
	cfg, err := ReadConfig[testConfig](path)
	require.NoError(t, err)
	require.Equal(t, testConfig{Name: "roster", Years: 12, Extra: map[string]string{"Pa.": "PA"}}, cfg)

	write(t, filepath.Join(dir, "config.local.json5"), `{years: 3, verbose: true, extra: {"Ont.": "ON"}}`)
	cfg, err = ReadConfig[testConfig](path)
	require.NoError(t, err)
	require.Equal(t, "roster", cfg.Name)
	require.Equal(t, 3, cfg.Years)
	require.True(t, cfg.Verbose)
	require.Equal(t, "ON", cfg.Extra["Ont."])
}

func TestReadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json5")
	write(t, path, `{name: `)

	_, err := ReadConfig[testConfig](path)
	require.Error(t, err)
	require.NotErrorIs(t, err, os.ErrNotExist)
}

func TestReadRecursively(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0777))
	write(t, filepath.Join(root, "telemetry.json5"), `{name: "found"}`)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() {
		os.Chdir(wd)
	})

	cfg, err := ReadRecursively[testConfig]("telemetry.json5")
	require.NoError(t, err)
	require.Equal(t, "found", cfg.Name)

	_, err = ReadRecursively[testConfig]("missing-file-for-test.json5")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWithDefaults(t *testing.T) {
	cfg, err := WithDefaults(
		testConfig{Name: "custom"},
		testConfig{Name: "default", Years: 12},
	)
	require.NoError(t, err)
	require.Equal(t, testConfig{Name: "custom", Years: 12}, cfg)
}
