package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempDir(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefault(t *testing.T) {
	useTempDir(t)
	t.Setenv(BaseURLEnvVar, "")
	t.Setenv(SettingsPathEnvVar, "")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.BaseURL)
}

func TestLoadFromSettingsFile(t *testing.T) {
	useTempDir(t)
	t.Setenv(BaseURLEnvVar, "")
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: http://localhost:5000\n"), 0600))
	t.Setenv(SettingsPathEnvVar, path)

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", c.BaseURL)
}

func TestLoadMissingExplicitSettingsFileFails(t *testing.T) {
	useTempDir(t)
	t.Setenv(SettingsPathEnvVar, filepath.Join(t.TempDir(), "no-such-file.yaml"))

	_, err := Load("")
	require.Error(t, err)
}

func TestLoadMalformedSettingsFileFails(t *testing.T) {
	useTempDir(t)
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: [not, a, string\n"), 0600))
	t.Setenv(SettingsPathEnvVar, path)

	_, err := Load("")
	require.Error(t, err)
}

func TestEnvVarOverridesSettingsFile(t *testing.T) {
	useTempDir(t)
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: http://from-file:5000\n"), 0600))
	t.Setenv(SettingsPathEnvVar, path)
	t.Setenv(BaseURLEnvVar, "http://from-env:5000")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:5000", c.BaseURL)
}

func TestFlagOverridesEverything(t *testing.T) {
	useTempDir(t)
	t.Setenv(BaseURLEnvVar, "http://from-env:5000")

	c, err := Load("http://from-flag:5000")
	require.NoError(t, err)
	assert.Equal(t, "http://from-flag:5000", c.BaseURL)
}

func TestDotEnvFileIsRead(t *testing.T) {
	useTempDir(t)
	t.Setenv(BaseURLEnvVar, "")
	t.Setenv(SettingsPathEnvVar, "")
	require.NoError(t, os.WriteFile(".env", []byte(BaseURLEnvVar+"=http://from-dotenv:5000\n"), 0600))
	// godotenv does not override variables already present in the environment,
	// and t.Setenv set an empty value above, so clear it completely
	require.NoError(t, os.Unsetenv(BaseURLEnvVar))

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://from-dotenv:5000", c.BaseURL)
}

func TestTrailingSlashIsStripped(t *testing.T) {
	useTempDir(t)
	c, err := Load("http://localhost:5000/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", c.BaseURL)
}

func TestMalformedBaseURLFails(t *testing.T) {
	useTempDir(t)
	for _, bad := range []string{"not a url", "ftp://example.com", "/relative/path", "localhost:5000"} {
		t.Run(bad, func(t *testing.T) {
			_, err := Load(bad)
			assert.Error(t, err)
		})
	}
}
