package skyflow_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomblancdev/skyflow-go"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "skyflow.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestLoadConfig_File tests reading every field from YAML.
func TestLoadConfig_File(t *testing.T) {
	// Arrange
	path := writeConfig(t, `
vault_id: a1b2c3
vault_url: https://acme.vault.skyflowapis.com
timeout: 45s
max_concurrency: 8
log_level: warn
`)

	// Act
	cfg, err := skyflow.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "a1b2c3", cfg.VaultID)
	assert.Equal(t, "https://acme.vault.skyflowapis.com", cfg.VaultURL)
	assert.Equal(t, "45s", cfg.Timeout)
	assert.Equal(t, 8, cfg.MaxConcurrency)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Len(t, cfg.Options(), 2)
}

// TestLoadConfig_EnvOverrides tests that environment variables win over the
// file.
func TestLoadConfig_EnvOverrides(t *testing.T) {
	// Arrange
	path := writeConfig(t, "vault_id: from-file\nvault_url: https://file.example.com\n")
	t.Setenv(skyflow.EnvVaultID, "from-env")
	t.Setenv(skyflow.EnvLogLevel, "debug")

	// Act
	cfg, err := skyflow.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.VaultID)
	assert.Equal(t, "https://file.example.com", cfg.VaultURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

// TestLoadConfig_Errors tests unreadable and invalid files.
func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") }},
		{"invalid yaml", func(t *testing.T) string { return writeConfig(t, "vault_id: [unterminated") }},
		{"invalid timeout", func(t *testing.T) string { return writeConfig(t, "timeout: soon") }},
		{"invalid log level", func(t *testing.T) string { return writeConfig(t, "log_level: chatty") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := skyflow.LoadConfig(tt.path(t))

			require.Error(t, err)
			assert.Nil(t, cfg)

			var skyErr *skyflow.Error
			require.ErrorAs(t, err, &skyErr)
			assert.Equal(t, skyflow.MsgInvalidConfigFile, skyErr.Reason)
		})
	}
}

// TestNewClientFromFile tests building a working client from a file.
func TestNewClientFromFile(t *testing.T) {
	// Arrange
	defer skyflow.SetLogLevel(skyflow.LogLevelError)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/vaults/file-vault/cards", r.URL.Path)
		mustEncode(w, map[string]any{"records": []any{}})
	}))
	defer server.Close()

	path := writeConfig(t, "vault_id: file-vault\nvault_url: "+server.URL+"\nlog_level: off\n")

	// Act
	client, err := skyflow.NewClientFromFile(path, staticToken)
	require.NoError(t, err)
	_, err = client.GetByID(context.Background(), payload(lookupRecord("cards", skyflow.RedactionDefault, "id1")))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "file-vault", client.VaultID())
	assert.Equal(t, skyflow.LogLevelOff, skyflow.GetLogLevel())
}
