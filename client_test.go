package skyflow_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomblancdev/skyflow-go"
)

// TestNewClient_InvalidConfiguration tests that initialization rejects
// incomplete configurations.
func TestNewClient_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		cfg     skyflow.Configuration
		reason  skyflow.Message
		message string
	}{
		{
			name:    "missing vault id",
			cfg:     skyflow.Configuration{VaultURL: "https://vault.example.com", TokenProvider: staticToken},
			reason:  skyflow.MsgInitFailed,
			message: "Initialization failed. Invalid Vault ID",
		},
		{
			name:    "missing vault url",
			cfg:     skyflow.Configuration{VaultID: testVaultID, TokenProvider: staticToken},
			reason:  skyflow.MsgInitFailed,
			message: "Initialization failed. Invalid Vault URL",
		},
		{
			name:   "relative vault url",
			cfg:    skyflow.Configuration{VaultID: testVaultID, VaultURL: "vault.example.com", TokenProvider: staticToken},
			reason: skyflow.MsgInvalidVaultURL,
		},
		{
			name:   "non http vault url",
			cfg:    skyflow.Configuration{VaultID: testVaultID, VaultURL: "ftp://vault.example.com", TokenProvider: staticToken},
			reason: skyflow.MsgInvalidVaultURL,
		},
		{
			name:    "missing token provider",
			cfg:     skyflow.Configuration{VaultID: testVaultID, VaultURL: "https://vault.example.com"},
			reason:  skyflow.MsgInitFailed,
			message: "Initialization failed. Invalid Token Provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := skyflow.NewClient(tt.cfg)

			require.Error(t, err)
			assert.Nil(t, client)

			var skyErr *skyflow.Error
			require.ErrorAs(t, err, &skyErr)
			assert.Equal(t, skyflow.CodeInvalidInput, skyErr.Code)
			assert.Equal(t, tt.reason, skyErr.Reason)
			assert.Equal(t, http.StatusBadRequest, skyErr.Status)
			assert.ErrorIs(t, err, skyflow.ErrInvalidInput)
			if tt.message != "" {
				assert.Equal(t, tt.message, skyErr.Message)
			}
		})
	}
}

// TestNewClient_Options tests that client options are applied.
func TestNewClient_Options(t *testing.T) {
	// Arrange
	var userAgent atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent.Store(r.Header.Get("User-Agent"))
		mustEncode(w, map[string]any{"records": []any{}})
	}))
	defer server.Close()

	// Act
	client := newTestClient(t, server.URL+"/",
		skyflow.WithUserAgent("test-agent/1.0"),
		skyflow.WithTimeout(5*time.Second),
		skyflow.WithHTTPClient(&http.Client{}),
		skyflow.WithMaxConcurrency(2),
	)
	_, err := client.GetByID(context.Background(), payload(lookupRecord("cards", skyflow.RedactionPlainText, "id1")))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, testVaultID, client.VaultID())
	assert.Equal(t, "test-agent/1.0", userAgent.Load())
}

// TestNewClient_DefaultUserAgent tests the default User-Agent.
func TestNewClient_DefaultUserAgent(t *testing.T) {
	// Arrange
	var userAgent atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent.Store(r.Header.Get("User-Agent"))
		mustEncode(w, map[string]any{"records": []any{}})
	}))
	defer server.Close()

	// Act
	client := newTestClient(t, server.URL)
	_, err := client.GetByID(context.Background(), payload(lookupRecord("cards", skyflow.RedactionPlainText, "id1")))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "skyflow-go/"+skyflow.Version, userAgent.Load())
}

// TestTokenProvider_Error tests that a failing token provider stops the
// call before any request is sent.
func TestTokenProvider_Error(t *testing.T) {
	// Arrange
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	providerErr := errors.New("credentials file not found")
	client, err := skyflow.NewClient(skyflow.Configuration{
		VaultID:  testVaultID,
		VaultURL: server.URL,
		TokenProvider: func() (string, error) {
			return "", providerErr
		},
	}, skyflow.WithLogger(funcr.New(func(prefix, args string) {}, funcr.Options{})))
	require.NoError(t, err)

	// Act
	resp, err := client.GetByID(context.Background(), payload(lookupRecord("cards", skyflow.RedactionPlainText, "id1")))

	// Assert
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, providerErr)

	var skyErr *skyflow.Error
	require.ErrorAs(t, err, &skyErr)
	assert.Equal(t, skyflow.MsgTokenProviderFailed, skyErr.Reason)
	assert.Zero(t, hits.Load())
}

// TestWithLogger tests that client logs are routed to the given logger.
func TestWithLogger(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		mustEncode(w, map[string]any{"error": map[string]any{"message": "No Records Found"}})
	}))
	defer server.Close()

	var lines []string
	logger := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{Verbosity: 3})

	client := newTestClient(t, server.URL, skyflow.WithLogger(logger), skyflow.WithMaxConcurrency(1))

	// Act
	_, err := client.GetByID(context.Background(), payload(lookupRecord("cards", skyflow.RedactionPlainText, "id1")))

	// Assert
	require.Error(t, err)
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, `"operation"="get_by_id"`)
	assert.Contains(t, joined, "batch failed")
	assert.Contains(t, joined, "dispatching sub-request")
}

// TestSetLogLevel tests the default logger level accessors.
func TestSetLogLevel(t *testing.T) {
	defer skyflow.SetLogLevel(skyflow.LogLevelError)

	assert.Equal(t, skyflow.LogLevelError, skyflow.GetLogLevel())

	skyflow.SetLogLevel(skyflow.LogLevelDebug)
	assert.Equal(t, skyflow.LogLevelDebug, skyflow.GetLogLevel())

	skyflow.SetLogLevel(skyflow.LogLevelOff)
	assert.Equal(t, skyflow.LogLevelOff, skyflow.GetLogLevel())
}

// TestParseLogLevel tests log level names.
func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		level skyflow.LogLevel
		ok    bool
	}{
		{"error", skyflow.LogLevelError, true},
		{"WARN", skyflow.LogLevelWarn, true},
		{"info", skyflow.LogLevelInfo, true},
		{"debug", skyflow.LogLevelDebug, true},
		{"off", skyflow.LogLevelOff, true},
		{"verbose", skyflow.LogLevelError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, ok := skyflow.ParseLogLevel(tt.name)
			assert.Equal(t, tt.level, level)
			assert.Equal(t, tt.ok, ok)
		})
	}
}
