package skyflow_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"

	"github.com/tomblancdev/skyflow-go"
)

const testVaultID = "vault123"

// mustEncode encodes v as JSON and writes it to w.
// Panics on error - safe in tests since errors indicate test bugs.
func mustEncode(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic("failed to encode response: " + err.Error())
	}
}

// mustDecode decodes JSON from r.Body into v.
// Panics on error - safe in tests since errors indicate test bugs.
func mustDecode(r *http.Request, v interface{}) {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		panic("failed to decode request: " + err.Error())
	}
}

// staticToken is a TokenProvider returning a fixed opaque token.
func staticToken() (string, error) {
	return "test-token", nil
}

// newTestClient creates a client bound to serverURL with logging disabled.
func newTestClient(t *testing.T, serverURL string, opts ...skyflow.Option) *skyflow.Client {
	t.Helper()
	opts = append([]skyflow.Option{skyflow.WithLogger(logr.Discard())}, opts...)
	client, err := skyflow.NewClient(skyflow.Configuration{
		VaultID:       testVaultID,
		VaultURL:      serverURL,
		TokenProvider: staticToken,
	}, opts...)
	require.NoError(t, err)
	return client
}

// lookupRecord builds one detokenize/get-by-id input record.
func lookupRecord(table string, redaction skyflow.RedactionType, ids ...string) map[string]any {
	list := make([]any, 0, len(ids))
	for _, id := range ids {
		list = append(list, id)
	}
	return map[string]any{
		"ids":       list,
		"table":     table,
		"redaction": redaction,
	}
}

// payload wraps records into a caller payload.
func payload(records ...map[string]any) map[string]any {
	list := make([]any, 0, len(records))
	for _, r := range records {
		list = append(list, r)
	}
	return map[string]any{"records": list}
}
