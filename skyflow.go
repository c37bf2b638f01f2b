// Package skyflow provides a Go client for Skyflow data vaults.
//
// The client inserts sensitive records, reads them back by id, resolves
// tokens and proxies calls to third parties through the vault gateway.
//
// # Installation
//
//	go get github.com/tomblancdev/skyflow-go
//
// # Quick Start
//
//	client, err := skyflow.NewClient(skyflow.Configuration{
//	    VaultID:  "a1b2c3",
//	    VaultURL: "https://acme.vault.skyflowapis.com",
//	    TokenProvider: func() (string, error) {
//	        return mintBearerToken()
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := client.Detokenize(ctx, map[string]any{
//	    "records": []any{
//	        map[string]any{
//	            "ids":       []any{"4017-f72b-4f5c-9b-8e719"},
//	            "table":     "cards",
//	            "redaction": skyflow.RedactionPlainText,
//	        },
//	    },
//	})
//
// # Batches and Partial Failures
//
// Detokenize and GetByID send one request per input record, concurrently,
// and wait for all of them. The outcome is one of three:
//
//   - every request succeeded: the *BatchResponse is returned, err is nil;
//   - some requests failed: err is an *Error with Code CodePartialSuccess;
//   - every request failed: err is an *Error with Code CodeBatchFailure.
//
// In both failure cases Error.Data holds the *BatchResponse, with the
// successful groups in Records and the failed ones, including their ids, in
// Errors:
//
//	resp, err := client.GetByID(ctx, data)
//	var skyErr *skyflow.Error
//	if errors.As(err, &skyErr) && skyErr.Data != nil {
//	    resp = skyErr.Data
//	    for _, failed := range resp.Errors {
//	        log.Printf("group %d (%v): %s", failed.Index, failed.IDs, failed.Error.Description)
//	    }
//	}
//
// # Logging
//
// The SDK logs through [github.com/go-logr/logr]. By default only errors
// are written to stderr; use [SetLogLevel] or [WithLogger] to change that.
//
// # Thread Safety
//
// The [Client] is safe for concurrent use by multiple goroutines.
package skyflow
