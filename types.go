package skyflow

// RedactionType controls how the vault masks sensitive fields it returns.
//
// Lookup records must carry a RedactionType value, not a plain string:
//
//	data := map[string]any{
//	    "records": []any{
//	        map[string]any{
//	            "ids":       []any{"f8d8a622-b557-4c6b-a12c-c5ebe0b0bfd9"},
//	            "table":     "cards",
//	            "redaction": skyflow.RedactionPlainText,
//	        },
//	    },
//	}
type RedactionType string

// Redaction constants.
const (
	RedactionPlainText RedactionType = "PLAIN_TEXT"
	RedactionMasked    RedactionType = "MASKED"
	RedactionRedacted  RedactionType = "REDACTED"
	RedactionDefault   RedactionType = "DEFAULT"
)

// redactionTypes lists every accepted RedactionType.
var redactionTypes = []RedactionType{
	RedactionPlainText,
	RedactionMasked,
	RedactionRedacted,
	RedactionDefault,
}

// RecordGroup is one validated lookup unit: a table, the ids to read from
// it and the redaction to apply. Index is the group's position in the input.
type RecordGroup struct {
	Index     int
	Table     string
	IDs       []string
	Redaction RedactionType
}

// Record is a single record returned by the vault.
type Record struct {
	// Table is the table the record was read from.
	Table string `json:"table"`

	// Fields holds the record's columns. Records read by id always include
	// "skyflow_id"; detokenized records hold "token" and "value".
	Fields map[string]any `json:"fields"`
}

// SkyflowID returns the record's skyflow_id field, or "" when absent.
func (r *Record) SkyflowID() string {
	id, _ := r.Fields["skyflow_id"].(string)
	return id
}

// GroupResult is the successful outcome of one RecordGroup.
type GroupResult struct {
	// Index is the position of the originating group in the input.
	Index int `json:"index"`

	// Table is the originating group's table.
	Table string `json:"table"`

	// Records holds one entry per record returned for the group, in the
	// order the vault returned them.
	Records []Record `json:"records"`
}

// ErrorDetail describes why a sub-request failed.
type ErrorDetail struct {
	// Code is the HTTP status returned by the vault, or 0 when no response
	// was received.
	Code int `json:"code"`

	// Description is the extracted error message.
	Description string `json:"description"`
}

// ErrorRecord is one entry of a batch's error ledger.
type ErrorRecord struct {
	// Index is the position of the originating group in the input.
	Index int `json:"index"`

	// IDs are the ids (or tokens) of the originating group, so that the
	// failed subset can be retried.
	IDs []string `json:"ids"`

	Error ErrorDetail `json:"error"`
}

// BatchResponse is the aggregated result of a multi-group operation.
//
// The same shape is returned on success and carried by the CodePartialSuccess
// and CodeBatchFailure errors.
type BatchResponse struct {
	Records []GroupResult `json:"records"`
	Errors  []ErrorRecord `json:"errors,omitempty"`
}

// InsertOptions configures Insert.
type InsertOptions struct {
	// Tokens requests the tokenized field values of every inserted record.
	Tokens bool
}

// InsertedRecord is one record created by Insert.
type InsertedRecord struct {
	Table     string `json:"table"`
	SkyflowID string `json:"skyflow_id"`

	// Fields holds the tokens of the inserted fields, including
	// "skyflow_id". It is nil unless InsertOptions.Tokens is set.
	Fields map[string]any `json:"fields,omitempty"`
}

// InsertResponse is the result of Insert, in input order.
type InsertResponse struct {
	Records []InsertedRecord `json:"records"`
}

// RequestMethod is an HTTP method accepted by InvokeGateway.
type RequestMethod string

// RequestMethod constants.
const (
	MethodGet    RequestMethod = "GET"
	MethodPost   RequestMethod = "POST"
	MethodPut    RequestMethod = "PUT"
	MethodPatch  RequestMethod = "PATCH"
	MethodDelete RequestMethod = "DELETE"
)

var requestMethods = []RequestMethod{MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete}

// GatewayConfig describes a single passthrough request routed through the
// vault's gateway.
//
//	resp, err := client.InvokeGateway(ctx, &skyflow.GatewayConfig{
//	    URL:    "https://area51.gateway.skyflow.com/v1/gateway/outboundRoutes/abc/cards/{cardID}",
//	    Method: skyflow.MethodPost,
//	    PathParams: map[string]string{"cardID": "4111-1111"},
//	    RequestHeader: map[string]string{"Content-Type": "application/json"},
//	    RequestBody: map[string]any{"expirationDate": map[string]any{"mm": "12", "yy": "22"}},
//	})
type GatewayConfig struct {
	// URL is the gateway route. Path parameters are written as {name}.
	URL string

	// Method is the HTTP method. Required.
	Method RequestMethod

	// PathParams substitutes {name} placeholders of URL.
	PathParams map[string]string

	// QueryParams are appended to the URL. Values may be strings, numbers,
	// booleans or slices of those.
	QueryParams map[string]any

	// RequestHeader is sent verbatim. A Content-Type of
	// application/x-www-form-urlencoded switches body encoding to forms;
	// anything else is sent as JSON.
	RequestHeader map[string]string

	// RequestBody is the request payload; nil sends no body.
	RequestBody any
}
