package skyflow

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-openapi/runtime"
)

// Insert creates records in the vault with a single bulk request.
//
// data must hold a "records" list; each record names a "table" and a
// "fields" map. With opts.Tokens set, the response also carries the tokens
// of every inserted field.
//
//	resp, err := client.Insert(ctx, map[string]any{
//	    "records": []any{
//	        map[string]any{
//	            "table":  "cards",
//	            "fields": map[string]any{"card_number": "4111111111111111"},
//	        },
//	    },
//	}, skyflow.InsertOptions{Tokens: true})
func (c *Client) Insert(ctx context.Context, data map[string]any, opts InsertOptions) (*InsertResponse, error) {
	records, err := validateInsert(data)
	if err != nil {
		return nil, err
	}
	log := c.logger().WithValues("operation", "insert", "vaultID", c.vaultID)

	token, err := c.tokens.Token()
	if err != nil {
		log.Error(err, "token provider failed")
		return nil, err
	}

	ctx, cancel := c.callContext(ctx)
	defer cancel()

	req, err := newJSONRequest(ctx, http.MethodPost, c.vaultBase(), buildInsertBody(records, opts.Tokens))
	if err != nil {
		return nil, err
	}
	req.Header.Set(runtime.HeaderAuthorization, "Bearer "+token)

	log.V(vInfo).Info("inserting records", "records", len(records), "tokens", opts.Tokens)
	payload, err := c.do(req)
	if err != nil {
		log.Error(err, "insert failed")
		return nil, err
	}

	resp, err := convertInsertResponse(records, payload, opts.Tokens)
	if err != nil {
		return nil, newError(CodeResponseNotJSON, http.StatusOK, MsgResponseNotJSON, err, "insert response")
	}
	return resp, nil
}

// convertInsertResponse maps the bulk response back onto the input records.
// responses[i] holds the id created for record i and, when tokens were
// requested, responses[n+i] holds its tokens.
func convertInsertResponse(records []insertRecord, payload any, tokens bool) (*InsertResponse, error) {
	m, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response body has type %s, expected object", typeName(payload))
	}
	responses, ok := m["responses"].([]any)
	if !ok {
		return nil, fmt.Errorf("response has no responses array")
	}
	n := len(records)
	want := n
	if tokens {
		want = 2 * n
	}
	if len(responses) < want {
		return nil, fmt.Errorf("response has %d entries, expected %d", len(responses), want)
	}

	out := &InsertResponse{Records: make([]InsertedRecord, 0, n)}
	for i, rec := range records {
		id, err := createdID(responses[i])
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		inserted := InsertedRecord{Table: rec.Table, SkyflowID: id}
		if tokens {
			entry, ok := responses[n+i].(map[string]any)
			if !ok {
				return nil, fmt.Errorf("record %d: token entry is not an object", i)
			}
			fields, ok := entry["fields"].(map[string]any)
			if !ok {
				return nil, fmt.Errorf("record %d: token entry has no fields", i)
			}
			fields["skyflow_id"] = id
			inserted.Fields = fields
		}
		out.Records = append(out.Records, inserted)
	}
	return out, nil
}

// createdID reads records[0].skyflow_id of one bulk response entry.
func createdID(entry any) (string, error) {
	m, ok := entry.(map[string]any)
	if !ok {
		return "", fmt.Errorf("entry is not an object")
	}
	recs, ok := m["records"].([]any)
	if !ok || len(recs) == 0 {
		return "", fmt.Errorf("entry has no records")
	}
	first, ok := recs[0].(map[string]any)
	if !ok {
		return "", fmt.Errorf("entry record is not an object")
	}
	id, ok := first["skyflow_id"].(string)
	if !ok {
		return "", fmt.Errorf("entry record has no skyflow_id")
	}
	return id, nil
}
