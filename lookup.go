package skyflow

import "context"

// GetByID reads records by skyflow id.
//
// data must hold a "records" list; each record names a "table", a list of
// "ids" and a "redaction" RedactionType. Each record becomes one request,
// and all requests run concurrently.
//
//	resp, err := client.GetByID(ctx, map[string]any{
//	    "records": []any{
//	        map[string]any{
//	            "ids":       []any{"a1", "a2"},
//	            "table":     "pii_fields",
//	            "redaction": skyflow.RedactionPlainText,
//	        },
//	    },
//	})
//
// When every request succeeds the response is returned with a nil error.
// Otherwise the error is an *Error whose Data holds the response: its Code
// is CodePartialSuccess if at least one group succeeded and
// CodeBatchFailure if none did.
func (c *Client) GetByID(ctx context.Context, data map[string]any) (*BatchResponse, error) {
	groups, err := validateLookup(data)
	if err != nil {
		return nil, err
	}
	return c.lookup(ctx, "get_by_id", groups, buildGetByIDRequests(c.vaultBase(), groups), parseGetByID)
}

// Detokenize resolves tokens back to their values.
//
// The payload has the same shape as for GetByID, with tokens in "ids". The
// table of each record is kept on the returned records; the redaction is
// applied to every token of the record. Error reporting follows GetByID.
func (c *Client) Detokenize(ctx context.Context, data map[string]any) (*BatchResponse, error) {
	groups, err := validateLookup(data)
	if err != nil {
		return nil, err
	}
	return c.lookup(ctx, "detokenize", groups, buildDetokenizeRequests(c.vaultBase(), groups), parseDetokenize)
}

// lookup fetches one token, fans the requests out and aggregates the
// results.
func (c *Client) lookup(ctx context.Context, op string, groups []RecordGroup, reqs []subRequest, parse payloadParser) (*BatchResponse, error) {
	log := c.logger().WithValues("operation", op, "vaultID", c.vaultID)

	token, err := c.tokens.Token()
	if err != nil {
		log.Error(err, "token provider failed")
		return nil, err
	}

	ctx, cancel := c.callContext(ctx)
	defer cancel()

	log.V(vInfo).Info("dispatching batch", "groups", len(groups))
	results := c.dispatch(ctx, token, reqs)

	resp, err := batchOutcome(aggregate(groups, results, parse))
	if err != nil {
		skyErr := err.(*Error)
		if skyErr.Code == CodePartialSuccess {
			log.V(vWarn).Info("batch partially failed", "succeeded", len(skyErr.Data.Records), "failed", len(skyErr.Data.Errors))
		} else {
			log.Error(err, "batch failed", "failed", len(skyErr.Data.Errors))
		}
		return nil, err
	}
	log.V(vInfo).Info("batch completed", "groups", len(resp.Records))
	return resp, nil
}
