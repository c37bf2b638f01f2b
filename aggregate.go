package skyflow

import (
	"fmt"
	"net/http"
)

// payloadParser turns the decoded payload of a successful sub-request into
// the records of its group.
type payloadParser func(g RecordGroup, payload any) ([]Record, error)

// aggregate merges the outcomes of a lookup batch. Every group ends up in
// exactly one of Records or Errors, both ordered by group index.
func aggregate(groups []RecordGroup, results []subResult, parse payloadParser) *BatchResponse {
	byIndex := make(map[int]RecordGroup, len(groups))
	for _, g := range groups {
		byIndex[g.Index] = g
	}

	resp := &BatchResponse{
		Records: make([]GroupResult, 0, len(results)),
	}
	for _, res := range results {
		g := byIndex[res.index]

		if res.ok() {
			records, err := parse(g, res.payload)
			if err == nil {
				resp.Records = append(resp.Records, GroupResult{
					Index:   g.Index,
					Table:   g.Table,
					Records: records,
				})
				continue
			}
			res.err = newError(CodeResponseNotJSON, http.StatusOK, MsgResponseNotJSON, err, fmt.Sprintf("for record %d", g.Index))
		}

		resp.Errors = append(resp.Errors, ErrorRecord{
			Index: g.Index,
			IDs:   append([]string(nil), g.IDs...),
			Error: ErrorDetail{
				Code:        res.err.Status,
				Description: res.err.Message,
			},
		})
	}
	return resp
}

// batchOutcome applies the three-way policy: all success returns the
// response, all failure a CodeBatchFailure error and anything in between a
// CodePartialSuccess error. Both errors carry the full response.
func batchOutcome(resp *BatchResponse) (*BatchResponse, error) {
	switch {
	case len(resp.Errors) == 0:
		return resp, nil
	case len(resp.Records) == 0:
		return nil, &Error{
			Code:    CodeBatchFailure,
			Reason:  MsgBatchFailure,
			Message: MsgBatchFailure.Format(),
			Status:  http.StatusInternalServerError,
			Data:    resp,
		}
	default:
		return nil, &Error{
			Code:    CodePartialSuccess,
			Reason:  MsgPartialSuccess,
			Message: MsgPartialSuccess.Format(),
			Status:  http.StatusInternalServerError,
			Data:    resp,
		}
	}
}

// IsPartial reports whether the response mixes successes and failures.
func (r *BatchResponse) IsPartial() bool {
	return len(r.Errors) > 0 && len(r.Records) > 0
}

// FailedGroups returns the indexes of the groups that failed, in order.
func (r *BatchResponse) FailedGroups() []int {
	out := make([]int, 0, len(r.Errors))
	for _, e := range r.Errors {
		out = append(out, e.Index)
	}
	return out
}

// payloadRecords returns the "records" array of a decoded response.
func payloadRecords(payload any) ([]map[string]any, error) {
	m, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response body has type %s, expected object", typeName(payload))
	}
	raw, ok := m["records"].([]any)
	if !ok {
		return nil, fmt.Errorf("response has no records array")
	}
	out := make([]map[string]any, 0, len(raw))
	for i, item := range raw {
		rec, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("response record %d has type %s, expected object", i, typeName(item))
		}
		out = append(out, rec)
	}
	return out, nil
}

// parseGetByID reads {"records": [{"fields": {...}}]} bodies.
func parseGetByID(g RecordGroup, payload any) ([]Record, error) {
	raw, err := payloadRecords(payload)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(raw))
	for i, rec := range raw {
		fields, ok := rec["fields"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("response record %d has no fields", i)
		}
		records = append(records, Record{Table: g.Table, Fields: fields})
	}
	return records, nil
}

// parseDetokenize reads {"records": [{"token": ..., "value": ...}]} bodies.
func parseDetokenize(g RecordGroup, payload any) ([]Record, error) {
	raw, err := payloadRecords(payload)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(raw))
	for _, rec := range raw {
		fields := map[string]any{
			"token": rec["token"],
			"value": rec["value"],
		}
		if vt, ok := rec["valueType"]; ok {
			fields["valueType"] = vt
		}
		records = append(records, Record{Table: g.Table, Fields: fields})
	}
	return records, nil
}
