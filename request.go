package skyflow

import (
	"net/http"
	"net/url"
	"strconv"
)

// subRequest is one outbound call of a client operation. index ties it to
// the record group it was built from.
type subRequest struct {
	index  int
	method string
	url    string
	body   any
}

// insertCreate creates one record inside a bulk insert.
type insertCreate struct {
	Method    string         `json:"method"`
	TableName string         `json:"tableName"`
	Fields    map[string]any `json:"fields"`
	Quorum    bool           `json:"quorum"`
}

// insertRead reads back the tokens of a record created earlier in the same
// bulk request. ID is a deferred reference resolved by the vault.
type insertRead struct {
	Method       string `json:"method"`
	TableName    string `json:"tableName"`
	ID           string `json:"ID"`
	Tokenization bool   `json:"tokenization"`
}

type insertBody struct {
	Records []any `json:"records"`
}

// responseReference returns the deferred reference to the skyflow_id
// created by the n-th request of a bulk call.
func responseReference(n int) string {
	return "$responses." + strconv.Itoa(n) + ".records.0.skyflow_id"
}

// buildInsertBody builds the bulk insert payload: every create first, then,
// if tokens are requested, one read per record in the same order.
func buildInsertBody(records []insertRecord, tokens bool) *insertBody {
	body := &insertBody{Records: make([]any, 0, 2*len(records))}
	for _, rec := range records {
		body.Records = append(body.Records, insertCreate{
			Method:    http.MethodPost,
			TableName: rec.Table,
			Fields:    rec.Fields,
			Quorum:    true,
		})
	}
	if tokens {
		for i, rec := range records {
			body.Records = append(body.Records, insertRead{
				Method:       http.MethodGet,
				TableName:    rec.Table,
				ID:           responseReference(i),
				Tokenization: true,
			})
		}
	}
	return body
}

// buildGetByIDRequests builds one GET per record group; all ids of a group
// travel in the same request.
func buildGetByIDRequests(base string, groups []RecordGroup) []subRequest {
	reqs := make([]subRequest, 0, len(groups))
	for _, g := range groups {
		q := url.Values{}
		for _, id := range g.IDs {
			q.Add("skyflow_ids", id)
		}
		q.Set("redaction", string(g.Redaction))
		reqs = append(reqs, subRequest{
			index:  g.Index,
			method: http.MethodGet,
			url:    base + "/" + url.PathEscape(g.Table) + "?" + q.Encode(),
		})
	}
	return reqs
}

type detokenizeParam struct {
	Token     string        `json:"token"`
	Redaction RedactionType `json:"redaction"`
}

type detokenizeBody struct {
	DetokenizationParameters []detokenizeParam `json:"detokenizationParameters"`
}

// buildDetokenizeRequests builds one POST per record group carrying every
// token of the group.
func buildDetokenizeRequests(base string, groups []RecordGroup) []subRequest {
	reqs := make([]subRequest, 0, len(groups))
	for _, g := range groups {
		body := detokenizeBody{DetokenizationParameters: make([]detokenizeParam, 0, len(g.IDs))}
		for _, token := range g.IDs {
			body.DetokenizationParameters = append(body.DetokenizationParameters, detokenizeParam{
				Token:     token,
				Redaction: g.Redaction,
			})
		}
		reqs = append(reqs, subRequest{
			index:  g.Index,
			method: http.MethodPost,
			url:    base + "/detokenize",
			body:   body,
		})
	}
	return reqs
}
