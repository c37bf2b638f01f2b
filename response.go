package skyflow

import (
	"bytes"
	"io"
	"net/http"
	"net/url"

	"github.com/go-openapi/runtime"
)

// maxErrorBodySize limits the size of error response bodies read from the
// server. 4KB is enough for any vault error message.
const maxErrorBodySize = 4096

// requestIDHeader carries the vault's trace id.
const requestIDHeader = "x-request-id"

// do sends req and normalizes the response. The returned error is always an
// *Error.
func (c *Client) do(req *http.Request) (any, error) {
	req.Header.Set("User-Agent", c.userAgent)
	if req.Header.Get(runtime.HeaderAccept) == "" {
		req.Header.Set(runtime.HeaderAccept, runtime.JSONMime)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		return nil, newError(CodeRequestFailed, 0, MsgRequestFailed, err, redactURL(req.URL))
	}
	defer func() { _ = resp.Body.Close() }()

	return processResponse(resp)
}

// processResponse decodes a 2xx JSON body, or turns anything else into an
// *Error. The message of an API error is taken from the body's
// error.message when present, and the request id header is appended to it.
func processResponse(resp *http.Response) (any, error) {
	status := resp.StatusCode

	if status >= 200 && status < 300 {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, newError(CodeRequestFailed, status, MsgRequestFailed, err, responseURL(resp))
		}
		if len(bytes.TrimSpace(body)) == 0 {
			return nil, nil
		}
		var payload any
		if err := runtime.JSONConsumer().Consume(bytes.NewReader(body), &payload); err != nil {
			return nil, newError(CodeResponseNotJSON, status, MsgResponseNotJSON, err, string(body))
		}
		return payload, nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))

	reason := MsgAPIError
	message := MsgAPIError.Format(status)
	if len(bytes.TrimSpace(body)) > 0 {
		var parsed any
		if err := runtime.JSONConsumer().Consume(bytes.NewReader(body), &parsed); err != nil {
			reason = MsgResponseNotJSON
			message = MsgResponseNotJSON.Format(string(body))
		} else if msg, ok := errorMessage(parsed); ok {
			message = msg
		}
	}
	if id := resp.Header.Get(requestIDHeader); id != "" {
		message += " - request id: " + id
	}

	return nil, &Error{
		Code:    CodeAPIError,
		Reason:  reason,
		Message: message,
		Status:  status,
	}
}

// errorMessage extracts error.message from a decoded vault error body.
func errorMessage(body any) (string, bool) {
	m, ok := body.(map[string]any)
	if !ok {
		return "", false
	}
	e, ok := m["error"].(map[string]any)
	if !ok {
		return "", false
	}
	msg, ok := e["message"].(string)
	return msg, ok
}

func responseURL(resp *http.Response) string {
	if resp.Request == nil {
		return ""
	}
	return redactURL(resp.Request.URL)
}

// redactURL strips the query string, which may carry ids or tokens, from
// URLs quoted in error messages.
func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	clean := *u
	clean.RawQuery = ""
	clean.User = nil
	return clean.String()
}
