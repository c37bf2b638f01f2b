package skyflow

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"

	"github.com/go-openapi/runtime"
	"github.com/go-openapi/swag"
	"golang.org/x/sync/errgroup"
)

// subResult is the captured outcome of one subRequest: either a decoded
// payload or an error, never both.
type subResult struct {
	index   int
	payload any
	err     *Error
}

func (r subResult) ok() bool {
	return r.err == nil
}

// dispatch runs every request concurrently and waits for all of them. A
// failing request never stops its siblings; each outcome lands in its own
// slot, so results[i] always belongs to reqs[i].
func (c *Client) dispatch(ctx context.Context, token string, reqs []subRequest) []subResult {
	results := make([]subResult, len(reqs))

	var g errgroup.Group
	if c.maxConcurrency > 0 {
		g.SetLimit(c.maxConcurrency)
	}
	for i, req := range reqs {
		g.Go(func() error {
			results[i] = c.execute(ctx, token, req)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// execute performs a single sub-request and captures its outcome.
func (c *Client) execute(ctx context.Context, token string, req subRequest) (res subResult) {
	res.index = req.index
	defer func() {
		if r := recover(); r != nil {
			res.payload = nil
			res.err = newError(CodeRequestFailed, 0, MsgRequestFailed,
				fmt.Errorf("panic in sub-request: %v\n%s", r, debug.Stack()), req.url)
		}
	}()

	httpReq, err := newJSONRequest(ctx, req.method, req.url, req.body)
	if err != nil {
		res.err = asError(err)
		return res
	}
	httpReq.Header.Set(runtime.HeaderAuthorization, "Bearer "+token)

	c.logger().V(vDebug).Info("dispatching sub-request", "index", req.index, "method", req.method, "url", redactURL(httpReq.URL))

	payload, err := c.do(httpReq)
	if err != nil {
		res.err = asError(err)
		c.logger().V(vDebug).Info("sub-request failed", "index", req.index, "status", res.err.Status)
		return res
	}
	res.payload = payload
	return res
}

// newJSONRequest builds a request whose body, if any, is encoded as JSON.
func newJSONRequest(ctx context.Context, method, rawURL string, body any) (*http.Request, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := swag.WriteJSON(body)
		if err != nil {
			return nil, invalidInput(MsgInvalidJSON, err, "request body")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, newError(CodeRequestFailed, 0, MsgRequestFailed, err, rawURL)
	}
	if body != nil {
		req.Header.Set(runtime.HeaderContentType, runtime.JSONMime)
	}
	return req, nil
}

// asError converts err to an *Error, wrapping foreign errors as transport
// failures.
func asError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return newError(CodeRequestFailed, 0, MsgRequestFailed, err, "vault")
}
