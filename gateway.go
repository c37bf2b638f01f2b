package skyflow

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/go-openapi/runtime"
	"github.com/go-openapi/swag"
	"github.com/go-openapi/validate"
)

// gatewayAuthHeader carries the raw bearer token on gateway calls.
const gatewayAuthHeader = "X-Skyflow-Authorization"

// InvokeGateway sends one request through the vault gateway and returns
// the decoded JSON response. There is no fan-out and no aggregation; a
// non-2xx response is returned as a CodeAPIError.
func (c *Client) InvokeGateway(ctx context.Context, cfg *GatewayConfig) (any, error) {
	log := c.logger().WithValues("operation", "invoke_gateway", "vaultID", c.vaultID)

	token, err := c.tokens.Token()
	if err != nil {
		log.Error(err, "token provider failed")
		return nil, err
	}

	ctx, cancel := c.callContext(ctx)
	defer cancel()

	req, err := buildGatewayRequest(ctx, cfg)
	if err != nil {
		return nil, err
	}
	req.Header.Set(gatewayAuthHeader, token)

	log.V(vInfo).Info("invoking gateway", "method", req.Method, "url", redactURL(req.URL))
	resp, err := c.do(req)
	if err != nil {
		log.Error(err, "gateway call failed")
		return nil, err
	}
	return resp, nil
}

// buildGatewayRequest validates cfg and turns it into an *http.Request.
func buildGatewayRequest(ctx context.Context, cfg *GatewayConfig) (*http.Request, error) {
	if cfg == nil {
		return nil, invalidInput(MsgInvalidGatewayURL, nil, "")
	}
	if verr := validate.Enum("method", "gatewayConfig", cfg.Method, requestMethods); verr != nil {
		return nil, invalidInput(MsgInvalidRequestMethod, verr, cfg.Method)
	}

	rawURL, err := substitutePathParams(cfg.URL, cfg.PathParams)
	if err != nil {
		return nil, err
	}
	if !isHTTPURL(rawURL) {
		return nil, invalidInput(MsgInvalidGatewayURL, nil, cfg.URL)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, invalidInput(MsgInvalidGatewayURL, err, cfg.URL)
	}
	if len(cfg.QueryParams) > 0 {
		q := u.Query()
		for name, value := range cfg.QueryParams {
			for _, v := range queryValues(value) {
				q.Add(name, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	header := make(http.Header, len(cfg.RequestHeader))
	for k, v := range cfg.RequestHeader {
		header.Set(k, v)
	}

	body, err := gatewayBody(header, cfg.RequestBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, string(cfg.Method), u.String(), body)
	if err != nil {
		return nil, newError(CodeRequestFailed, 0, MsgRequestFailed, err, redactURL(u))
	}
	for k, v := range header {
		req.Header[k] = v
	}
	return req, nil
}

// substitutePathParams replaces each {name} placeholder once. A parameter
// without a placeholder is an error.
func substitutePathParams(rawURL string, params map[string]string) (string, error) {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		placeholder := "{" + name + "}"
		if !strings.Contains(rawURL, placeholder) {
			return "", invalidInput(MsgPathParamNotInURL, nil, name)
		}
		rawURL = strings.Replace(rawURL, placeholder, url.PathEscape(params[name]), 1)
	}
	return rawURL, nil
}

// queryValues renders a query parameter value. Slices expand to repeated
// parameters.
func queryValues(v any) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return []string{val}
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return []string{fmt.Sprint(val)}
	}
}

// gatewayBody encodes body according to the Content-Type header. Form
// encoding is used for application/x-www-form-urlencoded, JSON otherwise.
// The header is completed when the caller did not set one.
func gatewayBody(header http.Header, body any) (io.Reader, error) {
	if body == nil {
		return http.NoBody, nil
	}

	mediaType, _, err := runtime.ContentType(header)
	if err == nil && mediaType == runtime.URLencodedFormMime {
		m, ok := body.(map[string]any)
		if !ok {
			return nil, invalidInput(MsgInvalidFormBody, nil, typeName(body))
		}
		form := url.Values{}
		flattenForm(form, "", m)
		return strings.NewReader(form.Encode()), nil
	}

	data, err := swag.WriteJSON(body)
	if err != nil {
		return nil, invalidInput(MsgInvalidJSON, err, "gateway request body")
	}
	if header.Get(runtime.HeaderContentType) == "" {
		header.Set(runtime.HeaderContentType, runtime.JSONMime)
	}
	return bytes.NewReader(data), nil
}

// flattenForm writes nested maps as key[sub]=value pairs.
func flattenForm(form url.Values, prefix string, m map[string]any) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "[" + k + "]"
		}
		if nested, ok := v.(map[string]any); ok {
			flattenForm(form, key, nested)
			continue
		}
		for _, s := range queryValues(v) {
			form.Add(key, s)
		}
	}
}
