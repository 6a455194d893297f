package blizzard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mistweaver/bnet/registry"
)

// Result is the outcome of a non-blocking invocation.
type Result struct {
	Body map[string]interface{}
	Err  error
}

// Operation is one bound endpoint: a descriptor closed over the
// client's executor. The blocking and non-blocking call paths share
// the same request construction and error mapping.
type Operation struct {
	client *Client
	desc   *registry.Endpoint
}

// Descriptor returns the endpoint descriptor the operation was bound
// from.
func (o *Operation) Descriptor() *registry.Endpoint {
	return o.desc
}

// Do invokes the operation and blocks until the decoded response or an
// error is available.
func (o *Operation) Do(ctx context.Context, params Params) (map[string]interface{}, error) {
	var body map[string]interface{}
	if err := o.client.execute(ctx, o.desc, params, &body); err != nil {
		return nil, err
	}
	return body, nil
}

// Go invokes the operation without blocking. The returned channel is
// buffered and delivers exactly one Result; response arrival order
// across concurrent calls is not guaranteed, pairing is by channel.
func (o *Operation) Go(ctx context.Context, params Params) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		body, err := o.Do(ctx, params)
		ch <- Result{Body: body, Err: err}
		close(ch)
	}()
	return ch
}

// prepare validates the parameters against the descriptor and builds
// the request context. No network I/O happens here; every failure is a
// ValidationError naming the offending parameter.
func (c *Client) prepare(desc *registry.Endpoint, params Params) (*RequestContext, error) {
	for _, name := range desc.Required {
		if _, ok := params[name]; !ok {
			return nil, &ValidationError{Param: name, Message: "required parameter missing"}
		}
	}

	rest := params.clone()

	region := Region(rest["region"])
	if !region.Valid() {
		return nil, &ValidationError{Param: "region", Message: fmt.Sprintf("unknown region %q", region)}
	}
	delete(rest, "region")

	var locale Locale
	if v, ok := rest["locale"]; ok {
		locale = Locale(v)
		if !locale.Valid() {
			return nil, &ValidationError{Param: "locale", Message: fmt.Sprintf("unknown locale %q", locale)}
		}
		delete(rest, "locale")
	}

	path := desc.Path
	for _, name := range desc.PathParams {
		path = strings.ReplaceAll(path, "{"+name+"}", url.PathEscape(rest[name]))
		delete(rest, name)
	}

	rc := &RequestContext{
		Region: region,
		Locale: locale,
		Path:   path,
		Query:  url.Values{},
		Token:  rest["access_token"],
	}
	delete(rest, "access_token")

	if locale != "" {
		rc.Query.Set("locale", string(locale))
	}
	if ns := desc.Namespace; ns != registry.NamespaceNone {
		suffix := string(ns)
		if rest["is_classic"] == "true" {
			suffix += "-classic"
		}
		rc.Query.Set("namespace", fmt.Sprintf("%s-%s", suffix, region))
	}
	delete(rest, "is_classic")

	// Everything left over, filter keys included, goes into the query
	// string with its key untouched. The upstream schema uses dotted
	// keys like name.en_US.
	for k, v := range rest {
		rc.Query.Set(k, v)
	}

	return rc, nil
}

// execute runs one request end to end: validate, build, authorize,
// issue, map errors, decode.
func (c *Client) execute(ctx context.Context, desc *registry.Endpoint, params Params, out interface{}) error {
	rc, err := c.prepare(desc, params)
	if err != nil {
		return err
	}

	if rc.Token == "" {
		tok, err := c.auth.ClientCredentials(ctx)
		if err != nil {
			return fmt.Errorf("failed to acquire token: %w", err)
		}
		rc.Token = tok.AccessToken
	}

	requestURL := rc.URL(c.apiBase)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+rc.Token)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("method", desc.Method).
		Str("path", rc.Path).
		Msg("Issuing API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return mapStatus(resp, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// mapStatus turns a non-2xx response into its taxonomy error.
func mapStatus(resp *http.Response, body []byte) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		if v := resp.Header.Get("Retry-After"); v != "" {
			if secs, err := strconv.Atoi(v); err == nil {
				apiErr.RetryAfter = secs
			}
		}
	}
	return apiErr
}
