// Package transport implements the simulated wire layer: typed requests and
// responses, the ordered route dispatcher, and the http.RoundTripper
// interceptor that answers matched traffic from the entity store.
package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	errors "github.com/hrapp/hr-management/internal"
)

// Request is the simulated request shape handlers consume.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte

	ctx context.Context
}

func (r *Request) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

func (r *Request) WithContext(ctx context.Context) *Request {
	out := *r
	out.ctx = ctx
	return &out
}

// Decode unmarshals the JSON body into v. An empty body decodes as an empty
// object so handlers see zero-valued DTOs.
func (r *Request) Decode(v any) error {
	body := r.Body
	if len(body) == 0 {
		body = []byte("{}")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return errors.NewValidationError("Invalid request body", errors.ErrCodeValidationFailed).WithCause(err)
	}
	return nil
}

// Cookie returns the named cookie value from the request, or "".
func (r *Request) Cookie(name string) string {
	carrier := http.Request{Header: r.Header}
	c, err := carrier.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

// TrailingID parses the last path segment as an integer id.
func (r *Request) TrailingID() (int64, error) {
	seg := r.TrailingSegment()
	id, err := strconv.ParseInt(seg, 10, 64)
	if err != nil {
		return 0, errors.NewValidationError("Invalid id in path", errors.ErrCodeValidationFailed).WithCause(err)
	}
	return id, nil
}

// TrailingSegment returns the last path segment unparsed, for string-typed
// ids.
func (r *Request) TrailingSegment() string {
	idx := strings.LastIndex(r.Path, "/")
	if idx < 0 {
		return r.Path
	}
	return r.Path[idx+1:]
}

// Response is the simulated response shape handlers produce. A nil Body is
// delivered as JSON null.
type Response struct {
	Status  int
	Body    any
	Cookies []*http.Cookie
}

func OK(body any) *Response {
	return &Response{Status: http.StatusOK, Body: body}
}

func (resp *Response) WithCookie(c *http.Cookie) *Response {
	resp.Cookies = append(resp.Cookies, c)
	return resp
}
