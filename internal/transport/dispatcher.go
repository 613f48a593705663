package transport

import "regexp"

// HandlerFunc is a simulated endpoint. Domain failures are returned as
// *internal.AppError; the envelope maps them to status and body.
type HandlerFunc func(req *Request) (*Response, error)

// Matcher tests a request path. Matchers see the full path so callers may use
// any base URL prefix in front of the simulated API.
type Matcher func(path string) bool

// Suffix matches a literal path suffix, e.g. "/accounts".
func Suffix(suffix string) Matcher {
	return func(path string) bool {
		if len(path) < len(suffix) {
			return false
		}
		return path[len(path)-len(suffix):] == suffix
	}
}

// IDPattern matches "<prefix>/<integer id>" at the end of the path,
// e.g. IDPattern("/accounts") matches "/accounts/42".
func IDPattern(prefix string) Matcher {
	re := regexp.MustCompile(regexp.QuoteMeta(prefix) + `/\d+$`)
	return re.MatchString
}

// Route binds an HTTP method and a path matcher to a handler.
type Route struct {
	Method  string
	Match   Matcher
	Handler HandlerFunc
}

// Dispatcher is a pure mapping from request shape to handler. Routes are
// evaluated in registration order and the first match wins; registration
// order is load-bearing because some patterns are prefixes of others (the
// literal "/accounts" GET must precede the "/accounts/{id}" pattern).
type Dispatcher struct {
	routes []Route
}

func NewDispatcher(routes []Route) *Dispatcher {
	return &Dispatcher{routes: routes}
}

// Resolve returns the first handler whose method and matcher accept the
// request, or false when the request should pass through unmodified.
func (d *Dispatcher) Resolve(method, path string) (HandlerFunc, bool) {
	for _, route := range d.routes {
		if route.Method == method && route.Match(path) {
			return route.Handler, true
		}
	}
	return nil, false
}
