package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	errors "github.com/hrapp/hr-management/internal"
	"github.com/hrapp/hr-management/internal/store"
	"github.com/hrapp/hr-management/pkg/logger"
)

// Backend is the simulated backend: an http.RoundTripper that answers matched
// requests from the entity store and forwards everything else to the wrapped
// transport. Install it as an http.Client's Transport.
type Backend struct {
	dispatcher *Dispatcher
	store      *store.Store
	latency    time.Duration
	next       http.RoundTripper
	logger     *slog.Logger
}

// NewBackend wraps next (nil means http.DefaultTransport) with the simulated
// route table. Latency is applied to every simulated response, success and
// failure alike.
func NewBackend(dispatcher *Dispatcher, s *store.Store, latency time.Duration, next http.RoundTripper, lg *slog.Logger) *Backend {
	if next == nil {
		next = http.DefaultTransport
	}
	if lg == nil {
		lg = logger.LoggerWrapper()
	}
	return &Backend{
		dispatcher: dispatcher,
		store:      s,
		latency:    latency,
		next:       next,
		logger:     lg,
	}
}

func (b *Backend) RoundTrip(req *http.Request) (*http.Response, error) {
	handler, matched := b.dispatcher.Resolve(req.Method, req.URL.Path)
	if !matched {
		// Not simulated traffic; the request body is untouched.
		return b.next.RoundTrip(req)
	}

	var body []byte
	if req.Body != nil {
		var err error
		body, err = io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("read request body: %w", err)
		}
	}

	requestID := uuid.NewString()
	ctx := errors.ContextWithRequestID(req.Context(), requestID)
	ctx = logger.With(ctx, "request_id", requestID)

	sreq := &Request{
		Method: req.Method,
		Path:   req.URL.Path,
		Header: req.Header,
		Body:   body,
		ctx:    ctx,
	}

	b.logger.Info("simulated request",
		"request_id", requestID,
		"method", req.Method,
		"path", req.URL.Path,
		"headers", filterSensitiveHeaders(req.Header),
		"body", filterSensitiveBody(body))

	start := time.Now()
	resp, err := b.handle(handler, sreq)

	// The handler has run and any mutation is already persisted; the delay
	// only defers delivery. Errors take the same delayed path as successes.
	time.Sleep(b.latency)

	out, buildErr := b.materialize(req, resp, err)
	if buildErr != nil {
		return nil, buildErr
	}

	b.logger.Info("simulated response",
		"request_id", requestID,
		"status", out.StatusCode,
		"duration", time.Since(start))
	return out, nil
}

// handle runs the handler under the store's single-writer lock so one request
// mutates the collections to completion before the next begins.
func (b *Backend) handle(handler HandlerFunc, req *Request) (resp *Response, err error) {
	b.store.Lock()
	defer b.store.Unlock()

	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("panic in simulated handler",
				"error", r,
				"method", req.Method,
				"path", req.Path,
				"stack", string(debug.Stack()))
			resp = nil
			err = errors.NewInternalError("Internal server error", fmt.Errorf("panic: %v", r))
		}
	}()

	return handler(req)
}

// materialize builds the *http.Response the client sees.
func (b *Backend) materialize(req *http.Request, resp *Response, err error) (*http.Response, error) {
	status := http.StatusOK
	var payload any

	switch {
	case err != nil:
		appErr, ok := errors.IsAppError(err)
		if !ok {
			appErr = errors.NewInternalError("Internal server error", err)
		}
		status = appErr.StatusCode
		payload = map[string]string{"message": appErr.GetDetailedMessage()}
	case resp != nil:
		if resp.Status != 0 {
			status = resp.Status
		}
		payload = resp.Body
	}

	data, marshalErr := json.Marshal(payload)
	if marshalErr != nil {
		return nil, fmt.Errorf("encode simulated response: %w", marshalErr)
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	if resp != nil && err == nil {
		for _, c := range resp.Cookies {
			header.Add("Set-Cookie", c.String())
		}
	}

	return &http.Response{
		Status:        fmt.Sprintf("%d %s", status, http.StatusText(status)),
		StatusCode:    status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(data)),
		ContentLength: int64(len(data)),
		Request:       req,
	}, nil
}
