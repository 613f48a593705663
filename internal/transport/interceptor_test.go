package transport_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	errors "github.com/hrapp/hr-management/internal"
	"github.com/hrapp/hr-management/internal/storage"
	"github.com/hrapp/hr-management/internal/store"
	"github.com/hrapp/hr-management/internal/transport"
)

// recordingTransport stands in for the real network behind the interceptor.
type recordingTransport struct {
	requests []*http.Request
}

func (rt *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rt.requests = append(rt.requests, req)
	return &http.Response{
		Status:     "204 No Content",
		StatusCode: http.StatusNoContent,
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader("")),
		Request:    req,
	}, nil
}

var _ = Describe("Backend", func() {
	const latency = 30 * time.Millisecond

	var (
		next    *recordingTransport
		client  *http.Client
		backend *transport.Backend
	)

	buildBackend := func(routes []transport.Route) {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		entityStore, err := store.Open(storage.NewMemory(), logger)
		Expect(err).NotTo(HaveOccurred())

		next = &recordingTransport{}
		backend = transport.NewBackend(transport.NewDispatcher(routes), entityStore, latency, next, logger)
		client = &http.Client{Transport: backend}
	}

	decodeBody := func(resp *http.Response) map[string]any {
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		out := map[string]any{}
		Expect(json.Unmarshal(data, &out)).To(Succeed())
		return out
	}

	Describe("matched traffic", func() {
		BeforeEach(func() {
			buildBackend([]transport.Route{
				{
					Method: http.MethodGet,
					Match:  transport.Suffix("/ping"),
					Handler: func(req *transport.Request) (*transport.Response, error) {
						return transport.OK(map[string]string{"pong": "yes"}), nil
					},
				},
				{
					Method: http.MethodGet,
					Match:  transport.Suffix("/missing"),
					Handler: func(req *transport.Request) (*transport.Response, error) {
						return nil, errors.ErrAccountNotFound
					},
				},
				{
					Method: http.MethodGet,
					Match:  transport.Suffix("/boom"),
					Handler: func(req *transport.Request) (*transport.Response, error) {
						panic("handler exploded")
					},
				},
				{
					Method: http.MethodGet,
					Match:  transport.Suffix("/cookie"),
					Handler: func(req *transport.Request) (*transport.Response, error) {
						return transport.OK(nil).WithCookie(&http.Cookie{Name: "refreshToken", Value: "tok-1", Path: "/"}), nil
					},
				},
			})
		})

		It("answers matched requests without touching the network", func() {
			resp, err := client.Get("http://localhost:4000/ping")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(resp.Header.Get("Content-Type")).To(Equal("application/json"))
			Expect(decodeBody(resp)["pong"]).To(Equal("yes"))
			Expect(next.requests).To(BeEmpty())
		})

		It("maps domain errors to their status and a message body", func() {
			resp, err := client.Get("http://localhost:4000/missing")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
			Expect(decodeBody(resp)["message"]).To(Equal("Account not found"))
		})

		It("applies the latency to successes and failures alike", func() {
			start := time.Now()
			resp, err := client.Get("http://localhost:4000/ping")
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()
			Expect(time.Since(start)).To(BeNumerically(">=", latency))

			start = time.Now()
			resp, err = client.Get("http://localhost:4000/missing")
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()
			Expect(time.Since(start)).To(BeNumerically(">=", latency))
		})

		It("converts a handler panic into a 500 response", func() {
			resp, err := client.Get("http://localhost:4000/boom")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusInternalServerError))
			Expect(decodeBody(resp)["message"]).NotTo(BeEmpty())
		})

		It("delivers handler cookies as Set-Cookie headers", func() {
			resp, err := client.Get("http://localhost:4000/cookie")
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()

			cookies := resp.Cookies()
			Expect(cookies).To(HaveLen(1))
			Expect(cookies[0].Name).To(Equal("refreshToken"))
			Expect(cookies[0].Value).To(Equal("tok-1"))
		})
	})

	Describe("pass-through traffic", func() {
		BeforeEach(func() {
			buildBackend([]transport.Route{
				{
					Method: http.MethodGet,
					Match:  transport.Suffix("/ping"),
					Handler: func(req *transport.Request) (*transport.Response, error) {
						return transport.OK(nil), nil
					},
				},
			})
		})

		It("forwards unmatched paths to the wrapped transport", func() {
			resp, err := client.Get("http://localhost:4000/elsewhere")
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()

			Expect(resp.StatusCode).To(Equal(http.StatusNoContent))
			Expect(next.requests).To(HaveLen(1))
			Expect(next.requests[0].URL.Path).To(Equal("/elsewhere"))
		})

		It("forwards unmatched methods on matched paths", func() {
			req, err := http.NewRequest(http.MethodDelete, "http://localhost:4000/ping", nil)
			Expect(err).NotTo(HaveOccurred())

			resp, err := client.Do(req)
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()
			Expect(next.requests).To(HaveLen(1))
		})

		It("does not delay pass-through traffic", func() {
			start := time.Now()
			resp, err := client.Get("http://localhost:4000/elsewhere")
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()
			Expect(time.Since(start)).To(BeNumerically("<", latency))
		})
	})
})
