package transport_test

import (
	"net/http"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hrapp/hr-management/internal/transport"
)

func TestTransport(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Transport Suite")
}

func namedHandler(name string) transport.HandlerFunc {
	return func(req *transport.Request) (*transport.Response, error) {
		return transport.OK(name), nil
	}
}

func handlerName(h transport.HandlerFunc) string {
	resp, err := h(&transport.Request{})
	Expect(err).NotTo(HaveOccurred())
	return resp.Body.(string)
}

var _ = Describe("Matchers", func() {
	Describe("Suffix", func() {
		It("matches the literal suffix under any base URL", func() {
			m := transport.Suffix("/accounts")
			Expect(m("/accounts")).To(BeTrue())
			Expect(m("http://localhost:4000/accounts")).To(BeTrue())
			Expect(m("/api/v1/accounts")).To(BeTrue())
			Expect(m("/accounts/5")).To(BeFalse())
			Expect(m("/acc")).To(BeFalse())
		})
	})

	Describe("IDPattern", func() {
		It("matches only an integer id directly after the prefix", func() {
			m := transport.IDPattern("/accounts")
			Expect(m("/accounts/5")).To(BeTrue())
			Expect(m("http://localhost:4000/accounts/42")).To(BeTrue())
			Expect(m("/accounts")).To(BeFalse())
			Expect(m("/accounts/abc")).To(BeFalse())
			Expect(m("/accounts/5/extra")).To(BeFalse())
		})

		It("does not match a deeper path that merely contains the prefix", func() {
			m := transport.IDPattern("/api/workflows")
			Expect(m("/api/workflows/7")).To(BeTrue())
			Expect(m("/api/workflows/employee/7")).To(BeFalse())

			byEmployee := transport.IDPattern("/api/workflows/employee")
			Expect(byEmployee("/api/workflows/employee/7")).To(BeTrue())
		})
	})
})

var _ = Describe("Dispatcher", func() {
	var dispatcher *transport.Dispatcher

	BeforeEach(func() {
		dispatcher = transport.NewDispatcher([]transport.Route{
			{Method: http.MethodPost, Match: transport.Suffix("/accounts/authenticate"), Handler: namedHandler("authenticate")},
			{Method: http.MethodGet, Match: transport.Suffix("/accounts"), Handler: namedHandler("list")},
			{Method: http.MethodGet, Match: transport.IDPattern("/accounts"), Handler: namedHandler("get")},
			{Method: http.MethodPost, Match: transport.Suffix("/accounts"), Handler: namedHandler("create")},
		})
	})

	It("resolves in registration order, first match wins", func() {
		h, ok := dispatcher.Resolve(http.MethodGet, "/accounts")
		Expect(ok).To(BeTrue())
		Expect(handlerName(h)).To(Equal("list"))

		h, ok = dispatcher.Resolve(http.MethodGet, "/accounts/5")
		Expect(ok).To(BeTrue())
		Expect(handlerName(h)).To(Equal("get"))
	})

	It("keeps literal routes distinct from their id-pattern shadows", func() {
		h, ok := dispatcher.Resolve(http.MethodPost, "/accounts/authenticate")
		Expect(ok).To(BeTrue())
		Expect(handlerName(h)).To(Equal("authenticate"))

		h, ok = dispatcher.Resolve(http.MethodPost, "/accounts")
		Expect(ok).To(BeTrue())
		Expect(handlerName(h)).To(Equal("create"))
	})

	It("discriminates on method", func() {
		_, ok := dispatcher.Resolve(http.MethodDelete, "/accounts")
		Expect(ok).To(BeFalse())
	})

	It("reports no match for unknown paths", func() {
		_, ok := dispatcher.Resolve(http.MethodGet, "/totally/elsewhere")
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Request", func() {
	It("decodes an empty body as an empty object", func() {
		var dto struct {
			Name string `json:"name"`
		}
		req := &transport.Request{}
		Expect(req.Decode(&dto)).To(Succeed())
		Expect(dto.Name).To(BeEmpty())
	})

	It("rejects a malformed body", func() {
		req := &transport.Request{Body: []byte(`{"name":`)}
		var dto struct{}
		Expect(req.Decode(&dto)).To(HaveOccurred())
	})

	It("parses the trailing path segment as an id", func() {
		req := &transport.Request{Path: "http://localhost:4000/departments/12"}
		id, err := req.TrailingID()
		Expect(err).NotTo(HaveOccurred())
		Expect(id).To(Equal(int64(12)))
	})

	It("returns a validation error for a non-integer trailing id", func() {
		req := &transport.Request{Path: "/departments/abc"}
		_, err := req.TrailingID()
		Expect(err).To(HaveOccurred())
	})

	It("reads cookies from the header", func() {
		h := http.Header{}
		h.Set("Cookie", "refreshToken=tok-123; other=x")
		req := &transport.Request{Header: h}
		Expect(req.Cookie("refreshToken")).To(Equal("tok-123"))
		Expect(req.Cookie("missing")).To(BeEmpty())
	})
})
