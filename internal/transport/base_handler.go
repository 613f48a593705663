package transport

import (
	"log/slog"

	"github.com/hrapp/hr-management/pkg/logger"
)

// BaseHandler provides common functionality for simulated endpoint handlers.
type BaseHandler struct {
	Logger *slog.Logger
}

func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// OK wraps a success payload in a 200 response.
func (h *BaseHandler) OK(body any) *Response {
	return OK(body)
}

// Empty is a 200 with a null body, matching endpoints that acknowledge
// without returning a record.
func (h *BaseHandler) Empty() *Response {
	return OK(nil)
}
