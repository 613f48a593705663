package workflow

import (
	"log/slog"

	workflowModel "github.com/hrapp/hr-management/internal/core/datamodel/workflow"
	"github.com/hrapp/hr-management/internal/transport"
	"github.com/hrapp/hr-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) Create(req *transport.Request) (*transport.Response, error) {
	var draft workflowModel.Workflow
	if err := req.Decode(&draft); err != nil {
		return nil, err
	}
	resp, err := h.Service.Create(draft)
	if err != nil {
		return nil, err
	}
	return h.OK(resp), nil
}

func (h *Handler) List(req *transport.Request) (*transport.Response, error) {
	return h.OK(h.Service.List()), nil
}

func (h *Handler) GetByID(req *transport.Request) (*transport.Response, error) {
	id, err := req.TrailingID()
	if err != nil {
		return nil, err
	}
	resp, err := h.Service.GetByID(id)
	if err != nil {
		return nil, err
	}
	return h.OK(resp), nil
}

func (h *Handler) GetByEmployeeID(req *transport.Request) (*transport.Response, error) {
	return h.OK(h.Service.GetByEmployeeID(req.TrailingSegment())), nil
}

// Update applies the raw body as a shallow merge; see Service.Update.
func (h *Handler) Update(req *transport.Request) (*transport.Response, error) {
	id, err := req.TrailingID()
	if err != nil {
		return nil, err
	}
	resp, err := h.Service.Update(id, req.Body)
	if err != nil {
		return nil, err
	}
	return h.OK(resp), nil
}

func (h *Handler) Delete(req *transport.Request) (*transport.Response, error) {
	id, err := req.TrailingID()
	if err != nil {
		return nil, err
	}
	if err := h.Service.Delete(id); err != nil {
		return nil, err
	}
	return h.Empty(), nil
}
