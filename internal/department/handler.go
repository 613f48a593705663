package department

import (
	"log/slog"

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
	var dto CreateDTO
	if err := req.Decode(&dto); err != nil {
		return nil, err
	}
	resp, err := h.Service.Create(req.Header, dto)
	if err != nil {
		return nil, err
	}
	return h.OK(resp), nil
}

func (h *Handler) List(req *transport.Request) (*transport.Response, error) {
	departments, err := h.Service.List(req.Header)
	if err != nil {
		return nil, err
	}
	return h.OK(departments), nil
}

func (h *Handler) GetByID(req *transport.Request) (*transport.Response, error) {
	id, err := req.TrailingID()
	if err != nil {
		return nil, err
	}
	resp, err := h.Service.GetByID(req.Header, id)
	if err != nil {
		return nil, err
	}
	return h.OK(resp), nil
}

func (h *Handler) Update(req *transport.Request) (*transport.Response, error) {
	id, err := req.TrailingID()
	if err != nil {
		return nil, err
	}
	var dto UpdateDTO
	if err := req.Decode(&dto); err != nil {
		return nil, err
	}
	resp, err := h.Service.Update(req.Header, id, dto)
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
	if err := h.Service.Delete(req.Header, id); err != nil {
		return nil, err
	}
	return h.Empty(), nil
}
