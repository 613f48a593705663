package employee

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
	employees, err := h.Service.List(req.Header)
	if err != nil {
		return nil, err
	}
	return h.OK(employees), nil
}

func (h *Handler) GetByID(req *transport.Request) (*transport.Response, error) {
	resp, err := h.Service.GetByID(req.Header, req.TrailingSegment())
	if err != nil {
		return nil, err
	}
	return h.OK(resp), nil
}

func (h *Handler) Update(req *transport.Request) (*transport.Response, error) {
	var dto UpdateDTO
	if err := req.Decode(&dto); err != nil {
		return nil, err
	}
	resp, err := h.Service.Update(req.Header, req.TrailingSegment(), dto)
	if err != nil {
		return nil, err
	}
	return h.OK(resp), nil
}

func (h *Handler) Delete(req *transport.Request) (*transport.Response, error) {
	if err := h.Service.Delete(req.Header, req.TrailingSegment()); err != nil {
		return nil, err
	}
	return h.Empty(), nil
}

func (h *Handler) Transfer(req *transport.Request) (*transport.Response, error) {
	var dto TransferDTO
	if err := req.Decode(&dto); err != nil {
		return nil, err
	}
	resp, err := h.Service.Transfer(req.Header, req.TrailingSegment(), dto)
	if err != nil {
		return nil, err
	}
	return h.OK(resp), nil
}
