package account

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/hrapp/hr-management/internal/transport"
	"github.com/hrapp/hr-management/pkg/logger"
)

// RefreshCookieName is the cookie-equivalent side channel for refresh tokens.
const RefreshCookieName = "refreshToken"

type Handler struct {
	*transport.BaseHandler
	Service         *Service
	RefreshTokenTTL time.Duration
}

func NewHandler(svc *Service, refreshTTL time.Duration) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler:     transport.NewBaseHandler(lg),
		Service:         svc,
		RefreshTokenTTL: refreshTTL,
	}
}

func (h *Handler) refreshCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:    RefreshCookieName,
		Value:   token,
		Path:    "/",
		Expires: time.Now().Add(h.RefreshTokenTTL),
		MaxAge:  int(h.RefreshTokenTTL.Seconds()),
	}
}

func (h *Handler) Authenticate(req *transport.Request) (*transport.Response, error) {
	var dto AuthenticateDTO
	if err := req.Decode(&dto); err != nil {
		return nil, err
	}

	resp, refreshToken, err := h.Service.Authenticate(req.Context(), dto)
	if err != nil {
		return nil, err
	}
	return h.OK(resp).WithCookie(h.refreshCookie(refreshToken)), nil
}

func (h *Handler) RefreshToken(req *transport.Request) (*transport.Response, error) {
	resp, newToken, err := h.Service.Refresh(req.Cookie(RefreshCookieName))
	if err != nil {
		return nil, err
	}
	return h.OK(resp).WithCookie(h.refreshCookie(newToken)), nil
}

func (h *Handler) RevokeToken(req *transport.Request) (*transport.Response, error) {
	if err := h.Service.Revoke(req.Header, req.Cookie(RefreshCookieName)); err != nil {
		return nil, err
	}
	return h.Empty(), nil
}

func (h *Handler) Register(req *transport.Request) (*transport.Response, error) {
	var dto RegisterDTO
	if err := req.Decode(&dto); err != nil {
		return nil, err
	}
	if err := h.Service.Register(req.Context(), dto); err != nil {
		return nil, err
	}
	return h.Empty(), nil
}

func (h *Handler) VerifyEmail(req *transport.Request) (*transport.Response, error) {
	var dto VerifyEmailDTO
	if err := req.Decode(&dto); err != nil {
		return nil, err
	}
	if err := h.Service.VerifyEmail(dto); err != nil {
		return nil, err
	}
	return h.Empty(), nil
}

func (h *Handler) ForgotPassword(req *transport.Request) (*transport.Response, error) {
	var dto ForgotPasswordDTO
	if err := req.Decode(&dto); err != nil {
		return nil, err
	}
	if err := h.Service.ForgotPassword(req.Context(), dto); err != nil {
		return nil, err
	}
	return h.Empty(), nil
}

func (h *Handler) ValidateResetToken(req *transport.Request) (*transport.Response, error) {
	var dto ValidateResetTokenDTO
	if err := req.Decode(&dto); err != nil {
		return nil, err
	}
	if err := h.Service.ValidateResetToken(dto); err != nil {
		return nil, err
	}
	return h.Empty(), nil
}

func (h *Handler) ResetPassword(req *transport.Request) (*transport.Response, error) {
	var dto ResetPasswordDTO
	if err := req.Decode(&dto); err != nil {
		return nil, err
	}
	if err := h.Service.ResetPassword(dto); err != nil {
		return nil, err
	}
	return h.Empty(), nil
}

func (h *Handler) List(req *transport.Request) (*transport.Response, error) {
	accounts, err := h.Service.List(req.Header)
	if err != nil {
		return nil, err
	}
	return h.OK(accounts), nil
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
