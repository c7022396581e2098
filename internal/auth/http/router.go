package http

import (
	"net/http"

	"github.com/dmikhr/blog-platform/backend/internal/auth/service"
	"github.com/dmikhr/blog-platform/backend/internal/common/config"
	commonhttp "github.com/dmikhr/blog-platform/backend/internal/common/http"
	"github.com/dmikhr/blog-platform/backend/internal/common/logger"
)

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type Handler struct {
	auth *service.AuthService
	log  *logger.Logger
}

func NewHandler(auth *service.AuthService, cfg config.Config, log *logger.Logger) http.Handler {
	h := &Handler{auth: auth, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/register",
		commonhttp.RequireMethod(http.MethodPost)(commonhttp.WithTimeout(cfg.RequestTimeout)(h.register)))
	mux.HandleFunc("/api/auth/login",
		commonhttp.RequireMethod(http.MethodPost)(commonhttp.WithTimeout(cfg.RequestTimeout)(h.login)))

	return mux
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCredentials(w, r, "register")
	if !ok {
		return
	}

	result, err := h.auth.Register(r.Context(), service.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, result)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCredentials(w, r, "login")
	if !ok {
		return
	}

	result, err := h.auth.Login(r.Context(), service.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	// 201 on issuance, matching the rest of the POST surface.
	commonhttp.WriteJSON(w, http.StatusCreated, result)
}

func (h *Handler) decodeCredentials(w http.ResponseWriter, r *http.Request, op string) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("%s failed: invalid json: %v", op, err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, "")
		return credentialsRequest{}, false
	}

	if err := commonhttp.ValidateStruct(req); err != nil {
		h.log.Warnf("%s validation failed: %v", op, err)
		commonhttp.HandleError(w, r, err, h.log)
		return credentialsRequest{}, false
	}

	return req, true
}
