package http

import (
	"net/http"
	"strings"

	"github.com/dmikhr/blog-platform/backend/internal/common/config"
	commonhttp "github.com/dmikhr/blog-platform/backend/internal/common/http"
	"github.com/dmikhr/blog-platform/backend/internal/common/jwtverify"
	"github.com/dmikhr/blog-platform/backend/internal/common/logger"
	postdomain "github.com/dmikhr/blog-platform/backend/internal/post/domain"
	"github.com/dmikhr/blog-platform/backend/internal/post/service"
	userdomain "github.com/dmikhr/blog-platform/backend/internal/user/domain"
)

type createPostRequest struct {
	Title   string `json:"title" validate:"required,max=100"`
	Content string `json:"content" validate:"required,max=100"`
}

type updatePostRequest struct {
	Title   *string `json:"title" validate:"omitempty,max=100"`
	Content *string `json:"content" validate:"omitempty,max=100"`
}

type Handler struct {
	posts *service.PostService
	log   *logger.Logger
}

// NewHandler serves /api/posts. Identity comes from the jwtverify guard
// mounted in front of this mux; handlers only read claims from the context.
func NewHandler(posts *service.PostService, cfg config.Config, log *logger.Logger) http.Handler {
	h := &Handler{posts: posts, log: log}
	timeout := commonhttp.WithTimeout(cfg.RequestTimeout)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/posts", timeout(h.collection))
	mux.HandleFunc("/api/posts/", timeout(h.item))

	return mux
}

func (h *Handler) collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.findAll(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
	}
}

func (h *Handler) item(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/posts/user/") {
		if r.Method != http.MethodGet {
			commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
			return
		}
		h.findByUser(w, r)
		return
	}

	id, err := commonhttp.ParseIDParam(r.URL.Path, "/api/posts/")
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.findOne(w, r, postdomain.ID(id))
	case http.MethodPut:
		h.update(w, r, postdomain.ID(id))
	case http.MethodDelete:
		h.delete(w, r, postdomain.ID(id))
	default:
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
	}
}

func (h *Handler) findAll(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.FindAll(r.Context())
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, posts)
}

func (h *Handler) findOne(w http.ResponseWriter, r *http.Request, id postdomain.ID) {
	post, err := h.posts.FindOne(r.Context(), id)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, post)
}

func (h *Handler) findByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := commonhttp.ParseIDParam(r.URL.Path, "/api/posts/user/")
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	posts, err := h.posts.FindByUser(r.Context(), userdomain.ID(userID))
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, posts)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var req createPostRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, "")
		return
	}
	if err := commonhttp.ValidateStruct(req); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	post, err := h.posts.Create(r.Context(), service.CreateInput{
		Title:   req.Title,
		Content: req.Content,
	}, userdomain.ID(claims.UserID))
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, post)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, id postdomain.ID) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var req updatePostRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, "")
		return
	}
	if err := commonhttp.ValidateStruct(req); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	post, err := h.posts.Update(r.Context(), id, service.UpdateInput{
		Title:   req.Title,
		Content: req.Content,
	}, userdomain.ID(claims.UserID))
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, post)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, id postdomain.ID) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	if err := h.posts.Delete(r.Context(), id, userdomain.ID(claims.UserID)); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, map[string]string{"message": "Post deleted successfully"})
}

func requireClaims(w http.ResponseWriter, r *http.Request) (jwtverify.Claims, bool) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return jwtverify.Claims{}, false
	}
	return claims, true
}
