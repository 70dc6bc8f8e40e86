package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/itemvault/internal/common"
	"github.com/dmitrijs2005/itemvault/internal/server/items"
)

func (s *HTTPServer) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	token, err := s.users.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (s *HTTPServer) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	item, err := s.items.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toItemResponse(item))
}

func (s *HTTPServer) handleListItems(w http.ResponseWriter, r *http.Request) {
	list, err := s.items.List(r.Context())
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	out := make([]itemResponse, 0, len(list))
	for _, item := range list {
		out = append(out, toItemResponse(item))
	}

	s.writeJSON(w, http.StatusOK, out)
}

func (s *HTTPServer) handleGetItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.items.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toItemResponse(item))
}

func (s *HTTPServer) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	item, err := s.items.Update(r.Context(), r.PathValue("id"), req.Name, req.Description)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toItemResponse(item))
}

func (s *HTTPServer) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := s.items.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, deleteResponse{Deleted: true})
}

func (s *HTTPServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *HTTPServer) handleHealthDB(w http.ResponseWriter, r *http.Request) {
	if err := s.health.Healthy(r.Context()); err != nil {
		s.logger.Warn(r.Context(), "store health check failed", "error", err)
		s.writeError(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"db": "ok"})
}

func toItemResponse(item *items.Item) itemResponse {
	return itemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		CreatedAt:   item.CreatedAt.UTC(),
		UpdatedAt:   item.UpdatedAt.UTC(),
	}
}

func (s *HTTPServer) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *HTTPServer) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// serviceError maps sentinel errors onto HTTP statuses. Internal failures are
// logged with the cause and answered with a generic message.
func (s *HTTPServer) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)

	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		s.writeError(w, status, "internal error")
		return
	}

	s.writeError(w, status, err.Error())
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, common.ErrorValidation),
		errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
