package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"outlay/internal/model"
	"outlay/internal/store"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
}

type registerResponse struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON")
		return
	}

	req.Identifier = strings.TrimSpace(req.Identifier)
	if req.Identifier == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "identifier is required")
		return
	}
	if req.Secret == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "secret is required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Secret), bcrypt.DefaultCost)
	if err != nil {
		writeInternalError(w, err)
		return
	}

	created, err := s.store.CreateUser(r.Context(), model.User{
		Identifier: req.Identifier,
		SecretHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeError(w, http.StatusConflict, "conflict", "identifier already exists")
			return
		}
		writeInternalError(w, err)
		return
	}

	s.log.Info("user registered", zap.String("user_id", created.ID))
	writeJSON(w, http.StatusCreated, registerResponse{ID: created.ID, Identifier: created.Identifier})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON")
		return
	}

	// Unknown identifier and wrong secret produce identical responses so a
	// caller cannot tell which of the two failed.
	user, err := s.store.GetUserByIdentifier(r.Context(), strings.TrimSpace(req.Identifier))
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "invalid identifier or secret")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.SecretHash), []byte(req.Secret)); err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "invalid identifier or secret")
		return
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}
