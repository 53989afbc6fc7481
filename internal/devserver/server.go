// Package devserver is an in-memory implementation of the TapCard backend
// API for local runs and integration tests. Passwords are hashed with bcrypt
// and access tokens are HS256 JWTs. Nothing is persisted.
package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/tapcard/internal/client/models"
	"github.com/dmitrijs2005/tapcard/internal/client/validate"
	"github.com/dmitrijs2005/tapcard/internal/logging"
)

type ctxKey string

const userIDKey ctxKey = "userID"

type Server struct {
	store    *memStore
	secret   []byte
	tokenTTL time.Duration
	log      logging.Logger
	router   *mux.Router
}

func NewServer(cfg *Config, log logging.Logger) *Server {
	if log == nil {
		log = logging.Discard()
	}
	s := &Server{
		store:    newMemStore(),
		secret:   []byte(cfg.SecretKey),
		tokenTTL: cfg.AccessTokenValidityDuration,
		log:      log.With("component", "devserver"),
	}
	s.router = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestID)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	r.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/user/api/user/profile/{id}", s.handlePublicProfile).Methods(http.MethodGet)

	authed := r.PathPrefix("/user").Subrouter()
	authed.Use(s.requireToken)
	authed.HandleFunc("/profile", s.handleGetProfile).Methods(http.MethodGet)
	authed.HandleFunc("/profile", s.handleUpdateProfile).Methods(http.MethodPut)
	authed.HandleFunc("/social-links", s.handleListLinks).Methods(http.MethodGet)
	authed.HandleFunc("/social-links", s.handleCreateLink).Methods(http.MethodPost)
	authed.HandleFunc("/social-links/{id:[0-9]+}", s.handleUpdateLink).Methods(http.MethodPut)
	authed.HandleFunc("/social-links/{id:[0-9]+}", s.handleDeleteLink).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})
	return r
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug(r.Context(), "request", "method", r.Method, "path", r.URL.Path,
			"request_id", id, "duration", time.Since(start))
	})
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		userID, err := GetUserIDFromToken(token, s.secret)
		if err != nil {
			writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		if _, err := s.store.profile(userID); err != nil {
			writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}

func userID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if !decode(w, r, &creds) {
		return
	}
	if err := validate.Struct(creds); err != nil {
		writeValidation(w, err)
		return
	}

	u, err := s.store.createUser(creds.Username, creds.Email, creds.Password)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.log.Info(r.Context(), "user registered", "user_id", u.ID)
	writeJSON(w, http.StatusCreated, map[string]string{
		"id":       u.ID,
		"username": u.Profile.Username,
		"email":    u.Profile.Email,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusBadRequest, "malformed form body")
		return
	}
	login, password := r.PostForm.Get("username"), r.PostForm.Get("password")
	if login == "" || password == "" {
		writeFieldErrors(w, []fieldError{
			{Loc: []string{"body", "username"}, Msg: "Field required", Type: "missing"},
			{Loc: []string{"body", "password"}, Msg: "Field required", Type: "missing"},
		})
		return
	}

	u, err := s.store.authenticate(login, password)
	if err != nil {
		writeDetail(w, http.StatusUnauthorized, err.Error())
		return
	}
	token, err := GenerateToken(u.ID, s.secret, s.tokenTTL)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"access_token": token, "token_type": "bearer"})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.profile(userID(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var upd models.ProfileUpdate
	if !decode(w, r, &upd) {
		return
	}
	if err := validate.Struct(upd); err != nil {
		writeValidation(w, err)
		return
	}
	p, err := s.store.updateProfile(userID(r), upd)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePublicProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.publicProfile(mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleListLinks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.listLinks(userID(r)))
}

func (s *Server) decodeLink(w http.ResponseWriter, r *http.Request) (models.SocialLinkInput, bool) {
	var in models.SocialLinkInput
	if !decode(w, r, &in) {
		return in, false
	}
	l := models.SocialLink{PlatformName: in.PlatformName, URL: in.URL}
	if err := validate.Struct(l); err != nil {
		writeValidation(w, err)
		return in, false
	}
	if err := validate.URL("link_url", in.URL); err != nil {
		writeValidation(w, err)
		return in, false
	}
	return in, true
}

func (s *Server) handleCreateLink(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeLink(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusCreated, s.store.createLink(userID(r), in))
}

func (s *Server) handleUpdateLink(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeDetail(w, http.StatusNotFound, ErrLinkNotFound.Error())
		return
	}
	in, ok := s.decodeLink(w, r)
	if !ok {
		return
	}
	l, err := s.store.updateLink(userID(r), id, in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleDeleteLink(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeDetail(w, http.StatusNotFound, ErrLinkNotFound.Error())
		return
	}
	if err := s.store.deleteLink(userID(r), id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var de detailError
	if !errors.As(err, &de) {
		s.log.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	status := http.StatusBadRequest
	switch de {
	case ErrUserNotFound, ErrLinkNotFound:
		status = http.StatusNotFound
	case ErrInvalidCredentials:
		status = http.StatusUnauthorized
	}
	writeDetail(w, status, de.Error())
}

type fieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeFieldErrors(w, []fieldError{{Loc: []string{"body"}, Msg: "JSON decode error", Type: "json_invalid"}})
		return false
	}
	return true
}

func writeValidation(w http.ResponseWriter, err error) {
	var verr *validate.Errors
	if !errors.As(err, &verr) {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	fes := make([]fieldError, 0, len(verr.Messages))
	for _, msg := range verr.Messages {
		field, _, _ := strings.Cut(msg, " ")
		fes = append(fes, fieldError{Loc: []string{"body", field}, Msg: msg, Type: "value_error"})
	}
	writeFieldErrors(w, fes)
}

func writeFieldErrors(w http.ResponseWriter, fes []fieldError) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": fes})
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
