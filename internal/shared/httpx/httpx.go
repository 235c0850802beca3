package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"social-service/internal/shared/apperr"
)

type HandlerFunc func(http.ResponseWriter, *http.Request) error

type APIError struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
	Status int    `json:"status"`
}

// Wrap adapts error-returning handlers, mapping the apperr taxonomy onto
// status codes. Store failures render a generic message so driver detail
// never reaches clients.
func Wrap(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}
		code := http.StatusBadRequest
		switch {
		case errors.Is(err, apperr.ErrAuthentication):
			code = http.StatusUnauthorized
		case errors.Is(err, apperr.ErrAuthorization):
			code = http.StatusForbidden
		case errors.Is(err, apperr.ErrNotFound):
			code = http.StatusNotFound
		case errors.Is(err, apperr.ErrConflict):
			code = http.StatusConflict
		case errors.Is(err, apperr.ErrStore):
			WriteError(w, http.StatusBadGateway, errors.New("store unavailable"), "store_error")
			return
		}
		WriteError(w, code, err, "")
	})
}

func Decode[T any](r *http.Request) (T, error) {
	var t T
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		return t, apperr.Validation("invalid request body")
	}
	return t, nil
}

func WriteJSON(w http.ResponseWriter, v any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, err error, reason string) {
	if err == nil {
		err = errors.New(http.StatusText(status))
	}
	WriteJSON(w, APIError{Error: err.Error(), Reason: reason, Status: status}, status)
}

type ctxKey string

const userKey ctxKey = "uid"

// AuthMiddleware validates the bearer token with parse and attaches the
// subject user id to the request context.
func AuthMiddleware(parse func(token string) (string, error), next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			WriteError(w, http.StatusUnauthorized, apperr.ErrAuthentication, "missing_bearer")
			return
		}
		uid, err := parse(strings.TrimSpace(h[7:]))
		if err != nil || uid == "" {
			WriteError(w, http.StatusUnauthorized, apperr.ErrAuthentication, "invalid_token")
			return
		}
		ctx := context.WithValue(r.Context(), userKey, uid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuthMiddleware attaches the subject when a bearer token is
// present. No token means an anonymous request; a token that fails to
// validate is still rejected.
func OptionalAuthMiddleware(parse func(token string) (string, error), next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			next.ServeHTTP(w, r)
			return
		}
		AuthMiddleware(parse, next).ServeHTTP(w, r)
	})
}

func UserFromCtx(r *http.Request) (string, error) {
	uid, _ := r.Context().Value(userKey).(string)
	if uid == "" {
		return "", apperr.Authentication("no authenticated user")
	}
	return uid, nil
}

// WithUser is a test helper for exercising handlers behind AuthMiddleware.
func WithUser(r *http.Request, uid string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userKey, uid))
}

func QueryInt(r *http.Request, key string, def int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
