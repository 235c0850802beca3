package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"social-service/internal/shared/apperr"
)

func TestWrapStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error writes nothing extra", nil, http.StatusOK},
		{"validation", apperr.Validation("bad field"), http.StatusBadRequest},
		{"invalid operation", apperr.InvalidOperation("self follow"), http.StatusBadRequest},
		{"authentication", apperr.Authentication("bad token"), http.StatusUnauthorized},
		{"authorization", apperr.Authorization("not yours"), http.StatusForbidden},
		{"not found", apperr.NotFound("gone"), http.StatusNotFound},
		{"conflict", apperr.Conflict("taken"), http.StatusConflict},
		{"store", apperr.Store(errors.New("bolt refused")), http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Wrap(func(w http.ResponseWriter, r *http.Request) error {
				if tt.err == nil {
					WriteJSON(w, map[string]string{"ok": "yes"}, http.StatusOK)
				}
				return tt.err
			})
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			require.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestWrapHidesStoreDetail(t *testing.T) {
	h := Wrap(func(http.ResponseWriter, *http.Request) error {
		return apperr.Store(errors.New("connection to 10.0.0.5:7687 refused"))
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var body APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotContains(t, body.Error, "10.0.0.5")
}

func TestAuthMiddleware(t *testing.T) {
	parse := func(tok string) (string, error) {
		if tok == "good" {
			return "user-1", nil
		}
		return "", errors.New("invalid")
	}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, err := UserFromCtx(r)
		require.NoError(t, err)
		WriteJSON(w, map[string]string{"user_id": uid}, http.StatusOK)
	})

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		AuthMiddleware(parse, next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bad token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer bad")
		rec := httptest.NewRecorder()
		AuthMiddleware(parse, next).ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("good token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()
		AuthMiddleware(parse, next).ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "user-1")
	})
}

func TestOptionalAuthMiddleware(t *testing.T) {
	parse := func(tok string) (string, error) {
		if tok == "good" {
			return "user-1", nil
		}
		return "", errors.New("invalid")
	}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, _ := UserFromCtx(r)
		WriteJSON(w, map[string]string{"user_id": uid}, http.StatusOK)
	})

	t.Run("no header is anonymous", func(t *testing.T) {
		rec := httptest.NewRecorder()
		OptionalAuthMiddleware(parse, next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid token still rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer bad")
		rec := httptest.NewRecorder()
		OptionalAuthMiddleware(parse, next).ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=25&bad=x&neg=-2", nil)
	require.Equal(t, 25, QueryInt(req, "limit", 50))
	require.Equal(t, 50, QueryInt(req, "bad", 50))
	require.Equal(t, 50, QueryInt(req, "neg", 50))
	require.Equal(t, 50, QueryInt(req, "absent", 50))
}
