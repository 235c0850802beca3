package user

import (
	"net/http"

	"social-service/internal/shared/apperr"
	"social-service/internal/shared/httpx"
	"social-service/internal/shared/validate"
	"social-service/internal/token"
)

type Handler struct {
	svc    Service
	issuer *token.Issuer
}

func NewHandler(svc Service, issuer *token.Issuer) *Handler {
	return &Handler{svc: svc, issuer: issuer}
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) error {
	body, err := httpx.Decode[SignupReq](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(body); err != nil {
		return err
	}
	u, err := h.svc.Signup(r.Context(), body)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, u, http.StatusCreated)
	return nil
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) error {
	body, err := httpx.Decode[LoginReq](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(body); err != nil {
		return err
	}
	u, err := h.svc.Authenticate(r.Context(), body.Email, body.Password)
	if err != nil {
		return err
	}
	if u == nil {
		return apperr.Authentication("invalid credentials")
	}
	return h.writeTokenPair(w, u, http.StatusOK)
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) error {
	body, err := httpx.Decode[RefreshReq](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(body); err != nil {
		return err
	}
	uid := h.issuer.ParseRefresh(body.RefreshToken)
	if uid == "" {
		return apperr.Authentication("invalid refresh token")
	}
	u, err := h.svc.GetByID(r.Context(), uid)
	if err != nil {
		return err
	}
	if u == nil {
		return apperr.Authentication("invalid refresh token")
	}
	return h.writeTokenPair(w, u, http.StatusOK)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	profile, err := h.svc.GetProfile(r.Context(), uid)
	if err != nil {
		return err
	}
	if profile == nil {
		return apperr.NotFound("user not found")
	}
	httpx.WriteJSON(w, profile, http.StatusOK)
	return nil
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) error {
	profile, err := h.svc.GetProfile(r.Context(), r.PathValue("user_id"))
	if err != nil {
		return err
	}
	if profile == nil {
		return apperr.NotFound("user not found")
	}
	httpx.WriteJSON(w, profile, http.StatusOK)
	return nil
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query().Get("q")
	if q == "" {
		return apperr.Validation("query parameter %q is required", "q")
	}
	limit := httpx.QueryInt(r, "limit", 20)
	users, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"items": users, "limit": limit}, http.StatusOK)
	return nil
}

func (h *Handler) writeTokenPair(w http.ResponseWriter, u *User, code int) error {
	access, err := h.issuer.IssueAccess(u.UserID)
	if err != nil {
		return err
	}
	refresh, err := h.issuer.IssueRefresh(u.UserID)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		UserID:       u.UserID,
		Username:     u.Username,
		Email:        u.Email,
		FullName:     u.FullName,
		Bio:          u.Bio,
		CreatedAt:    u.CreatedAt,
	}, code)
	return nil
}
