package social

import (
	"net/http"

	"social-service/internal/shared/apperr"
	"social-service/internal/shared/httpx"
)

type Handler struct{ svc Service }

func NewHandler(svc Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) Follow(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	target := r.PathValue("user_id")
	followed, err := h.svc.Follow(r.Context(), uid, target)
	if err != nil {
		return err
	}
	if !followed {
		return apperr.NotFound("user not found")
	}
	httpx.WriteJSON(w, map[string]any{"following": target, "followed": true}, http.StatusOK)
	return nil
}

func (h *Handler) Unfollow(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	target := r.PathValue("user_id")
	unfollowed, err := h.svc.Unfollow(r.Context(), uid, target)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"following": target, "unfollowed": unfollowed}, http.StatusOK)
	return nil
}

func (h *Handler) Followers(w http.ResponseWriter, r *http.Request) error {
	limit := httpx.QueryInt(r, "limit", 50)
	users, err := h.svc.Followers(r.Context(), r.PathValue("user_id"), limit)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"items": users, "limit": limit}, http.StatusOK)
	return nil
}

func (h *Handler) Following(w http.ResponseWriter, r *http.Request) error {
	limit := httpx.QueryInt(r, "limit", 50)
	users, err := h.svc.Following(r.Context(), r.PathValue("user_id"), limit)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"items": users, "limit": limit}, http.StatusOK)
	return nil
}

func (h *Handler) MutualFollowers(w http.ResponseWriter, r *http.Request) error {
	users, err := h.svc.MutualFollowers(r.Context(), r.PathValue("user_a"), r.PathValue("user_b"))
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"items": users}, http.StatusOK)
	return nil
}

func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	limit := httpx.QueryInt(r, "limit", 50)
	posts, err := h.svc.Feed(r.Context(), uid, limit)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"items": posts, "limit": limit}, http.StatusOK)
	return nil
}

func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) error {
	limit := httpx.QueryInt(r, "limit", 50)
	suggestions, err := h.svc.Suggestions(r.Context(), r.PathValue("user_id"), limit)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"items": suggestions, "limit": limit}, http.StatusOK)
	return nil
}
