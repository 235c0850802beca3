package post

import (
	"net/http"

	"social-service/internal/shared/apperr"
	"social-service/internal/shared/httpx"
	"social-service/internal/shared/validate"
)

type Handler struct{ svc Service }

func NewHandler(svc Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	body, err := httpx.Decode[CreatePostReq](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(body); err != nil {
		return err
	}
	created, err := h.svc.Create(r.Context(), uid, body)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, created, http.StatusCreated)
	return nil
}

// Get serves anonymous viewers too; is_liked is only meaningful when the
// optional bearer token identified a viewer.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) error {
	viewerID, _ := httpx.UserFromCtx(r)
	p, err := h.svc.Get(r.Context(), r.PathValue("post_id"), viewerID)
	if err != nil {
		return err
	}
	if p == nil {
		return apperr.NotFound("post not found")
	}
	httpx.WriteJSON(w, p, http.StatusOK)
	return nil
}

func (h *Handler) Like(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	postID := r.PathValue("post_id")
	liked, err := h.svc.Like(r.Context(), uid, postID)
	if err != nil {
		return err
	}
	if !liked {
		return apperr.NotFound("post not found")
	}
	httpx.WriteJSON(w, map[string]any{"post_id": postID, "user_id": uid, "liked": true}, http.StatusOK)
	return nil
}

func (h *Handler) Unlike(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	postID := r.PathValue("post_id")
	unliked, err := h.svc.Unlike(r.Context(), uid, postID)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"post_id": postID, "user_id": uid, "unliked": unliked}, http.StatusOK)
	return nil
}

func (h *Handler) Comment(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	body, err := httpx.Decode[CreateCommentReq](r)
	if err != nil {
		return err
	}
	if err := validate.Struct(body); err != nil {
		return err
	}
	created, err := h.svc.Comment(r.Context(), uid, r.PathValue("post_id"), body)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, created, http.StatusCreated)
	return nil
}

func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) error {
	limit := httpx.QueryInt(r, "limit", 50)
	comments, err := h.svc.ListComments(r.Context(), r.PathValue("post_id"), limit)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"items": comments, "limit": limit}, http.StatusOK)
	return nil
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(r.Context(), uid, r.PathValue("post_id")); err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"deleted": true}, http.StatusOK)
	return nil
}
