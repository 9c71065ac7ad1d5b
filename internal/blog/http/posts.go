package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/inkpothq/inkpot/internal/blog/domain"
	"github.com/inkpothq/inkpot/internal/blog/service"
	"github.com/inkpothq/inkpot/pkg/blogsdk"
	"github.com/inkpothq/inkpot/pkg/httpx"
	"github.com/inkpothq/inkpot/pkg/slogx"
)

type PostsHandler struct {
	PostService *service.PostService
}

func sdkPost(p domain.Post) blogsdk.Post {
	return blogsdk.Post{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Img:         p.Img,
		Cat:         p.Cat,
		Date:        p.Date,
		UID:         p.UID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func sdkPostDetail(d domain.PostDetail) blogsdk.Post {
	p := sdkPost(d.Post)
	p.Username = d.Username
	p.UserImg = d.UserImg
	return p
}

func postInput(req blogsdk.PostRequest) service.PostInput {
	return service.PostInput{
		Title:       req.Title,
		Description: req.Description,
		Img:         req.Img,
		Cat:         req.Cat,
		Date:        req.Date,
	}
}

// HandleList serves all posts newest-first, optionally filtered with ?cat=.
func (h *PostsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	posts, err := h.PostService.List(ctx, r.URL.Query().Get("cat"))
	if err != nil {
		log.Error("listing posts failed", "err", err)
		blogsdk.ErrServerError.WriteError(w)
		return
	}

	out := make([]blogsdk.Post, 0, len(posts))
	for _, p := range posts {
		out = append(out, sdkPost(p))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet serves a single post with its author's public attributes.
func (h *PostsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	detail, err := h.PostService.Get(ctx, r.PathValue("id"))
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, sdkPostDetail(detail))
	case errors.Is(err, service.ErrPostNotFound):
		blogsdk.ErrPostNotFound.WriteError(w)
	default:
		log.Error("fetching post failed", "err", err)
		blogsdk.ErrServerError.WriteError(w)
	}
}

// HandleCreate creates a post authored by the session user.
func (h *PostsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req blogsdk.PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		blogsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	post, err := h.PostService.Create(ctx, httpx.UserIDFromCtx(ctx), postInput(req))
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusCreated, sdkPost(post))
	case errors.Is(err, service.ErrMissingFields):
		blogsdk.ErrInvalidRequest.WriteError(w)
	default:
		log.Error("creating post failed", "err", err)
		blogsdk.ErrServerError.WriteError(w)
	}
}

// HandleUpdate mutates a post owned by the session user.
func (h *PostsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req blogsdk.PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		blogsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	err := h.PostService.Update(ctx, r.PathValue("id"), httpx.UserIDFromCtx(ctx), postInput(req))
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, blogsdk.MessageResponse{Message: "Post has been updated."})
	case errors.Is(err, service.ErrNotOwner):
		blogsdk.ErrNotPostOwner.WriteError(w)
	case errors.Is(err, service.ErrMissingFields):
		blogsdk.ErrInvalidRequest.WriteError(w)
	default:
		log.Error("updating post failed", "err", err)
		blogsdk.ErrServerError.WriteError(w)
	}
}

// HandleDelete removes a post owned by the session user.
func (h *PostsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	err := h.PostService.Delete(ctx, r.PathValue("id"), httpx.UserIDFromCtx(ctx))
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, blogsdk.MessageResponse{Message: "Post has been deleted."})
	case errors.Is(err, service.ErrNotOwner):
		blogsdk.ErrNotPostOwner.WriteError(w)
	default:
		log.Error("deleting post failed", "err", err)
		blogsdk.ErrServerError.WriteError(w)
	}
}
