package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/msomdec/inkpost/internal/service"
)

// PostHandler handles post-related HTTP requests.
type PostHandler struct {
	posts *service.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(posts *service.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// HandleList returns published posts, newest first.
// GET /posts
func (h *PostHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.ListPublished(r.Context())
	if err != nil {
		writeServiceError(w, r, "list posts", err)
		return
	}
	writeJSON(w, http.StatusOK, toPostDTOs(posts))
}

// HandleListMine returns all of the caller's posts, drafts included.
// GET /posts/mine
func (h *PostHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.ListMine(r.Context(), UserFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, "list own posts", err)
		return
	}
	writeJSON(w, http.StatusOK, toPostDTOs(posts))
}

// HandleCreate creates a post owned by the caller.
// POST /posts
// Request:  {"title":"...","content":"...","published":false}
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req service.CreatePostInput
	if !decode(w, r, &req) {
		return
	}

	post, err := h.posts.Create(r.Context(), UserFromContext(r.Context()), req)
	if err != nil {
		writeServiceError(w, r, "create post", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPostDTO(post))
}

// HandleGet returns a single post with its author and comment count.
// GET /posts/{uid}
func (h *PostHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.Get(r.Context(), UserFromContext(r.Context()), chi.URLParam(r, "uid"))
	if err != nil {
		writeServiceError(w, r, "get post", err)
		return
	}
	writeJSON(w, http.StatusOK, toPostDTO(post))
}

// HandleUpdate applies a partial update to a post the caller owns.
// PATCH /posts/{uid}
// Request:  {"title":"...","content":"...","published":true} (any subset, at least one)
func (h *PostHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req service.UpdatePostInput
	if !decode(w, r, &req) {
		return
	}

	post, err := h.posts.Update(r.Context(), UserFromContext(r.Context()), chi.URLParam(r, "uid"), req)
	if err != nil {
		writeServiceError(w, r, "update post", err)
		return
	}
	writeJSON(w, http.StatusOK, toPostDTO(post))
}

// HandleDelete removes a post the caller owns along with its comments.
// DELETE /posts/{uid}
func (h *PostHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.posts.Delete(r.Context(), UserFromContext(r.Context()), chi.URLParam(r, "uid")); err != nil {
		writeServiceError(w, r, "delete post", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
