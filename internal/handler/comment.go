package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/msomdec/inkpost/internal/service"
)

// CommentHandler handles comment-related HTTP requests.
type CommentHandler struct {
	comments *service.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(comments *service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// GET /posts/{uid}/comments
func (h *CommentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.List(r.Context(), UserFromContext(r.Context()), chi.URLParam(r, "uid"))
	if err != nil {
		writeServiceError(w, r, "list comments", err)
		return
	}
	writeJSON(w, http.StatusOK, toCommentDTOs(comments))
}

// POST /posts/{uid}/comments
// Request: {"content":"...","displayName":"..."}
func (h *CommentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req service.CreateCommentInput
	if !decode(w, r, &req) {
		return
	}

	comment, err := h.comments.Create(r.Context(), UserFromContext(r.Context()), chi.URLParam(r, "uid"), req)
	if err != nil {
		writeServiceError(w, r, "create comment", err)
		return
	}
	writeJSON(w, http.StatusCreated, toCommentDTO(comment))
}

// PATCH /posts/{uid}/comments/{cuid}
// Request: {"content":"..."}
func (h *CommentHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateCommentInput
	if !decode(w, r, &req) {
		return
	}

	comment, err := h.comments.Update(r.Context(), UserFromContext(r.Context()),
		chi.URLParam(r, "uid"), chi.URLParam(r, "cuid"), req)
	if err != nil {
		writeServiceError(w, r, "update comment", err)
		return
	}
	writeJSON(w, http.StatusOK, toCommentDTO(comment))
}

// DELETE /posts/{uid}/comments/{cuid}
func (h *CommentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.comments.Delete(r.Context(), UserFromContext(r.Context()),
		chi.URLParam(r, "uid"), chi.URLParam(r, "cuid"))
	if err != nil {
		writeServiceError(w, r, "delete comment", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
