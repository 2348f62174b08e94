package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"miniblog/internal/middleware"
	"miniblog/internal/models"
	"miniblog/internal/repository"
)

type CommentRequest struct {
	Content string `json:"content" validate:"required"`
}

type CommentResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	UserID    string    `json:"userId"`
	PostID    string    `json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newCommentResponse(comment *models.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.CommentID,
		Content:   comment.Content,
		UserID:    comment.UserID,
		PostID:    comment.PostID,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

func (h *Handlers) GetComments(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	// the parent post must exist, otherwise the list is a 404
	if _, err := h.PostRepo.GetByID(r.Context(), postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, http.StatusNotFound, KindNotFound, "Post not found: "+postID)
			return
		}
		WriteError(w, http.StatusInternalServerError, KindInternal, "Internal server error")
		return
	}

	page, perPage := parsePagination(r)

	comments, total, err := h.CommentRepo.ListByPostID(r.Context(), postID, perPage, (page-1)*perPage)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, KindInternal, "Internal server error")
		return
	}

	items := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, newCommentResponse(&comments[i]))
	}

	basePath := fmt.Sprintf("/posts/%s/comments/", postID)
	WriteSuccess(w, paginate(items, basePath, page, perPage, total), http.StatusOK)
}

func (h *Handlers) GetComment(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	commentID, ok := pathUUID(w, r, "commentId")
	if !ok {
		return
	}

	comment, err := h.CommentService.GetComment(r.Context(), postID, commentID)
	if err != nil {
		writeServiceError(w, err, "Comment not found: "+commentID)
		return
	}

	WriteSuccess(w, newCommentResponse(comment), http.StatusOK)
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	if user == nil {
		WriteError(w, http.StatusUnauthorized, KindUnauthorized, "Authentication required")
		return
	}

	postID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, KindValidation, "Invalid request body")
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, http.StatusBadRequest, KindValidation, "Comment content is required")
		return
	}

	serviceReq := repository.CreateCommentRequest{
		PostID:  postID,
		UserID:  user.UserID,
		Content: req.Content,
	}

	comment, err := h.CommentService.CreateComment(r.Context(), serviceReq)
	if err != nil {
		writeServiceError(w, err, "Post not found: "+postID)
		return
	}

	WriteSuccess(w, newCommentResponse(comment), http.StatusCreated)
}

func (h *Handlers) UpdateComment(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	if user == nil {
		WriteError(w, http.StatusUnauthorized, KindUnauthorized, "Authentication required")
		return
	}

	postID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	commentID, ok := pathUUID(w, r, "commentId")
	if !ok {
		return
	}

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, KindValidation, "Invalid request body")
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, http.StatusBadRequest, KindValidation, "Comment content is required")
		return
	}

	serviceReq := repository.UpdateCommentRequest{
		CommentID: commentID,
		PostID:    postID,
		UserID:    user.UserID,
		Content:   req.Content,
	}

	comment, err := h.CommentService.UpdateComment(r.Context(), serviceReq)
	if err != nil {
		writeServiceError(w, err, "Comment not found: "+commentID)
		return
	}

	WriteSuccess(w, newCommentResponse(comment), http.StatusOK)
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	if user == nil {
		WriteError(w, http.StatusUnauthorized, KindUnauthorized, "Authentication required")
		return
	}

	postID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	commentID, ok := pathUUID(w, r, "commentId")
	if !ok {
		return
	}

	if err := h.CommentService.DeleteComment(r.Context(), postID, commentID, user.UserID); err != nil {
		writeServiceError(w, err, "Comment not found: "+commentID)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Comment deleted successfully"}, http.StatusOK)
}
