package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"miniblog/internal/middleware"
	"miniblog/internal/models"
	"miniblog/internal/repository"
)

type CreatePostRequest struct {
	Title       string   `json:"title" validate:"required,max=150"`
	Content     string   `json:"content" validate:"required"`
	CategoryIDs []string `json:"categoryIds" validate:"required,min=1"`
}

// UpdatePostRequest is a partial update: absent fields keep their value.
type UpdatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type CategorySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PostResponse struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	UserID     string            `json:"userId"`
	Categories []CategorySummary `json:"categories"`
	Images     []ImageResponse   `json:"images"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

type ImageResponse struct {
	ID       string `json:"id"`
	ImageURL string `json:"imageUrl"`
}

func newPostResponse(post *models.Post) PostResponse {
	categories := make([]CategorySummary, 0, len(post.Categories))
	for _, c := range post.Categories {
		categories = append(categories, CategorySummary{ID: c.CategoryID, Name: c.Name})
	}

	images := make([]ImageResponse, 0, len(post.Images))
	for _, img := range post.Images {
		images = append(images, ImageResponse{ID: img.ImageID, ImageURL: img.ImageURL})
	}

	return PostResponse{
		ID:         post.PostID,
		Title:      post.Title,
		Content:    post.Content,
		UserID:     post.UserID,
		Categories: categories,
		Images:     images,
		CreatedAt:  post.CreatedAt,
		UpdatedAt:  post.UpdatedAt,
	}
}

// pathUUID extracts and validates a UUID path variable; a malformed id is a
// 400 before any lookup happens.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value := mux.Vars(r)[name]
	if _, err := uuid.Parse(value); err != nil {
		WriteError(w, http.StatusBadRequest, KindValidation, "Invalid UUID: "+value)
		return "", false
	}
	return value, true
}

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r)

	posts, total, err := h.PostRepo.List(r.Context(), perPage, (page-1)*perPage)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, KindInternal, "Internal server error")
		return
	}

	items := make([]PostResponse, 0, len(posts))
	for i := range posts {
		items = append(items, newPostResponse(&posts[i]))
	}

	WriteSuccess(w, paginate(items, "/posts/", page, perPage, total), http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	post, err := h.PostRepo.GetByID(r.Context(), postID)
	if err != nil {
		writeServiceError(w, err, "Post not found: "+postID)
		return
	}

	WriteSuccess(w, newPostResponse(post), http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	if user == nil {
		WriteError(w, http.StatusUnauthorized, KindUnauthorized, "Authentication required")
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, KindValidation, "Invalid request body")
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, http.StatusBadRequest, KindValidation, "Invalid post data: "+err.Error())
		return
	}

	// every category id must be a well-formed UUID before we touch the store
	for _, categoryID := range req.CategoryIDs {
		if _, err := uuid.Parse(categoryID); err != nil {
			WriteError(w, http.StatusBadRequest, KindValidation, "Invalid category UUID: "+categoryID)
			return
		}
	}

	serviceReq := repository.CreatePostRequest{
		UserID:      user.UserID,
		Title:       req.Title,
		Content:     req.Content,
		CategoryIDs: req.CategoryIDs,
	}

	post, err := h.PostService.CreatePost(r.Context(), serviceReq)
	if err != nil {
		writeServiceError(w, err, "Post not found")
		return
	}

	WriteSuccess(w, newPostResponse(post), http.StatusCreated)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	if user == nil {
		WriteError(w, http.StatusUnauthorized, KindUnauthorized, "Authentication required")
		return
	}

	postID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, KindValidation, "Invalid request body")
		return
	}

	serviceReq := repository.UpdatePostRequest{
		PostID:  postID,
		UserID:  user.UserID,
		Title:   req.Title,
		Content: req.Content,
	}

	post, err := h.PostService.UpdatePost(r.Context(), serviceReq)
	if err != nil {
		writeServiceError(w, err, "Post not found: "+postID)
		return
	}

	WriteSuccess(w, newPostResponse(post), http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	if user == nil {
		WriteError(w, http.StatusUnauthorized, KindUnauthorized, "Authentication required")
		return
	}

	postID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.PostService.DeletePost(r.Context(), postID, user.UserID); err != nil {
		writeServiceError(w, err, "Post not found: "+postID)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Post deleted successfully"}, http.StatusOK)
}

func (h *Handlers) AddImage(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	if user == nil {
		WriteError(w, http.StatusUnauthorized, KindUnauthorized, "Authentication required")
		return
	}

	postID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, http.StatusBadRequest, KindValidation, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, http.StatusBadRequest, KindValidation, "Image file is required")
		return
	}
	defer file.Close()

	image, err := h.PostService.AddImage(r.Context(), postID, user.UserID, header.Filename, file, header.Size)
	if err != nil {
		writeServiceError(w, err, "Post not found: "+postID)
		return
	}

	WriteSuccess(w, ImageResponse{ID: image.ImageID, ImageURL: image.ImageURL}, http.StatusCreated)
}

func (h *Handlers) DeleteImage(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	if user == nil {
		WriteError(w, http.StatusUnauthorized, KindUnauthorized, "Authentication required")
		return
	}

	postID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	imageID, ok := pathUUID(w, r, "imageId")
	if !ok {
		return
	}

	if err := h.PostService.DeleteImage(r.Context(), postID, imageID, user.UserID); err != nil {
		writeServiceError(w, err, "Image not found: "+imageID)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Image deleted successfully"}, http.StatusOK)
}
