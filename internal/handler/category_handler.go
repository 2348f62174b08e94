package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"miniblog/internal/models"
	"miniblog/internal/repository"
)

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=50"`
	Description string `json:"description" validate:"required"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newCategoryResponse(category *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.CategoryID,
		Name:        category.Name,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

func (h *Handlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r)

	categories, total, err := h.CategoryRepo.List(r.Context(), perPage, (page-1)*perPage)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, KindInternal, "Internal server error")
		return
	}

	items := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, newCategoryResponse(&categories[i]))
	}

	WriteSuccess(w, paginate(items, "/categories/", page, perPage, total), http.StatusOK)
}

func (h *Handlers) GetCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	category, err := h.CategoryRepo.GetByID(r.Context(), categoryID)
	if err != nil {
		writeServiceError(w, err, "Category not found: "+categoryID)
		return
	}

	WriteSuccess(w, newCategoryResponse(category), http.StatusOK)
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, KindValidation, "Invalid request body")
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, http.StatusBadRequest, KindValidation, "Invalid category data: "+err.Error())
		return
	}

	serviceReq := repository.CreateCategoryRequest{
		Name:        req.Name,
		Description: req.Description,
	}

	category, err := h.CategoryService.CreateCategory(r.Context(), serviceReq)
	if err != nil {
		writeServiceError(w, err, "Category not found")
		return
	}

	WriteSuccess(w, newCategoryResponse(category), http.StatusCreated)
}

func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, KindValidation, "Invalid request body")
		return
	}

	serviceReq := repository.UpdateCategoryRequest{
		CategoryID:  categoryID,
		Name:        req.Name,
		Description: req.Description,
	}

	category, err := h.CategoryService.UpdateCategory(r.Context(), serviceReq)
	if err != nil {
		writeServiceError(w, err, "Category not found: "+categoryID)
		return
	}

	WriteSuccess(w, newCategoryResponse(category), http.StatusOK)
}

func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.CategoryService.DeleteCategory(r.Context(), categoryID); err != nil {
		writeServiceError(w, err, "Category not found: "+categoryID)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Category deleted successfully"}, http.StatusOK)
}
