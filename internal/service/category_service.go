package service

import (
	"context"
	"miniblog/internal/models"
	"miniblog/internal/repository"
)

type CategoryService interface {
	CreateCategory(ctx context.Context, req repository.CreateCategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, req repository.UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) CreateCategory(ctx context.Context, req repository.CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
	}

	err := s.categoryRepo.Create(ctx, category)
	if err != nil {
		return nil, err
	}

	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, req repository.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	err = s.categoryRepo.Update(ctx, category)
	if err != nil {
		return nil, err
	}

	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	return s.categoryRepo.Delete(ctx, categoryID)
}
