package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"miniblog/internal/models"
	"time"
)

type categoryRepository struct {
	db *sqlx.DB
}

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateCategoryRequest struct {
	CategoryID  string  `json:"category_id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func NewCategoryRepository(db *sqlx.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	if category.CategoryID == "" {
		category.CategoryID = uuid.New().String()
	}

	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now

	query := `
		INSERT INTO categories (category_id, name, description, created_at, updated_at)
		VALUES (:category_id, :name, :description, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, category)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("категория %s уже существует: %w", category.Name, ErrDuplicate)
		}
		return fmt.Errorf("ошибка при создании категории: %w", err)
	}

	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, categoryID string) (*models.Category, error) {
	var category models.Category

	query := `SELECT * FROM categories WHERE category_id = $1`

	err := r.db.GetContext(ctx, &category, query, categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("категория с ID %s: %w", categoryID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении категории: %w", err)
	}

	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context, limit, offset int) ([]models.Category, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM categories`)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при подсчёте категорий: %w", err)
	}

	query := `SELECT * FROM categories ORDER BY name LIMIT $1 OFFSET $2`

	categories := []models.Category{}
	err = r.db.SelectContext(ctx, &categories, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при получении категорий: %w", err)
	}

	return categories, total, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	category.UpdatedAt = time.Now()

	query := `
		UPDATE categories
		SET name = :name, description = :description, updated_at = :updated_at
		WHERE category_id = :category_id
	`

	result, err := r.db.NamedExecContext(ctx, query, category)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("категория %s уже существует: %w", category.Name, ErrDuplicate)
		}
		return fmt.Errorf("ошибка при обновлении категории: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("категория с ID %s: %w", category.CategoryID, ErrNotFound)
	}

	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, categoryID string) error {
	query := `DELETE FROM categories WHERE category_id = $1`

	result, err := r.db.ExecContext(ctx, query, categoryID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении категории: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("категория с ID %s: %w", categoryID, ErrNotFound)
	}

	return nil
}
