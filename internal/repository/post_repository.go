package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"miniblog/internal/models"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type postRepository struct {
	db *sqlx.DB
}

type CreatePostRequest struct {
	UserID      string   `json:"user_id"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	CategoryIDs []string `json:"category_ids"`
}

// UpdatePostRequest carries a partial update: nil fields are left untouched.
type UpdatePostRequest struct {
	PostID  string  `json:"post_id"`
	UserID  string  `json:"user_id"`
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts the post and its category links in one transaction.
// Every category id must resolve to an existing category, otherwise nothing
// is written and ErrCategoryMissing is returned.
func (r *postRepository) Create(ctx context.Context, post *models.Post, categoryIDs []string) error {
	// a repeated id is one link, not a missing category
	categoryIDs = dedupe(categoryIDs)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	var count int
	err = tx.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM categories WHERE category_id = ANY($1)`,
		pq.Array(categoryIDs))
	if err != nil {
		return fmt.Errorf("ошибка при проверке категорий: %w", err)
	}

	if count != len(categoryIDs) {
		return ErrCategoryMissing
	}

	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	query := `
		INSERT INTO posts (post_id, user_id, title, content, created_at, updated_at)
		VALUES (:post_id, :user_id, :title, :content, :created_at, :updated_at)
	`

	_, err = tx.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	for _, categoryID := range categoryIDs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO post_categories (post_id, category_id) VALUES ($1, $2)`,
			post.PostID, categoryID)
		if err != nil {
			return fmt.Errorf("ошибка при привязке категории: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	post.Categories, err = r.categoriesForPost(ctx, post.PostID)
	if err != nil {
		return err
	}

	return nil
}

func (r *postRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	var post models.Post

	query := `SELECT * FROM posts WHERE post_id = $1`

	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пост с ID %s: %w", postID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	post.Categories, err = r.categoriesForPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	post.Images, err = r.imagesForPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]models.Post, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM posts`)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при подсчёте постов: %w", err)
	}

	query := `SELECT * FROM posts ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	posts := []models.Post{}
	err = r.db.SelectContext(ctx, &posts, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка при получении постов: %w", err)
	}

	for i := range posts {
		posts[i].Categories, err = r.categoriesForPost(ctx, posts[i].PostID)
		if err != nil {
			return nil, 0, err
		}
		posts[i].Images, err = r.imagesForPost(ctx, posts[i].PostID)
		if err != nil {
			return nil, 0, err
		}
	}

	return posts, total, nil
}

// Update writes title/content only; user_id is immutable after creation.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = time.Now()

	query := `
		UPDATE posts SET
			title = :title,
			content = :content,
			updated_at = :updated_at
		WHERE post_id = :post_id
	`

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %s: %w", post.PostID, ErrNotFound)
	}

	return nil
}

// Delete removes the post row; comments, category links and image rows go
// with it via ON DELETE CASCADE.
func (r *postRepository) Delete(ctx context.Context, postID string) error {
	query := `DELETE FROM posts WHERE post_id = $1`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %s: %w", postID, ErrNotFound)
	}

	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

func (r *postRepository) categoriesForPost(ctx context.Context, postID string) ([]models.Category, error) {
	query := `
		SELECT c.* FROM categories c
		JOIN post_categories pc ON pc.category_id = c.category_id
		WHERE pc.post_id = $1
		ORDER BY c.name
	`

	categories := []models.Category{}
	err := r.db.SelectContext(ctx, &categories, query, postID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении категорий поста: %w", err)
	}

	return categories, nil
}

func (r *postRepository) imagesForPost(ctx context.Context, postID string) ([]models.Image, error) {
	query := `SELECT * FROM images WHERE post_id = $1 ORDER BY created_at`

	images := []models.Image{}
	err := r.db.SelectContext(ctx, &images, query, postID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении изображений поста: %w", err)
	}

	return images, nil
}
