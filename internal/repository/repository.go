package repository

import (
	"context"
	"errors"
	"miniblog/internal/models"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Sentinel errors so that handlers can map persistence failures onto the
// HTTP taxonomy with errors.Is instead of matching message text.
var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicate       = errors.New("duplicate value")
	ErrCategoryMissing = errors.New("category does not exist")
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	VerifyPassword(ctx context.Context, username, password string) (*models.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post, categoryIDs []string) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	List(ctx context.Context, limit, offset int) ([]models.Post, int, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID string) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, categoryID string) (*models.Category, error)
	List(ctx context.Context, limit, offset int) ([]models.Category, int, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, categoryID string) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, commentID string) (*models.Comment, error)
	ListByPostID(ctx context.Context, postID string, limit, offset int) ([]models.Comment, int, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, commentID string) error
}

// TokenRepository is the shared token denylist. Revoke is an upsert and
// IsRevoked is a point read, so no extra locking is needed around them.
type TokenRepository interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type ImageRepository interface {
	Create(ctx context.Context, image *models.Image) error
	GetByImageID(ctx context.Context, imageID string) (*models.Image, error)
	Delete(ctx context.Context, imageID string) error
}

type Repository struct {
	User     UserRepository
	Post     PostRepository
	Category CategoryRepository
	Comment  CommentRepository
	Token    TokenRepository
	Image    ImageRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:     NewUserRepository(db),
		Post:     NewPostRepository(db),
		Category: NewCategoryRepository(db),
		Comment:  NewCommentRepository(db),
		Token:    NewTokenRepository(db),
		Image:    NewImageRepository(db),
	}
}

// isUniqueViolation reports whether err is the Postgres unique_violation
// error (duplicate username/email/category name).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
