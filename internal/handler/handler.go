package handlers

import (
	"github.com/go-playground/validator/v10"
	"miniblog/internal/config"
	"miniblog/internal/database"
	"miniblog/internal/repository"
	"miniblog/internal/service"
)

type Handlers struct {
	AuthService     service.AuthService
	PostService     service.PostService
	CategoryService service.CategoryService
	CommentService  service.CommentService
	UserRepo        repository.UserRepository
	PostRepo        repository.PostRepository
	CategoryRepo    repository.CategoryRepository
	CommentRepo     repository.CommentRepository
	DB              *database.DB
	Cfg             *config.Config
	Validate        *validator.Validate
}

func NewHandlers(repo *repository.Repository, service *service.Service, db *database.DB, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:     service.Auth,
		PostService:     service.Post,
		CategoryService: service.Category,
		CommentService:  service.Comment,
		UserRepo:        repo.User,
		PostRepo:        repo.Post,
		CategoryRepo:    repo.Category,
		CommentRepo:     repo.Comment,
		DB:              db,
		Cfg:             config,
		Validate:        validator.New(),
	}
}
