package service

import (
	"errors"
	"miniblog/internal/config"
	"miniblog/internal/repository"
	"miniblog/internal/storage"
)

// ErrNotOwner means the caller is authenticated but is not the owner of the
// resource being mutated. Maps to 403, never 401.
var ErrNotOwner = errors.New("caller is not the resource owner")

type Service struct {
	Auth     AuthService
	Post     PostService
	Category CategoryService
	Comment  CommentService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Auth:     NewAuthService(rep.User, rep.Token, cfg),
		Post:     NewPostService(rep.Post, rep.Image, storage, cfg),
		Category: NewCategoryService(rep.Category),
		Comment:  NewCommentService(rep.Comment, rep.Post),
	}
}
