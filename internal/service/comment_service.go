package service

import (
	"context"
	"fmt"
	"miniblog/internal/models"
	"miniblog/internal/repository"
)

type CommentService interface {
	CreateComment(ctx context.Context, req repository.CreateCommentRequest) (*models.Comment, error)
	GetComment(ctx context.Context, postID, commentID string) (*models.Comment, error)
	UpdateComment(ctx context.Context, req repository.UpdateCommentRequest) (*models.Comment, error)
	DeleteComment(ctx context.Context, postID, commentID, userID string) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// CreateComment requires the parent post to exist; the author id always comes
// from the authenticated caller, never from the payload.
func (s *commentService) CreateComment(ctx context.Context, req repository.CreateCommentRequest) (*models.Comment, error) {
	_, err := s.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: req.Content,
		UserID:  req.UserID,
		PostID:  req.PostID,
	}

	err = s.commentRepo.Create(ctx, comment)
	if err != nil {
		return nil, err
	}

	return comment, nil
}

// GetComment resolves a comment inside its post: a comment id that exists but
// hangs off another post is a 404, not a leak.
func (s *commentService) GetComment(ctx context.Context, postID, commentID string) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if comment.PostID != postID {
		return nil, fmt.Errorf("комментарий %s не относится к посту %s: %w", commentID, postID, repository.ErrNotFound)
	}

	return comment, nil
}

func (s *commentService) UpdateComment(ctx context.Context, req repository.UpdateCommentRequest) (*models.Comment, error) {
	comment, err := s.GetComment(ctx, req.PostID, req.CommentID)
	if err != nil {
		return nil, err
	}

	if comment.UserID != req.UserID {
		return nil, ErrNotOwner
	}

	comment.Content = req.Content

	err = s.commentRepo.Update(ctx, comment)
	if err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *commentService) DeleteComment(ctx context.Context, postID, commentID, userID string) error {
	comment, err := s.GetComment(ctx, postID, commentID)
	if err != nil {
		return err
	}

	if comment.UserID != userID {
		return ErrNotOwner
	}

	return s.commentRepo.Delete(ctx, commentID)
}
