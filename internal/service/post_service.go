package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"miniblog/internal/config"
	"miniblog/internal/models"
	"miniblog/internal/repository"
	"strings"
)

type PostService interface {
	CreatePost(ctx context.Context, req repository.CreatePostRequest) (*models.Post, error)
	UpdatePost(ctx context.Context, req repository.UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, postID, userID string) error
	AddImage(ctx context.Context, postID, userID, fileName string, file io.Reader, size int64) (*models.Image, error)
	DeleteImage(ctx context.Context, postID, imageID, userID string) error
}

type postService struct {
	postRepo  repository.PostRepository
	imageRepo repository.ImageRepository
	storage   Storage
	cfg       *config.Config
}

// Storage mirrors storage.Storage so the service can be tested without a
// MinIO endpoint.
type Storage interface {
	UploadImage(ctx context.Context, postID string, fileName string, file io.Reader, size int64) (string, string, error)
	DeleteImage(ctx context.Context, objectName string) error
}

func NewPostService(postRepo repository.PostRepository, imageRepo repository.ImageRepository, storage Storage, cfg *config.Config) PostService {
	return &postService{
		postRepo:  postRepo,
		imageRepo: imageRepo,
		storage:   storage,
		cfg:       cfg,
	}
}

func (p *postService) CreatePost(ctx context.Context, req repository.CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		UserID:  req.UserID,
		Title:   req.Title,
		Content: req.Content,
	}

	err := p.postRepo.Create(ctx, post, req.CategoryIDs)
	if err != nil {
		return nil, err
	}

	return post, nil
}

// UpdatePost merges only the supplied fields into the stored post. The owner
// check runs before anything is written.
func (p *postService) UpdatePost(ctx context.Context, req repository.UpdatePostRequest) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	if post.UserID != req.UserID {
		return nil, ErrNotOwner
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}

	err = p.postRepo.Update(ctx, post)
	if err != nil {
		return nil, err
	}

	return post, nil
}

func (p *postService) DeletePost(ctx context.Context, postID, userID string) error {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.UserID != userID {
		return ErrNotOwner
	}

	err = p.postRepo.Delete(ctx, postID)
	if err != nil {
		return err
	}

	// DB rows are gone via cascade; object storage cleanup is best-effort
	for _, image := range post.Images {
		if err := p.storage.DeleteImage(ctx, p.objectNameFromURL(image.ImageURL)); err != nil {
			log.Printf("Предупреждение: не удалось удалить объект из MinIO: %v", err)
		}
	}

	return nil
}

func (p *postService) AddImage(ctx context.Context, postID, userID, fileName string, file io.Reader, size int64) (*models.Image, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.UserID != userID {
		return nil, ErrNotOwner
	}

	objectName, imageURL, err := p.storage.UploadImage(ctx, postID, fileName, file, size)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки изображения в MinIO: %w", err)
	}

	image := &models.Image{
		PostID:   postID,
		ImageURL: imageURL,
	}

	err = p.imageRepo.Create(ctx, image)
	if err != nil {
		p.storage.DeleteImage(ctx, objectName)
		return nil, fmt.Errorf("ошибка сохранения изображения в БД: %w", err)
	}

	return image, nil
}

func (p *postService) DeleteImage(ctx context.Context, postID, imageID, userID string) error {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.UserID != userID {
		return ErrNotOwner
	}

	image, err := p.imageRepo.GetByImageID(ctx, imageID)
	if err != nil {
		return err
	}

	if image.PostID != postID {
		return fmt.Errorf("изображение %s не относится к посту %s: %w", imageID, postID, repository.ErrNotFound)
	}

	if err := p.storage.DeleteImage(ctx, p.objectNameFromURL(image.ImageURL)); err != nil {
		log.Printf("Предупреждение: не удалось удалить объект из MinIO: %v", err)
	}

	return p.imageRepo.Delete(ctx, imageID)
}

// objectNameFromURL strips "<scheme>://<endpoint>/<bucket>/" and leaves the
// object key.
func (p *postService) objectNameFromURL(imageURL string) string {
	marker := "/" + p.cfg.MinIO.BucketName + "/"
	if idx := strings.Index(imageURL, marker); idx >= 0 {
		return imageURL[idx+len(marker):]
	}
	return imageURL
}
