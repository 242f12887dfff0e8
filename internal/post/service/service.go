package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/folio/folio/server/internal/post"
	"github.com/folio/folio/server/internal/post/repository"
)

var ErrNotFound = errors.New("not found")

// Service defines the post business operations used by the handler layer.
type Service interface {
	Create(ctx context.Context, f post.Fields) (*post.Post, error)
	Get(ctx context.Context, id string) (*post.Post, error)
	List(ctx context.Context) ([]*post.Post, error)
	Update(ctx context.Context, id string, f post.Fields) (*post.Post, error)
	Delete(ctx context.Context, id string) error
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService() Service {
	return &service{repo: repository.NewMemoryRepo()}
}

// NewMongoService returns a Service backed by a MongoDB collection. Caller is
// responsible for creating the collection (and client) and passing it in.
func NewMongoService(col *mongo.Collection) Service {
	return &service{repo: repository.NewMongoRepo(col)}
}

// NewService wraps an arbitrary repository.
func NewService(repo repository.Repository) Service {
	return &service{repo: repo}
}

type service struct {
	repo repository.Repository
}

func (s *service) Create(ctx context.Context, f post.Fields) (*post.Post, error) {
	p := &post.Post{
		Title:    f.Title,
		Content:  f.Content,
		Image:    f.Image,
		Category: f.Category,
		Tags:     f.Tags,
	}
	return s.repo.Create(ctx, p)
}

func (s *service) Get(ctx context.Context, id string) (*post.Post, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *service) List(ctx context.Context) ([]*post.Post, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id string, f post.Fields) (*post.Post, error) {
	p, err := s.repo.Update(ctx, id, f)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
