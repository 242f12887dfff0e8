package repository

import (
	"context"
	"errors"

	"github.com/folio/folio/server/internal/post"
)

var ErrNotFound = errors.New("post not found")

// Repository provides post persistence operations. List returns posts ordered
// by creation time, most recent first.
type Repository interface {
	Create(ctx context.Context, p *post.Post) (*post.Post, error)
	Get(ctx context.Context, id string) (*post.Post, error)
	List(ctx context.Context) ([]*post.Post, error)
	Update(ctx context.Context, id string, f post.Fields) (*post.Post, error)
	Delete(ctx context.Context, id string) error
}
