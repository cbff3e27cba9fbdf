package domain

//go:generate mockgen -destination=../../mocks/mock_post_repository.go -package=mocks github.com/Shaurya8425/Blogs/internal/blog/domain PostRepository

import "context"

type PostRepository interface {
	List(ctx context.Context) ([]*Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*Post, error)
	GetByID(ctx context.Context, id string) (*Post, error)
	Create(ctx context.Context, post *Post) error
	Update(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id string) error

	AddUpvote(ctx context.Context, upvote *Upvote) error
	RemoveUpvote(ctx context.Context, userID, postID string) error

	CreateReply(ctx context.Context, reply *Reply) error
	GetReply(ctx context.Context, id string) (*Reply, error)
	DeleteReply(ctx context.Context, id string) error
}
