package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Shaurya8425/Blogs/internal/blog/domain"
	"github.com/Shaurya8425/Blogs/internal/blog/dto"
	blogerror "github.com/Shaurya8425/Blogs/internal/errors"
	"github.com/google/uuid"
)

type PostService struct {
	repo domain.PostRepository
}

func NewPostService(repo domain.PostRepository) *PostService {
	return &PostService{repo: repo}
}

func (s *PostService) List(ctx context.Context) ([]*domain.Post, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []*domain.Post{}
	}
	return posts, nil
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error) {
	posts, err := s.repo.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []*domain.Post{}
	}
	return posts, nil
}

func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, blogerror.ErrPostNotFound
	}
	return post, nil
}

func (s *PostService) Create(ctx context.Context, authorID string, input dto.CreatePostInput) (*domain.Post, error) {
	now := time.Now()
	post := &domain.Post{
		ID:        uuid.NewString(),
		Title:     input.Title,
		Content:   input.Content,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	slog.Info("post created", "post_id", post.ID, "author_id", authorID)

	return s.Get(ctx, post.ID)
}

func (s *PostService) Update(ctx context.Context, userID, postID string, input dto.UpdatePostInput) (*domain.Post, error) {
	existing, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if existing.AuthorID != userID {
		return nil, blogerror.ErrNotOwner
	}

	existing.Title = input.Title
	existing.Content = input.Content
	if input.Published != nil {
		existing.Published = *input.Published
	} else {
		existing.Published = false
	}
	existing.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return s.Get(ctx, postID)
}

func (s *PostService) Delete(ctx context.Context, userID, postID string) error {
	existing, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}
	if existing.AuthorID != userID {
		return blogerror.ErrNotOwner
	}

	return s.repo.Delete(ctx, postID)
}

func (s *PostService) Upvote(ctx context.Context, userID, postID string) (*domain.Upvote, error) {
	// Missing posts get a 404 before the insert so the FK error never leaks.
	if _, err := s.Get(ctx, postID); err != nil {
		return nil, err
	}

	upvote := &domain.Upvote{
		ID:        uuid.NewString(),
		UserID:    userID,
		PostID:    postID,
		CreatedAt: time.Now(),
	}

	if err := s.repo.AddUpvote(ctx, upvote); err != nil {
		return nil, err
	}

	return upvote, nil
}

func (s *PostService) RemoveUpvote(ctx context.Context, userID, postID string) error {
	return s.repo.RemoveUpvote(ctx, userID, postID)
}

func (s *PostService) AddReply(ctx context.Context, userID, postID string, input dto.CreateReplyInput) (*domain.Reply, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, blogerror.ErrReplyContentRequired
	}

	if _, err := s.Get(ctx, postID); err != nil {
		return nil, err
	}

	reply := &domain.Reply{
		ID:        uuid.NewString(),
		Content:   input.Content,
		UserID:    userID,
		PostID:    postID,
		CreatedAt: time.Now(),
	}

	if err := s.repo.CreateReply(ctx, reply); err != nil {
		return nil, err
	}

	return s.repo.GetReply(ctx, reply.ID)
}

func (s *PostService) DeleteReply(ctx context.Context, userID, replyID string) error {
	reply, err := s.repo.GetReply(ctx, replyID)
	if err != nil {
		return err
	}
	if reply == nil {
		return blogerror.ErrReplyNotFound
	}
	if reply.UserID != userID {
		return blogerror.ErrNotOwner
	}

	return s.repo.DeleteReply(ctx, replyID)
}
