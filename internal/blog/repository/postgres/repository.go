package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Shaurya8425/Blogs/internal/blog/domain"
	blogerror "github.com/Shaurya8425/Blogs/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgerrUniqueViolation = "23505"
	pgerrFKViolation     = "23503"
)

// DBTX is the subset of pgxpool.Pool the repository needs; pgxmock satisfies
// it too.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DBTX
}

func NewPostgresRepository(db DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const postColumns = `
	p.id, p.title, p.content, p.published, p.author_id, p.created_at, p.updated_at,
	u.id, u.email, u.name
`

func scanPost(row pgx.Row) (*domain.Post, error) {
	var post domain.Post
	err := row.Scan(
		&post.ID, &post.Title, &post.Content, &post.Published, &post.AuthorID,
		&post.CreatedAt, &post.UpdatedAt,
		&post.Author.ID, &post.Author.Email, &post.Author.Name,
	)
	if err != nil {
		return nil, err
	}
	post.Upvotes = []domain.Upvote{}
	post.Replies = []domain.Reply{}
	return &post, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*domain.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		ORDER BY p.created_at DESC;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts, err := collectPosts(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachChildren(ctx, posts); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *PostgresRepository) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.author_id = $1
		ORDER BY p.created_at DESC;
	`
	rows, err := r.db.Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts by author: %w", err)
	}
	defer rows.Close()

	posts, err := collectPosts(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachChildren(ctx, posts); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $1
		LIMIT 1;
	`
	post, err := scanPost(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	if err := r.attachChildren(ctx, []*domain.Post{post}); err != nil {
		return nil, err
	}

	return post, nil
}

func (r *PostgresRepository) Create(ctx context.Context, post *domain.Post) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO posts (id, title, content, published, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, post.ID, post.Title, post.Content, post.Published, post.AuthorID, post.CreatedAt, post.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrFKViolation {
			return blogerror.ErrAuthorMissing
		}
		return err
	}

	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, post *domain.Post) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE posts
		SET title = $2, content = $3, published = $4, updated_at = $5
		WHERE id = $1
	`, post.ID, post.Title, post.Content, post.Published, post.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return blogerror.ErrPostNotFound
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return blogerror.ErrPostNotFound
	}

	return nil
}

func (r *PostgresRepository) AddUpvote(ctx context.Context, upvote *domain.Upvote) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO upvotes (id, user_id, post_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, upvote.ID, upvote.UserID, upvote.PostID, upvote.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrUniqueViolation:
				return blogerror.ErrAlreadyUpvoted
			case pgerrFKViolation:
				return blogerror.ErrPostNotFound
			}
		}
		return err
	}

	return nil
}

func (r *PostgresRepository) RemoveUpvote(ctx context.Context, userID, postID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM upvotes WHERE user_id = $1 AND post_id = $2`, userID, postID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return blogerror.ErrUpvoteNotFound
	}

	return nil
}

func (r *PostgresRepository) CreateReply(ctx context.Context, reply *domain.Reply) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO replies (id, content, user_id, post_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, reply.ID, reply.Content, reply.UserID, reply.PostID, reply.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrFKViolation {
			return blogerror.ErrPostNotFound
		}
		return err
	}

	return nil
}

func (r *PostgresRepository) GetReply(ctx context.Context, id string) (*domain.Reply, error) {
	query := `
		SELECT r.id, r.content, r.user_id, r.post_id, r.created_at, u.id, u.email, u.name
		FROM replies r
		JOIN users u ON u.id = r.user_id
		WHERE r.id = $1
		LIMIT 1;
	`
	var reply domain.Reply
	err := r.db.QueryRow(ctx, query, id).Scan(
		&reply.ID, &reply.Content, &reply.UserID, &reply.PostID, &reply.CreatedAt,
		&reply.User.ID, &reply.User.Email, &reply.User.Name,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get reply: %w", err)
	}

	return &reply, nil
}

func (r *PostgresRepository) DeleteReply(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM replies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return blogerror.ErrReplyNotFound
	}

	return nil
}

func collectPosts(rows pgx.Rows) ([]*domain.Post, error) {
	var posts []*domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

// attachChildren loads replies (with their authors) and upvotes for the given
// posts in two queries and distributes them by post id.
func (r *PostgresRepository) attachChildren(ctx context.Context, posts []*domain.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]string, len(posts))
	byID := make(map[string]*domain.Post, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
		byID[p.ID] = p
	}

	replyRows, err := r.db.Query(ctx, `
		SELECT r.id, r.content, r.user_id, r.post_id, r.created_at, u.id, u.email, u.name
		FROM replies r
		JOIN users u ON u.id = r.user_id
		WHERE r.post_id = ANY($1)
		ORDER BY r.created_at;
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to load replies: %w", err)
	}
	defer replyRows.Close()

	for replyRows.Next() {
		var reply domain.Reply
		err := replyRows.Scan(
			&reply.ID, &reply.Content, &reply.UserID, &reply.PostID, &reply.CreatedAt,
			&reply.User.ID, &reply.User.Email, &reply.User.Name,
		)
		if err != nil {
			return err
		}
		if post, ok := byID[reply.PostID]; ok {
			post.Replies = append(post.Replies, reply)
		}
	}
	if err := replyRows.Err(); err != nil {
		return err
	}

	upvoteRows, err := r.db.Query(ctx, `
		SELECT id, user_id, post_id, created_at
		FROM upvotes
		WHERE post_id = ANY($1);
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to load upvotes: %w", err)
	}
	defer upvoteRows.Close()

	for upvoteRows.Next() {
		var upvote domain.Upvote
		if err := upvoteRows.Scan(&upvote.ID, &upvote.UserID, &upvote.PostID, &upvote.CreatedAt); err != nil {
			return err
		}
		if post, ok := byID[upvote.PostID]; ok {
			post.Upvotes = append(post.Upvotes, upvote)
		}
	}

	return upvoteRows.Err()
}
