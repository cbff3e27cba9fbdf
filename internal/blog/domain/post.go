package domain

import "time"

// Author is the subset of a user embedded in post and reply payloads.
type Author struct {
	ID    string  `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
}

type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	AuthorID  string    `json:"authorId"`
	Author    Author    `json:"author"`
	Upvotes   []Upvote  `json:"upvotes"`
	Replies   []Reply   `json:"replies"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Reply struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	UserID    string    `json:"userId"`
	PostID    string    `json:"postId"`
	User      Author    `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

type Upvote struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	PostID    string    `json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}
