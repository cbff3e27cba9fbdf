package dto

type CreatePostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type UpdatePostInput struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published *bool  `json:"published"`
}

type CreateReplyInput struct {
	Content string `json:"content"`
}

type UploadOutput struct {
	URL string `json:"url"`
}
