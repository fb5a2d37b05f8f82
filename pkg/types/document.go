package types

type Document struct {
	ID        string `json:"id" validate:"required"`
	Title     string `json:"title"`
	KBEnabled bool   `json:"kbEnabled"`
	Favorited bool   `json:"favorited"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type FavoriteResult struct {
	DocumentID string `json:"documentId" validate:"required"`
	Favorited  bool   `json:"favorited"`
}

// RawComment is the comment shape as the backend sends it.
type RawComment struct {
	ID         string        `json:"id" validate:"required"`
	DocumentID string        `json:"documentId"`
	ParentID   string        `json:"parentId,omitempty"`
	Content    string        `json:"content"`
	Author     CommentAuthor `json:"author"`
	LikeCount  FlexValue     `json:"likeCount"`
	CreatedAt  string        `json:"createdAt"`
}

type CommentAuthor struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

type CreateCommentRequest struct {
	Content  string `json:"content"`
	ParentID string `json:"parentId,omitempty"`
}
