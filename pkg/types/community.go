package types

const (
	DEFAULT_AUTHOR_NAME = "Anonymous"
	DEFAULT_AUTHOR_ROLE = "member"
	DEFAULT_AVATAR_SEED = "anonymous"
)

// DiscussionDto is a community discussion as the backend sends it. Counters
// and the id may arrive as numbers or numeric strings.
type DiscussionDto struct {
	ID            FlexValue        `json:"id"`
	Title         string           `json:"title"`
	Content       string           `json:"content"`
	Author        DiscussionAuthor `json:"author"`
	Tags          []string         `json:"tags"`
	LikeCount     FlexValue        `json:"likeCount"`
	ReplyCount    FlexValue        `json:"replyCount"`
	ViewCount     FlexValue        `json:"viewCount"`
	TrendingScore FlexValue        `json:"trendingScore"`
	CreatedAt     string           `json:"createdAt"`
}

type DiscussionAuthor struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Role     string `json:"role"`
}

type TagDto struct {
	Name  string    `json:"name"`
	Count FlexValue `json:"count"`
}

type CreateDiscussionRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type CommunityPost struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Author    PostAuthor `json:"author"`
	Tags      []string   `json:"tags"`
	Likes     int64      `json:"likes"`
	Comments  int64      `json:"comments"`
	Views     int64      `json:"views"`
	HotIndex  float64    `json:"hotIndex"`
	CreatedAt string     `json:"createdAt"`
	// filled by separate requests, left empty by the adapters
	CommentList []Comment `json:"commentList"`
	AISummary   string    `json:"aiSummary"`
}

type PostAuthor struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Role   string `json:"role"`
}

type CommunityTopic struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	PostCount int64  `json:"postCount"`
}

type Comment struct {
	ID        string     `json:"id"`
	ParentID  string     `json:"parentId"`
	Content   string     `json:"content"`
	Author    PostAuthor `json:"author"`
	Likes     int64      `json:"likes"`
	CreatedAt string     `json:"createdAt"`
}
