package models

// Comment defines the structure for post comments. A comment lives and dies
// with its parent post.
type Comment struct {
	CommentID string `dynamodbav:"commentId" json:"commentId"`
	PostID    string `dynamodbav:"postId" json:"postId"`
	Nickname  string `dynamodbav:"nickname" json:"nickname"`
	Content   string `dynamodbav:"content" json:"content"`
	Pic       string `dynamodbav:"pic,omitempty" json:"pic,omitempty"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// CommentsTable is the DynamoDB table name for comments; commentId is the key.
const CommentsTable = "Comments"
