package models

// Post defines the structure for published posts. CreatedAt is an RFC3339
// UTC timestamp; feed ordering compares it lexicographically and breaks ties
// on PostID. Comments holds comment ids only — display order comes from the
// Comments table.
type Post struct {
	PostID     string   `dynamodbav:"postId" json:"postId"`
	Nickname   string   `dynamodbav:"nickname" json:"nickname"`
	CreatedAt  string   `dynamodbav:"createdAt" json:"createdAt"`
	Content    string   `dynamodbav:"content" json:"content"`
	PostPic    string   `dynamodbav:"postPic,omitempty" json:"postPic,omitempty"`
	ProfilePic string   `dynamodbav:"profilePic,omitempty" json:"profilePic,omitempty"`
	Likes      []string `dynamodbav:"likes,stringset,omitempty" json:"likes"`
	Comments   []string `dynamodbav:"comments,stringset,omitempty" json:"comments"`
}

// PostsTable is the DynamoDB table name for posts; postId is the key.
const PostsTable = "Posts"

// Feed slice limits: at most FeedFriendLimit posts from friends plus
// FeedDiscoveryLimit posts from non-friends per feed request.
const (
	FeedFriendLimit    = 20
	FeedDiscoveryLimit = 5
)
