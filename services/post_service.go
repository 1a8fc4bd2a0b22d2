package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/google/uuid"

	"github.com/HadarPadael/facyBook-Server/logger"
	"github.com/HadarPadael/facyBook-Server/models"
)

// PostService owns posts and comments: the merged feed, likes, comment
// threads and post deletion (which cascades to comments).
type PostService struct {
	Store Store
}

// GetFeedPosts assembles the viewer's feed: the 20 most recent posts by
// friends merged with the 5 most recent posts by non-friends (the discovery
// slice), sorted most-recent-first. The viewer's own posts ride in the friend
// slice. The result never exceeds 25 posts; ties on the timestamp break on
// postId so a fixed snapshot always yields the same order.
func (ps *PostService) GetFeedPosts(ctx context.Context, viewer string) ([]models.Post, error) {
	item, err := ps.Store.GetItem(ctx, models.UsersTable, StringKey("nickname", viewer))
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := attributevalue.UnmarshalMap(item, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user '%s': %w", viewer, err)
	}

	var posts []models.Post
	if err := ps.Store.ScanItems(ctx, models.PostsTable, &posts); err != nil {
		return nil, err
	}

	friendPosts := make([]models.Post, 0)
	discoveryPosts := make([]models.Post, 0)
	for _, p := range posts {
		if p.Nickname == viewer || user.HasFriend(p.Nickname) {
			friendPosts = append(friendPosts, p)
		} else {
			discoveryPosts = append(discoveryPosts, p)
		}
	}

	sortPostsDescending(friendPosts)
	sortPostsDescending(discoveryPosts)
	if len(friendPosts) > models.FeedFriendLimit {
		friendPosts = friendPosts[:models.FeedFriendLimit]
	}
	if len(discoveryPosts) > models.FeedDiscoveryLimit {
		discoveryPosts = discoveryPosts[:models.FeedDiscoveryLimit]
	}

	feed := append(friendPosts, discoveryPosts...)
	sortPostsDescending(feed)

	logger.Debugf("feed for %s: %d friend + %d discovery posts", viewer, len(friendPosts), len(discoveryPosts))
	return feed, nil
}

// GetPosts lists every stored post.
func (ps *PostService) GetPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := ps.Store.ScanItems(ctx, models.PostsTable, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostByID fetches a single post, or ErrNotFound.
func (ps *PostService) GetPostByID(ctx context.Context, postID string) (*models.Post, error) {
	item, err := ps.Store.GetItem(ctx, models.PostsTable, StringKey("postId", postID))
	if err != nil {
		return nil, err
	}
	var post models.Post
	if err := attributevalue.UnmarshalMap(item, &post); err != nil {
		return nil, fmt.Errorf("failed to unmarshal post '%s': %w", postID, err)
	}
	return &post, nil
}

// UpdateLikes replaces the liker set of a post and returns the updated post.
// ErrNotFound when the post does not exist.
func (ps *PostService) UpdateLikes(ctx context.Context, postID string, likes []string) (*models.Post, error) {
	key := StringKey("postId", postID)
	if err := ps.Store.SetStringSet(ctx, models.PostsTable, key, "likes", likes); err != nil {
		return nil, err
	}
	return ps.GetPostByID(ctx, postID)
}

// AddComment creates a comment on an existing post and records its id on the
// post document. ErrNotFound when the post does not exist.
func (ps *PostService) AddComment(ctx context.Context, postID, author, content, pic string) (*models.Comment, error) {
	if _, err := ps.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := models.Comment{
		CommentID: uuid.New().String(),
		PostID:    postID,
		Nickname:  author,
		Content:   content,
		Pic:       pic,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := ps.Store.PutItem(ctx, models.CommentsTable, comment); err != nil {
		return nil, err
	}
	if err := ps.Store.AddToSet(ctx, models.PostsTable, StringKey("postId", postID), "comments", comment.CommentID); err != nil {
		return nil, err
	}

	logger.Infof("comment %s added to post %s by %s", comment.CommentID, postID, author)
	return &comment, nil
}

// GetPostComments lists a post's comments in conversation order (oldest
// first).
func (ps *PostService) GetPostComments(ctx context.Context, postID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := ps.Store.ScanItems(ctx, models.CommentsTable, &comments); err != nil {
		return nil, err
	}

	thread := make([]models.Comment, 0)
	for _, c := range comments {
		if c.PostID == postID {
			thread = append(thread, c)
		}
	}
	sort.Slice(thread, func(i, j int) bool {
		if thread[i].CreatedAt != thread[j].CreatedAt {
			return thread[i].CreatedAt < thread[j].CreatedAt
		}
		return thread[i].CommentID < thread[j].CommentID
	})
	return thread, nil
}

// DeletePost removes a post together with all of its comments and returns the
// deleted post. ErrNotFound when the post does not exist.
func (ps *PostService) DeletePost(ctx context.Context, postID string) (*models.Post, error) {
	post, err := ps.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments, err := ps.GetPostComments(ctx, postID)
	if err != nil {
		return nil, err
	}
	for _, c := range comments {
		if err := ps.Store.DeleteItem(ctx, models.CommentsTable, StringKey("commentId", c.CommentID)); err != nil {
			return nil, err
		}
	}
	if err := ps.Store.DeleteItem(ctx, models.PostsTable, StringKey("postId", postID)); err != nil {
		return nil, err
	}

	logger.Infof("post %s deleted along with %d comments", postID, len(comments))
	return post, nil
}

// sortPostsDescending orders posts most-recent-first. CreatedAt is RFC3339 in
// UTC, so the lexicographic comparison is chronological; equal timestamps
// fall back to postId to keep the order deterministic.
func sortPostsDescending(posts []models.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt != posts[j].CreatedAt {
			return posts[i].CreatedAt > posts[j].CreatedAt
		}
		return posts[i].PostID > posts[j].PostID
	})
}
