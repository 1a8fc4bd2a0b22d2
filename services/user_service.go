package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/google/uuid"

	"github.com/HadarPadael/facyBook-Server/logger"
	"github.com/HadarPadael/facyBook-Server/models"
	"github.com/HadarPadael/facyBook-Server/utils"
)

// UserService owns user accounts and the friendship graph: friend requests,
// the symmetric friendship edges, and the friend-scoped post listing.
type UserService struct {
	Store Store
}

// CreateUser registers a new account. The credential is stored as a bcrypt
// hash. ErrConflict when the username or nickname is already taken.
func (us *UserService) CreateUser(ctx context.Context, nickname, username, password, profilePic string) (*models.User, error) {
	var existing []models.User
	if err := us.Store.ScanItems(ctx, models.UsersTable, &existing); err != nil {
		return nil, err
	}
	for _, u := range existing {
		if u.Username == username || u.Nickname == nickname {
			return nil, ErrConflict
		}
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Nickname:   nickname,
		Username:   username,
		Password:   hash,
		ProfilePic: profilePic,
	}
	if err := us.Store.PutItem(ctx, models.UsersTable, user); err != nil {
		return nil, err
	}

	logger.Infof("user created: %s", nickname)
	return &user, nil
}

// GetUserDetails fetches an account by handle, or ErrNotFound.
func (us *UserService) GetUserDetails(ctx context.Context, nickname string) (*models.User, error) {
	item, err := us.Store.GetItem(ctx, models.UsersTable, StringKey("nickname", nickname))
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(item, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user '%s': %w", nickname, err)
	}
	return &user, nil
}

// GetUserByUsername fetches an account by its login identifier, or ErrNotFound.
func (us *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var users []models.User
	if err := us.Store.ScanItems(ctx, models.UsersTable, &users); err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

// AreFriends reports whether a and b hold a mutual friendship edge. A user
// counts as a friend of themself for visibility purposes, though no such
// edge is ever stored. Fails closed: a missing user or a one-sided edge
// (possible after a torn accept) reads as "not friends".
func (us *UserService) AreFriends(ctx context.Context, a, b string) (bool, error) {
	if a == b {
		return true, nil
	}

	userA, err := us.GetUserDetails(ctx, a)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	userB, err := us.GetUserDetails(ctx, b)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return userA.HasFriend(b) && userB.HasFriend(a), nil
}

// AskToBeFriend records a pending friend request from requester on the
// target's request set. Set semantics make re-asking a no-op, and an unknown
// target is silently ignored. Asking yourself is a no-op: self-friendship is
// never stored.
func (us *UserService) AskToBeFriend(ctx context.Context, requester, target string) error {
	if requester == target {
		return nil
	}
	return us.Store.AddToSet(ctx, models.UsersTable, StringKey("nickname", target), "friendRequests", requester)
}

// CancelRequest withdraws requester's pending request to target. No-op when
// no such request exists.
func (us *UserService) CancelRequest(ctx context.Context, requester, target string) error {
	return us.Store.RemoveFromSet(ctx, models.UsersTable, StringKey("nickname", target), "friendRequests", requester)
}

// DenyRequest drops the pending request from requester on target's set. The
// mutation is identical to CancelRequest; who may invoke which is decided at
// the HTTP layer.
func (us *UserService) DenyRequest(ctx context.Context, target, requester string) error {
	return us.Store.RemoveFromSet(ctx, models.UsersTable, StringKey("nickname", target), "friendRequests", requester)
}

// AcceptFriendship turns requester's pending request into a mutual
// friendship: both friend sets gain the other handle and the pending entry is
// cleared. The three updates are individually atomic but not transactional; a
// crash in between leaves a one-sided edge, which AreFriends reads as "not
// friends", and re-running the accept converges on the full edge (every step
// is idempotent). Errors with ErrNotFound when either user is missing.
func (us *UserService) AcceptFriendship(ctx context.Context, requester, target string) error {
	if requester == target {
		return nil
	}
	if _, err := us.GetUserDetails(ctx, requester); err != nil {
		return err
	}
	if _, err := us.GetUserDetails(ctx, target); err != nil {
		return err
	}

	if err := us.Store.AddToSet(ctx, models.UsersTable, StringKey("nickname", requester), "friends", target); err != nil {
		return err
	}
	if err := us.Store.AddToSet(ctx, models.UsersTable, StringKey("nickname", target), "friends", requester); err != nil {
		return err
	}
	if err := us.Store.RemoveFromSet(ctx, models.UsersTable, StringKey("nickname", target), "friendRequests", requester); err != nil {
		return err
	}

	logger.Infof("friendship accepted: %s <-> %s", requester, target)
	return nil
}

// DeleteFriend removes friend from owner's friend set only. The reverse edge
// is deliberately left in place (long-standing behavior); AreFriends requires
// both directions, so the pair still stops being friends.
func (us *UserService) DeleteFriend(ctx context.Context, owner, friend string) error {
	return us.Store.RemoveFromSet(ctx, models.UsersTable, StringKey("nickname", owner), "friends", friend)
}

// GetFriends returns the friend set of a handle. Unknown handles yield an
// empty list rather than an error.
func (us *UserService) GetFriends(ctx context.Context, nickname string) ([]string, error) {
	item, err := us.Store.GetItem(ctx, models.UsersTable, StringKey("nickname", nickname))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []string{}, nil
		}
		return nil, err
	}
	return utils.ExtractStringSet(item, "friends"), nil
}

// GetFriendPosts lists friendHandle's posts for viewer, most recent first.
// When the two are not friends it degrades to an empty list — "nothing to
// show" rather than an error.
func (us *UserService) GetFriendPosts(ctx context.Context, viewer, friendHandle string) ([]models.Post, error) {
	friends, err := us.AreFriends(ctx, viewer, friendHandle)
	if err != nil {
		return nil, err
	}
	if !friends {
		return []models.Post{}, nil
	}

	var posts []models.Post
	if err := us.Store.ScanItems(ctx, models.PostsTable, &posts); err != nil {
		return nil, err
	}

	authored := make([]models.Post, 0)
	for _, p := range posts {
		if p.Nickname == friendHandle {
			authored = append(authored, p)
		}
	}
	sortPostsDescending(authored)
	return authored, nil
}

// CreatePost publishes a post for the given author, stamping it with the
// author's current profile picture. ErrNotFound when the author is unknown.
func (us *UserService) CreatePost(ctx context.Context, author, content, postPic string) (*models.Post, error) {
	user, err := us.GetUserDetails(ctx, author)
	if err != nil {
		return nil, err
	}

	post := models.Post{
		PostID:     uuid.New().String(),
		Nickname:   author,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		Content:    content,
		PostPic:    postPic,
		ProfilePic: user.ProfilePic,
	}
	if err := us.Store.PutItem(ctx, models.PostsTable, post); err != nil {
		return nil, err
	}

	logger.Infof("post %s created by %s", post.PostID, author)
	return &post, nil
}
