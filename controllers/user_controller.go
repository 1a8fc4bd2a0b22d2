package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/HadarPadael/facyBook-Server/middleware"
	"github.com/HadarPadael/facyBook-Server/services"
)

// UserController handles account, friendship and friend-post requests. The
// authentication middleware resolves the caller; ownership and relationship
// checks happen here, before any service call.
type UserController struct {
	Users *services.UserService
}

// NewUserController creates a new instance of UserController
func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

// CreateUser handles POST /api/users.
func (c *UserController) CreateUser(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Nickname   string `json:"nickname"`
		Username   string `json:"username"`
		Password   string `json:"password"`
		ProfilePic string `json:"profilePic"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Nickname == "" || payload.Username == "" || payload.Password == "" {
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	user, err := c.Users.CreateUser(r.Context(), payload.Nickname, payload.Username, payload.Password, payload.ProfilePic)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

// GetUserDetails handles GET /api/users/{id}.
func (c *UserController) GetUserDetails(w http.ResponseWriter, r *http.Request) {
	nickname := mux.Vars(r)["id"]

	user, err := c.Users.GetUserDetails(r.Context(), nickname)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// CreatePost handles POST /api/users/{id}/posts. Only the owner of the
// handle may publish under it.
func (c *UserController) CreatePost(w http.ResponseWriter, r *http.Request) {
	nickname := mux.Vars(r)["id"]
	if middleware.Caller(r) != nickname {
		respondError(w, http.StatusForbidden, "You are not allowed to post as this user")
		return
	}

	var payload struct {
		Content string `json:"content"`
		PostPic string `json:"postPic"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Content == "" {
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	post, err := c.Users.CreatePost(r.Context(), nickname, payload.Content, payload.PostPic)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, post)
}

// GetFriendPosts handles GET /api/users/{id}/posts: the posts of {id} as
// seen by the caller. Not being friends yields an empty list, not an error.
func (c *UserController) GetFriendPosts(w http.ResponseWriter, r *http.Request) {
	friendHandle := mux.Vars(r)["id"]

	posts, err := c.Users.GetFriendPosts(r.Context(), middleware.Caller(r), friendHandle)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

// GetFriends handles GET /api/users/{id}/friends. Visible to the owner and
// to the owner's friends.
func (c *UserController) GetFriends(w http.ResponseWriter, r *http.Request) {
	nickname := mux.Vars(r)["id"]
	caller := middleware.Caller(r)

	if caller != nickname {
		friends, err := c.Users.AreFriends(r.Context(), caller, nickname)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		if !friends {
			respondError(w, http.StatusForbidden, "You are not authorized to view this user's friends")
			return
		}
	}

	friends, err := c.Users.GetFriends(r.Context(), nickname)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string][]string{"friends": friends})
}

// AskToBeFriend handles POST /api/users/{id}/friends: the caller requests
// {id}'s friendship.
func (c *UserController) AskToBeFriend(w http.ResponseWriter, r *http.Request) {
	target := mux.Vars(r)["id"]

	if err := c.Users.AskToBeFriend(r.Context(), middleware.Caller(r), target); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Friend request sent successfully"})
}

// CancelRequest handles PATCH /api/users/{id}/friends: the caller withdraws
// their own request to {id}.
func (c *UserController) CancelRequest(w http.ResponseWriter, r *http.Request) {
	target := mux.Vars(r)["id"]

	if err := c.Users.CancelRequest(r.Context(), middleware.Caller(r), target); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Friend request canceled successfully"})
}

// DenyRequest handles PATCH /api/users/{id}/friends/deny: the caller turns
// down the pending request from {id}.
func (c *UserController) DenyRequest(w http.ResponseWriter, r *http.Request) {
	requester := mux.Vars(r)["id"]

	if err := c.Users.DenyRequest(r.Context(), middleware.Caller(r), requester); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Friend request denied successfully"})
}

// AcceptFriendship handles PATCH /api/users/{id}/friends/{fid}: {id} accepts
// the request from {fid}. Only the receiver may accept.
func (c *UserController) AcceptFriendship(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	receiver := vars["id"]
	requester := vars["fid"]

	if middleware.Caller(r) != receiver {
		respondError(w, http.StatusForbidden, "You are not allowed to accept this friendship request")
		return
	}

	if err := c.Users.AcceptFriendship(r.Context(), requester, receiver); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Friendship accepted successfully"})
}

// DeleteFriend handles DELETE /api/users/{id}/friends/{fid}: {id} removes
// {fid} from their own friend list.
func (c *UserController) DeleteFriend(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	owner := vars["id"]
	friend := vars["fid"]

	if middleware.Caller(r) != owner {
		respondError(w, http.StatusForbidden, "You are not allowed to remove this friendship")
		return
	}

	if err := c.Users.DeleteFriend(r.Context(), owner, friend); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Friend removed successfully"})
}
