package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/HadarPadael/facyBook-Server/middleware"
	"github.com/HadarPadael/facyBook-Server/services"
)

// PostController handles feed, like, comment and post-deletion requests.
type PostController struct {
	Posts *services.PostService
}

// NewPostController creates a new instance of PostController
func NewPostController(posts *services.PostService) *PostController {
	return &PostController{Posts: posts}
}

// GetFeedPosts handles GET /api/posts: the caller's merged feed, at most 25
// posts.
func (c *PostController) GetFeedPosts(w http.ResponseWriter, r *http.Request) {
	feed, err := c.Posts.GetFeedPosts(r.Context(), middleware.Caller(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, feed)
}

// DeletePost handles DELETE /api/users/{id}/posts/{pid}. Only the publisher
// may delete; the post's comments go with it.
func (c *PostController) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["pid"]

	post, err := c.Posts.GetPostByID(r.Context(), postID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if middleware.Caller(r) != post.Nickname {
		respondError(w, http.StatusForbidden, "You are not allowed to delete this post")
		return
	}

	deleted, err := c.Posts.DeletePost(r.Context(), postID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, deleted)
}

// UpdateLikes handles PATCH /api/users/{id}/posts/{pid}/likes, replacing the
// liker list with the one in the body.
func (c *PostController) UpdateLikes(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["pid"]

	var payload struct {
		Likes []string `json:"likes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	post, err := c.Posts.UpdateLikes(r.Context(), postID, payload.Likes)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// GetPostComments handles GET /api/users/{id}/posts/{pid}/comments.
func (c *PostController) GetPostComments(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["pid"]

	comments, err := c.Posts.GetPostComments(r.Context(), postID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, comments)
}

// AddComment handles POST /api/users/{id}/posts/{pid}/comments. The comment
// is attributed to the caller, whoever owns the post.
func (c *PostController) AddComment(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["pid"]

	var payload struct {
		Content string `json:"content"`
		Pic     string `json:"pic"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Content == "" {
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	comment, err := c.Posts.AddComment(r.Context(), postID, middleware.Caller(r), payload.Content, payload.Pic)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, comment)
}
