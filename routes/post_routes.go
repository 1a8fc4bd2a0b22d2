package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/HadarPadael/facyBook-Server/controllers"
	"github.com/HadarPadael/facyBook-Server/services"
)

// RegisterPostRoutes sets up the feed, like, comment and post-deletion
// routes. Reading a comment thread is public; everything else requires
// authentication.
func RegisterPostRoutes(r *mux.Router, posts *services.PostService, auth func(http.Handler) http.Handler) {
	controller := controllers.NewPostController(posts)

	r.Handle("/api/posts", auth(http.HandlerFunc(controller.GetFeedPosts))).Methods("GET")

	postRouter := r.PathPrefix("/api/users/{id}/posts").Subrouter()
	postRouter.Handle("/{pid}", auth(http.HandlerFunc(controller.DeletePost))).Methods("DELETE")
	postRouter.Handle("/{pid}/likes", auth(http.HandlerFunc(controller.UpdateLikes))).Methods("PATCH")
	postRouter.HandleFunc("/{pid}/comments", controller.GetPostComments).Methods("GET")
	postRouter.Handle("/{pid}/comments", auth(http.HandlerFunc(controller.AddComment))).Methods("POST")
}
