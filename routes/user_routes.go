package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/HadarPadael/facyBook-Server/controllers"
	"github.com/HadarPadael/facyBook-Server/services"
)

// RegisterUserRoutes sets up account, friendship and friend-post routes under
// /api/users. Registration and profile lookup are public; everything else
// requires authentication.
func RegisterUserRoutes(r *mux.Router, users *services.UserService, auth func(http.Handler) http.Handler) {
	controller := controllers.NewUserController(users)

	userRouter := r.PathPrefix("/api/users").Subrouter()

	userRouter.HandleFunc("", controller.CreateUser).Methods("POST")
	userRouter.HandleFunc("/{id}", controller.GetUserDetails).Methods("GET")

	userRouter.Handle("/{id}/posts", auth(http.HandlerFunc(controller.GetFriendPosts))).Methods("GET")
	userRouter.Handle("/{id}/posts", auth(http.HandlerFunc(controller.CreatePost))).Methods("POST")

	userRouter.Handle("/{id}/friends", auth(http.HandlerFunc(controller.GetFriends))).Methods("GET")
	userRouter.Handle("/{id}/friends", auth(http.HandlerFunc(controller.AskToBeFriend))).Methods("POST")
	userRouter.Handle("/{id}/friends", auth(http.HandlerFunc(controller.CancelRequest))).Methods("PATCH")
	userRouter.Handle("/{id}/friends/deny", auth(http.HandlerFunc(controller.DenyRequest))).Methods("PATCH")
	userRouter.Handle("/{id}/friends/{fid}", auth(http.HandlerFunc(controller.AcceptFriendship))).Methods("PATCH")
	userRouter.Handle("/{id}/friends/{fid}", auth(http.HandlerFunc(controller.DeleteFriend))).Methods("DELETE")
}
