package routes

import (
	"github.com/gorilla/mux"

	"github.com/HadarPadael/facyBook-Server/controllers"
	"github.com/HadarPadael/facyBook-Server/services"
)

// RegisterTokenRoutes sets up the login route.
func RegisterTokenRoutes(r *mux.Router, users *services.UserService, tokens *services.TokenService) {
	controller := controllers.NewTokenController(users, tokens)

	r.HandleFunc("/api/tokens", controller.ProcessLogin).Methods("POST")
}
