package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/HadarPadael/facyBook-Server/controllers"
	"github.com/HadarPadael/facyBook-Server/services"
)

// RegisterS3Routes sets up routes for presigned picture upload/read URLs.
func RegisterS3Routes(r *mux.Router, media *services.S3Service, auth func(http.Handler) http.Handler) {
	controller := controllers.NewS3Controller(media)

	mediaRouter := r.PathPrefix("/api/media").Subrouter()
	mediaRouter.Handle("/upload-url", auth(http.HandlerFunc(controller.GenerateUploadURL))).Methods("GET")
	mediaRouter.Handle("/read-url", auth(http.HandlerFunc(controller.GenerateReadURL))).Methods("GET")
}
