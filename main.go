package main

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/HadarPadael/facyBook-Server/config"
	"github.com/HadarPadael/facyBook-Server/controllers"
	"github.com/HadarPadael/facyBook-Server/logger"
	"github.com/HadarPadael/facyBook-Server/middleware"
	"github.com/HadarPadael/facyBook-Server/routes"
	"github.com/HadarPadael/facyBook-Server/services"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Log)
	defer logger.Sync()

	// Initialize the shared AWS config and the store
	awsCfg, err := services.LoadAWSConfig(context.Background(), cfg.AWS.Region)
	if err != nil {
		logger.Fatalf("failed to load AWS config: %v", err)
	}
	store := &services.DynamoService{Client: services.NewDynamoDBClient(awsCfg, cfg.AWS.DynamoEndpoint)}
	logger.Infof("DynamoDB client initialized (region %s)", cfg.AWS.Region)

	// Initialize services
	userService := &services.UserService{Store: store}
	postService := &services.PostService{Store: store}
	tokenService := services.NewTokenService(cfg.JWT, store)
	mediaService := services.NewS3Service(awsCfg, cfg.AWS.S3Bucket)

	// Initialize the router
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger)

	r.HandleFunc("/", controllers.WelcomeHandler).Methods("GET")
	r.HandleFunc("/health", controllers.HealthCheckHandler).Methods("GET")

	auth := middleware.RequireAuth(tokenService)
	routes.RegisterUserRoutes(r, userService, auth)
	routes.RegisterPostRoutes(r, postService, auth)
	routes.RegisterTokenRoutes(r, userService, tokenService)
	routes.RegisterS3Routes(r, mediaService, auth)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      corsHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Infof("starting server on port %s", cfg.Server.Port)
	logger.Fatalf("server stopped: %v", server.ListenAndServe())
}
