package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"miniblog/cmd/app"
	"miniblog/internal/config"
	handlers "miniblog/internal/handler"
	"miniblog/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	if cfg.AdminAPIKey == "" {
		log.Fatal("ADMIN_API_KEY не установлен в .env файле")
	}

	db, repo, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(repo, services, db, cfg)

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	requireAuth := middleware.RequireAuth(services.Auth, logger)
	requireAdmin := middleware.RequireAdminKey(cfg)

	// setting up routes
	r := mux.NewRouter()

	r.HandleFunc("/", handler.Home).Methods(http.MethodGet)
	r.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	r.HandleFunc("/auth/register", handler.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)
	r.Handle("/auth/logout", requireAuth(http.HandlerFunc(handler.Logout))).Methods(http.MethodDelete)
	r.Handle("/auth/verify", requireAuth(http.HandlerFunc(handler.Verify))).Methods(http.MethodGet)

	r.HandleFunc("/posts/", handler.GetPosts).Methods(http.MethodGet)
	r.Handle("/posts/", requireAuth(http.HandlerFunc(handler.CreatePost))).Methods(http.MethodPost)
	r.HandleFunc("/posts/{id}/", handler.GetPost).Methods(http.MethodGet)
	r.Handle("/posts/{id}/", requireAuth(http.HandlerFunc(handler.UpdatePost))).Methods(http.MethodPut)
	r.Handle("/posts/{id}/", requireAuth(http.HandlerFunc(handler.DeletePost))).Methods(http.MethodDelete)

	r.Handle("/posts/{id}/images", requireAuth(http.HandlerFunc(handler.AddImage))).Methods(http.MethodPost)
	r.Handle("/posts/{id}/images/{imageId}", requireAuth(http.HandlerFunc(handler.DeleteImage))).Methods(http.MethodDelete)

	r.HandleFunc("/posts/{id}/comments/", handler.GetComments).Methods(http.MethodGet)
	r.Handle("/posts/{id}/comments/", requireAuth(http.HandlerFunc(handler.CreateComment))).Methods(http.MethodPost)
	r.HandleFunc("/posts/{id}/comments/{commentId}/", handler.GetComment).Methods(http.MethodGet)
	r.Handle("/posts/{id}/comments/{commentId}/", requireAuth(http.HandlerFunc(handler.UpdateComment))).Methods(http.MethodPut)
	r.Handle("/posts/{id}/comments/{commentId}/", requireAuth(http.HandlerFunc(handler.DeleteComment))).Methods(http.MethodDelete)

	r.HandleFunc("/categories/", handler.GetCategories).Methods(http.MethodGet)
	r.HandleFunc("/categories/{id}/", handler.GetCategory).Methods(http.MethodGet)
	r.Handle("/categories/", requireAdmin(http.HandlerFunc(handler.CreateCategory))).Methods(http.MethodPost)
	r.Handle("/categories/{id}/", requireAdmin(http.HandlerFunc(handler.UpdateCategory))).Methods(http.MethodPut)
	r.Handle("/categories/{id}/", requireAdmin(http.HandlerFunc(handler.DeleteCategory))).Methods(http.MethodDelete)

	handlerChain := middleware.Chain(
		r,
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware(logger),
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)
	fmt.Printf("База данных: %s\n", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
