package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/mhmd-zbib/library-management/internal/config"
	"github.com/mhmd-zbib/library-management/internal/handler"
	"github.com/mhmd-zbib/library-management/internal/repository"
	"github.com/mhmd-zbib/library-management/internal/service"
	"github.com/mhmd-zbib/library-management/pkg/response"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize Redis
	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Initialize repositories
	bookRepo := repository.NewBookRepository(db)
	patronRepo := repository.NewPatronRepository(db)
	borrowingRepo := repository.NewBorrowingRepository(db)
	bookCache := repository.NewBookCache(redisClient, cfg.GetBookCacheTTL())

	// Initialize services
	bookService := service.NewBookService(bookRepo, bookCache)
	patronService := service.NewPatronService(patronRepo)
	borrowingService := service.NewBorrowingService(borrowingRepo, bookRepo, patronRepo, cfg)

	// Initialize handlers
	bookHandler := handler.NewBookHandler(bookService)
	patronHandler := handler.NewPatronHandler(patronService)
	borrowingHandler := handler.NewBorrowingHandler(borrowingService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	// Setup routes
	router := setupRoutes(bookHandler, patronHandler, borrowingHandler, healthHandler)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      response.LoggingMiddleware(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(
	bookHandler *handler.BookHandler,
	patronHandler *handler.PatronHandler,
	borrowingHandler *handler.BorrowingHandler,
	healthHandler *handler.HealthHandler,
) *mux.Router {
	router := mux.NewRouter()

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/books", bookHandler.CreateBook).Methods("POST")
	api.HandleFunc("/books", bookHandler.GetBooks).Methods("GET")
	api.HandleFunc("/books/{id}", bookHandler.GetBook).Methods("GET")
	api.HandleFunc("/books/{id}", bookHandler.UpdateBook).Methods("PUT")
	api.HandleFunc("/books/{id}", bookHandler.DeleteBook).Methods("DELETE")

	api.HandleFunc("/patrons", patronHandler.CreatePatron).Methods("POST")
	api.HandleFunc("/patrons", patronHandler.GetPatrons).Methods("GET")
	api.HandleFunc("/patrons/{id}", patronHandler.GetPatron).Methods("GET")
	api.HandleFunc("/patrons/{id}", patronHandler.UpdatePatron).Methods("PUT")
	api.HandleFunc("/patrons/{id}", patronHandler.DeletePatron).Methods("DELETE")

	api.HandleFunc("/borrow/{bookId}/patrons/{patronId}", borrowingHandler.BorrowBook).Methods("POST")
	api.HandleFunc("/return/{bookId}/patrons/{patronId}", borrowingHandler.ReturnBook).Methods("PUT")
	api.HandleFunc("/borrow", borrowingHandler.GetBorrowingRecords).Methods("GET")

	return router
}
