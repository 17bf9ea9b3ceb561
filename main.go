package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gharbazaar/backend/config"
	"github.com/gharbazaar/backend/reconciler"
	"github.com/gharbazaar/backend/routes"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
)

const defaultSweepInterval = 5 * time.Minute

func loadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Error loading .env file: %v", err)
	}
}

func setupRouter(redisClient *redis.Client) *mux.Router {
	router := mux.NewRouter()
	routes.Routes(router, redisClient)
	return router
}

func sweepInterval() time.Duration {
	raw := os.Getenv("MIRROR_SWEEP_INTERVAL")
	if raw == "" {
		return defaultSweepInterval
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Invalid MIRROR_SWEEP_INTERVAL %q, using default: %v", raw, err)
		return defaultSweepInterval
	}
	return d
}

func main() {
	loadEnv()

	client, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			log.Fatalf("Error closing MongoDB connection: %v", err)
		}
		log.Println("MongoDB connection closed")
	}()

	config.InitCollections(client)

	mirrorDB, err := config.ConnectMirror()
	if err != nil {
		log.Fatalf("Failed to connect to the mirror database: %v", err)
	}

	if err := config.InitStorage(); err != nil {
		log.Fatalf("Failed to connect to object storage: %v", err)
	}

	redisClient := config.InitRedis()

	router := setupRouter(redisClient)

	corsOptions := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	handler := corsOptions.Handler(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:           ":" + port,
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	sweepCtx, stopSweeps := context.WithCancel(context.Background())
	sweeper := reconciler.New(
		reconciler.CollectionLister{Collection: config.PropertyCollection},
		mirrorDB,
		sweepInterval(),
	)
	go sweeper.Run(sweepCtx)

	go func() {
		log.Printf("Server running on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	<-sigCh

	log.Println("Shutting down server...")
	stopSweeps()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Error during server shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
