package routes

import (
	"github.com/gharbazaar/backend/controllers"
	"github.com/gharbazaar/backend/middleware"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
)

func Routes(router *mux.Router, redisClient *redis.Client) {
	// Auth routes
	router.HandleFunc("/register", controllers.RegisterUser()).Methods("POST")
	router.HandleFunc("/login", controllers.LoginUser()).Methods("POST")

	// Routes that require authentication
	authenticated := router.PathPrefix("/api").Subrouter()
	authenticated.Use(middleware.AuthMiddleware)

	authenticated.HandleFunc("/me", controllers.GetMe()).Methods("GET")

	// Property routes. Literal paths are registered before the {id}
	// catch-all so "shortlist" is never read as an identifier.
	authenticated.HandleFunc("/properties", controllers.GetAllProperties(redisClient)).Methods("GET")
	authenticated.HandleFunc("/properties/create", controllers.CreateProperty(redisClient)).Methods("POST")
	authenticated.HandleFunc("/properties/update/{id}", controllers.UpdateProperty(redisClient)).Methods("PUT")
	authenticated.HandleFunc("/properties/delete/{id}", controllers.DeleteProperty(redisClient)).Methods("DELETE")
	authenticated.HandleFunc("/properties/shortlist", controllers.ShortlistProperty()).Methods("POST")
	authenticated.HandleFunc("/properties/shortlist", controllers.GetShortlisted()).Methods("GET")
	authenticated.HandleFunc("/properties/{id}", controllers.GetPropertyByID()).Methods("GET")
	authenticated.HandleFunc("/properties/{id}/contact", controllers.RevealContact()).Methods("POST")

	// Image routes
	authenticated.HandleFunc("/images/upload", controllers.UploadImages()).Methods("POST")
	authenticated.HandleFunc("/images", controllers.DeleteImage()).Methods("DELETE")
}
