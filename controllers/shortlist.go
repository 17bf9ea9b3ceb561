package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gharbazaar/backend/config"
	"github.com/gharbazaar/backend/models"
	"gorm.io/gorm"
)

type shortlistRequest struct {
	UserID     string `json:"userId"`
	PropertyID string `json:"propertyId"`
}

func ShortlistProperty() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req shortlistRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Println("Invalid request data ", err)
			http.Error(w, "Invalid request data", http.StatusBadRequest)
			return
		}

		if req.UserID == "" || req.PropertyID == "" {
			http.Error(w, "User ID and Property ID are required", http.StatusBadRequest)
			return
		}

		var existing models.Shortlist
		err := config.MirrorDB.Where("user_id = ? AND property_id = ?", req.UserID, req.PropertyID).
			First(&existing).Error
		if err == nil {
			log.Printf("Property %s already shortlisted by %s", req.PropertyID, req.UserID)
			http.Error(w, "Property is already shortlisted", http.StatusConflict)
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Println("Failed to check shortlist ", err)
			http.Error(w, "Failed to check shortlist", http.StatusInternalServerError)
			return
		}

		shortlist := models.Shortlist{
			UserID:        req.UserID,
			PropertyID:    req.PropertyID,
			IsShortlisted: true,
		}
		if err := config.MirrorDB.Create(&shortlist).Error; err != nil {
			log.Println("Failed to shortlist property ", err)
			http.Error(w, "Error shortlisting property", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message":   "Property shortlisted successfully",
			"shortlist": shortlist,
		})
	}
}

func GetShortlisted() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("userId")
		if userID == "" {
			http.Error(w, "User ID is required", http.StatusBadRequest)
			return
		}

		var shortlists []models.Shortlist
		err := config.MirrorDB.Preload("Property").
			Where("user_id = ?", userID).
			Find(&shortlists).Error
		if err != nil {
			log.Println("Failed to fetch shortlisted properties ", err)
			http.Error(w, "Error fetching shortlisted properties", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"shortlistedProperties": shortlists,
		})
	}
}
