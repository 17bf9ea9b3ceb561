package controllers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gharbazaar/backend/config"
	"github.com/gharbazaar/backend/models"
	"github.com/gorilla/mux"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ContextKey string

const UserIDKey = ContextKey("userID")

// propertyResponse wraps a mutated record together with the outcome of
// the mirror write. Mirrored=false means the stores diverged; the
// reconciler converges them on its next sweep.
type propertyResponse struct {
	Property models.Property `json:"property"`
	Mirrored bool            `json:"mirrored"`
}

func CreateProperty(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(string)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		var property models.Property
		if err := json.NewDecoder(r.Body).Decode(&property); err != nil {
			log.Printf("Invalid request body: %v", err)
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if missing := property.MissingFields(); len(missing) > 0 {
			log.Printf("Create rejected, missing fields: %v", missing)
			http.Error(w, "Missing required fields: "+strings.Join(missing, ", "), http.StatusBadRequest)
			return
		}

		// The primary store assigns the identifier; the mirror reuses
		// it verbatim as its primary key.
		property.ID = primitive.NewObjectID().Hex()
		property.UserID = userID
		if property.Images == nil {
			property.Images = []string{}
		}

		_, err := config.PropertyCollection.InsertOne(r.Context(), property)
		if err != nil {
			log.Printf("Insert failed: %v", err)
			http.Error(w, "Failed to create property", http.StatusInternalServerError)
			return
		}

		mirrored := true
		if err := mirrorUpsert(property); err != nil {
			mirrored = false
			log.Printf("Mirror divergence: create of property %s not mirrored: %v", property.ID, err)
		}

		go func() {
			deletePropertyCache(redisClient)
		}()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(propertyResponse{Property: property, Mirrored: mirrored})
	}
}

func GetAllProperties(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		cacheKey := generateCacheKey(query)

		cachedData, err := redisClient.Get(r.Context(), cacheKey).Result()
		if err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cachedData))
			return
		}
		if err != redis.Nil {
			log.Printf("Redis GET error for key %s: %v", cacheKey, err)
		}

		filter, err := BuildListingFilter(query)
		if err != nil {
			log.Printf("Bad listing filter: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		cursor, err := config.PropertyCollection.Find(r.Context(), filter)
		if err != nil {
			log.Printf("Error fetching properties with filter %+v: %v", filter, err)
			http.Error(w, "Error fetching properties", http.StatusInternalServerError)
			return
		}
		defer cursor.Close(r.Context())

		properties := []models.Property{}
		if err := cursor.All(r.Context(), &properties); err != nil {
			log.Printf("Error decoding properties: %v", err)
			http.Error(w, "Error decoding properties", http.StatusInternalServerError)
			return
		}

		resultBytes, err := json.Marshal(properties)
		if err != nil {
			log.Printf("Failed to serialize properties: %v", err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
			return
		}

		if err := redisClient.Set(r.Context(), cacheKey, resultBytes, 10*time.Minute).Err(); err != nil {
			log.Printf("Failed to cache response for key %s: %v", cacheKey, err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(resultBytes)
	}
}

func GetPropertyByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		propertyID := mux.Vars(r)["id"]

		var property models.Property
		err := config.PropertyCollection.FindOne(r.Context(), bson.M{"_id": propertyID}).Decode(&property)
		if err == mongo.ErrNoDocuments {
			http.Error(w, "Property not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Printf("Error fetching property %s: %v", propertyID, err)
			http.Error(w, "Error fetching property", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(property)
	}
}

// RevealContact returns the owner's name and phone number to any
// authenticated caller. This is a plain reveal behind the auth gate, not
// an OTP challenge.
func RevealContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		propertyID := mux.Vars(r)["id"]

		var property models.Property
		err := config.PropertyCollection.FindOne(r.Context(), bson.M{"_id": propertyID}).Decode(&property)
		if err == mongo.ErrNoDocuments {
			http.Error(w, "Property not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Printf("Error fetching property %s: %v", propertyID, err)
			http.Error(w, "Error fetching property", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"ownerName":     property.OwnerName,
			"contactNumber": property.ContactNumber,
		})
	}
}

func UpdateProperty(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(string)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		propertyID := mux.Vars(r)["id"]

		var property models.Property
		if err := json.NewDecoder(r.Body).Decode(&property); err != nil {
			log.Printf("Invalid update data: %v", err)
			http.Error(w, "Invalid update data", http.StatusBadRequest)
			return
		}

		if missing := property.MissingFields(); len(missing) > 0 {
			log.Printf("Update rejected, missing fields: %v", missing)
			http.Error(w, "Missing required fields: "+strings.Join(missing, ", "), http.StatusBadRequest)
			return
		}

		// Full-record replace. Identifier and owner always come from the
		// route and the session, never from the body.
		property.ID = propertyID
		property.UserID = userID
		if property.Images == nil {
			property.Images = []string{}
		}

		filter := bson.M{"_id": propertyID, "userId": userID}
		res, err := config.PropertyCollection.ReplaceOne(r.Context(), filter, property)
		if err != nil {
			log.Printf("Update failed for property %s: %v", propertyID, err)
			http.Error(w, "Update failed", http.StatusInternalServerError)
			return
		}

		if res.MatchedCount == 0 {
			log.Printf("No property found with ID %s and owner %s, or unauthorized to update.", propertyID, userID)
			http.Error(w, "No property found or unauthorized", http.StatusForbidden)
			return
		}

		mirrored := true
		if err := mirrorUpsert(property); err != nil {
			mirrored = false
			log.Printf("Mirror divergence: update of property %s not mirrored: %v", propertyID, err)
		}

		go func() {
			deletePropertyCache(redisClient)
		}()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(propertyResponse{Property: property, Mirrored: mirrored})
	}
}

func DeleteProperty(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(string)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		propertyID := mux.Vars(r)["id"]

		filter := bson.M{"_id": propertyID, "userId": userID}
		res, err := config.PropertyCollection.DeleteOne(r.Context(), filter)
		if err != nil {
			log.Printf("Delete failed for property %s: %v", propertyID, err)
			http.Error(w, "Delete failed", http.StatusInternalServerError)
			return
		}

		if res.DeletedCount == 0 {
			log.Printf("No property found with ID %s and owner %s, or unauthorized to delete.", propertyID, userID)
			http.Error(w, "No property found or unauthorized", http.StatusForbidden)
			return
		}

		mirrored := true
		if err := mirrorDelete(propertyID); err != nil {
			mirrored = false
			log.Printf("Mirror divergence: delete of property %s not mirrored: %v", propertyID, err)
		}

		go func() {
			deletePropertyCache(redisClient)
		}()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message":  "Property deleted successfully",
			"mirrored": mirrored,
		})
	}
}

// BuildListingFilter translates browse query parameters into a primary
// store filter. A parameter constrains the result iff it is present with
// a non-empty value, so minPrice=0 and maxPrice=0 are honored as real
// bounds instead of being treated as unset.
func BuildListingFilter(query url.Values) (bson.M, error) {
	filter := bson.M{}

	equalityFields := []string{"city", "locality", "propertyType", "option", "userId"}
	for _, field := range equalityFields {
		if v := query.Get(field); v != "" {
			filter[field] = v
		}
	}

	priceRange := bson.M{}
	if v := query.Get("minPrice"); v != "" {
		min, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid minPrice %q", v)
		}
		priceRange["$gte"] = min
	}
	if v := query.Get("maxPrice"); v != "" {
		max, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid maxPrice %q", v)
		}
		priceRange["$lte"] = max
	}
	if len(priceRange) > 0 {
		filter["price"] = priceRange
	}

	return filter, nil
}

func generateCacheKey(queryParams url.Values) string {
	keys := make([]string, 0, len(queryParams))
	for k := range queryParams {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, key := range keys {
		values := queryParams[key]
		sort.Strings(values)
		for _, val := range values {
			sb.WriteString(key)
			sb.WriteString("=")
			sb.WriteString(val)
			sb.WriteString("&")
		}
	}
	rawKey := strings.TrimSuffix(sb.String(), "&")

	sum := sha256.Sum256([]byte(rawKey))
	return "property:" + hex.EncodeToString(sum[:])
}

func deletePropertyCache(redisClient *redis.Client) {
	ctx := context.Background()
	const scanPattern = "property:*"
	const scanCount = 100

	var keysToDelete []string
	var cursor uint64
	var err error

	for {
		var currentKeys []string
		currentKeys, cursor, err = redisClient.Scan(ctx, cursor, scanPattern, scanCount).Result()
		if err != nil {
			log.Printf("Error during Redis SCAN for pattern '%s': %v", scanPattern, err)
			return
		}
		keysToDelete = append(keysToDelete, currentKeys...)
		if cursor == 0 {
			break
		}
	}

	if len(keysToDelete) == 0 {
		return
	}

	pipe := redisClient.Pipeline()
	for _, key := range keysToDelete {
		pipe.Del(ctx, key)
	}
	if _, execErr := pipe.Exec(ctx); execErr != nil {
		log.Printf("Error executing pipeline for deleting %d listing cache keys: %v", len(keysToDelete), execErr)
	} else {
		log.Printf("Listing cache invalidated, deleted %d keys", len(keysToDelete))
	}
}
