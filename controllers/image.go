package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"path"
	"strings"

	"github.com/gharbazaar/backend/config"
	"github.com/minio/minio-go/v7"
)

const maxUploadMemory = 32 << 20

// ObjectKey builds the storage key for an uploaded image. Objects are
// namespaced per owner; the filename is stripped of any path components
// the client sent.
func ObjectKey(ownerID, filename string) string {
	return ownerID + "/" + path.Base(strings.ReplaceAll(filename, "\\", "/"))
}

// OwnsObject reports whether an object key lives under the owner's
// namespace.
func OwnsObject(ownerID, objectKey string) bool {
	return strings.HasPrefix(objectKey, ownerID+"/")
}

// UploadImages accepts multipart files under the "images" field and
// uploads them one by one, returning the public URLs in input order.
func UploadImages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(string)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			log.Printf("Invalid multipart form: %v", err)
			http.Error(w, "Invalid multipart form", http.StatusBadRequest)
			return
		}

		files := r.MultipartForm.File["images"]
		if len(files) == 0 {
			http.Error(w, "No images in request", http.StatusBadRequest)
			return
		}

		urls := make([]string, 0, len(files))
		for _, header := range files {
			file, err := header.Open()
			if err != nil {
				log.Printf("Failed to open uploaded file %s: %v", header.Filename, err)
				http.Error(w, "Failed to read uploaded file", http.StatusInternalServerError)
				return
			}

			key := ObjectKey(userID, header.Filename)
			_, err = config.StorageClient.PutObject(r.Context(), config.StorageBucket, key,
				file, header.Size, minio.PutObjectOptions{
					ContentType: header.Header.Get("Content-Type"),
					UserMetadata: map[string]string{
						"userId": userID,
					},
				})
			file.Close()
			if err != nil {
				log.Printf("Upload failed for object %s: %v", key, err)
				http.Error(w, "Failed to upload image", http.StatusInternalServerError)
				return
			}

			urls = append(urls, fmt.Sprintf("%s/%s/%s",
				config.StorageClient.EndpointURL(), config.StorageBucket, key))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string][]string{"urls": urls})
	}
}

// DeleteImage removes a single object from storage. Callers may only
// delete objects under their own namespace.
func DeleteImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(string)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		objectKey := r.URL.Query().Get("object")
		if objectKey == "" {
			http.Error(w, "Object key is required", http.StatusBadRequest)
			return
		}

		if !OwnsObject(userID, objectKey) {
			log.Printf("User %s attempted to delete foreign object %s", userID, objectKey)
			http.Error(w, "Not allowed to delete this object", http.StatusForbidden)
			return
		}

		err := config.StorageClient.RemoveObject(r.Context(), config.StorageBucket, objectKey,
			minio.RemoveObjectOptions{})
		if err != nil {
			log.Printf("Delete failed for object %s: %v", objectKey, err)
			http.Error(w, "Failed to delete image", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Image deleted successfully"})
	}
}
