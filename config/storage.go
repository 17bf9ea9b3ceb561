package config

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var (
	StorageClient *minio.Client
	StorageBucket string
)

func InitStorage() error {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	bucket := os.Getenv("MINIO_BUCKET")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"
	if endpoint == "" || bucket == "" {
		return fmt.Errorf("MINIO_ENDPOINT and MINIO_BUCKET must be set in environment")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return fmt.Errorf("error creating object storage client: %v", err)
	}

	ctx := context.Background()
	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		exists, existsErr := client.BucketExists(ctx, bucket)
		if existsErr != nil || !exists {
			return fmt.Errorf("error creating bucket %s: %v", bucket, err)
		}
	}

	StorageClient = client
	StorageBucket = bucket
	log.Printf("Connected to object storage, bucket %s", bucket)
	return nil
}
