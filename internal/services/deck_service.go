package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const deckBucket = "pitch-decks"

// DeckService stores pitch decks in object storage. The stored object key
// is recorded on the listing as its pitch_deck_url.
type DeckService interface {
	UploadDeck(ctx context.Context, startupID uuid.UUID, reader io.Reader, size int64) (string, error)
	GetPresignedDeckURL(objectName string, expiry time.Duration) (string, error)
	DeleteDeck(ctx context.Context, objectName string) error
	EnsureBucketExists(ctx context.Context) error
}

type deckService struct {
	client *minio.Client
}

func NewDeckService(endpoint, accessKey, secretKey string, useSSL bool) (DeckService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &deckService{client: client}, nil
}

func (d *deckService) UploadDeck(ctx context.Context, startupID uuid.UUID, reader io.Reader, size int64) (string, error) {
	objectName := fmt.Sprintf("%s/%s.pdf", startupID.String(), uuid.NewString())
	_, err := d.client.PutObject(ctx, deckBucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: "application/pdf",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload deck: %w", err)
	}
	return objectName, nil
}

func (d *deckService) GetPresignedDeckURL(objectName string, expiry time.Duration) (string, error) {
	url, err := d.client.PresignedGetObject(context.Background(), deckBucket, objectName, expiry, nil)
	if err != nil {
		return "", err
	}
	return url.String(), nil
}

func (d *deckService) DeleteDeck(ctx context.Context, objectName string) error {
	return d.client.RemoveObject(ctx, deckBucket, objectName, minio.RemoveObjectOptions{})
}

func (d *deckService) EnsureBucketExists(ctx context.Context) error {
	found, err := d.client.BucketExists(ctx, deckBucket)
	if err != nil {
		return err
	}
	if !found {
		return d.client.MakeBucket(ctx, deckBucket, minio.MakeBucketOptions{})
	}
	return nil
}
