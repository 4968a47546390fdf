package profiles

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// imagePrefix is the blob path convention: profileImages/{uid}/{file}.
const imagePrefix = "profileImages"

// StorageUploader writes profile images to the Firebase storage
// bucket. Re-uploading the same file name for a user overwrites the
// prior blob.
type StorageUploader struct {
	bucket     *storage.BucketHandle
	bucketName string
}

func NewStorageUploader(bucket *storage.BucketHandle, bucketName string) *StorageUploader {
	return &StorageUploader{bucket: bucket, bucketName: bucketName}
}

func (u *StorageUploader) Upload(ctx context.Context, uid, fileName string, data []byte) (string, error) {
	object := path.Join(imagePrefix, uid, path.Base(fileName))

	// A fresh download token per upload makes the URL durable without
	// opening the whole bucket.
	token := uuid.NewString()

	w := u.bucket.Object(object).NewWriter(ctx)
	w.ContentType = http.DetectContentType(data)
	w.Metadata = map[string]string{"firebaseStorageDownloadTokens": token}

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write image: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	return downloadURL(u.bucketName, object, token), nil
}

func downloadURL(bucket, object, token string) string {
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		bucket, url.PathEscape(object), token)
}
