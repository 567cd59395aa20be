// Package storage keeps venue image objects in the S3 bucket under
// venues/<venue id>/.
package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"strings"
	"venuebook/infras/s3"
	"venuebook/shared/constant"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const rootDirectory = "venues"

func Directory(venueID string) string {
	return path.Join(rootDirectory, venueID)
}

// Upload stores the file under a generated name and returns its public URL.
func Upload(ctx context.Context, store s3.S3, bucketName, venueID string, header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	fileName := uuid.NewString() + strings.ToLower(path.Ext(header.Filename))

	url, err := store.UploadFile(ctx, bucketName, Directory(venueID), file, header, fileName)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	return url, nil
}

// Remove deletes the objects behind urls. URLs that were not issued by the
// bucket are skipped, and failures are only logged.
func Remove(ctx context.Context, store s3.S3, bucketName string, urls ...string) {
	for _, url := range urls {
		objectName := store.GetObjectNameFromURL(bucketName, url)
		if objectName == constant.Empty {
			continue
		}

		if err := store.DeleteFile(ctx, bucketName, constant.Empty, objectName); err != nil {
			log.Warn().Err(err).Str("url", url).Msg("failed to delete image object")
		}
	}
}
