package services

import (
	"errors"
	"strings"

	apperrors "furniture-service/common/errors"
	"furniture-service/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ImageUpload describes a presigned direct-to-bucket upload.
type ImageUpload struct {
	UploadURL string `json:"upload_url"`
	Method    string `json:"method"`
	Key       string `json:"key"`
	PublicURL string `json:"public_url"`
	ExpiresIn int64  `json:"expires_in"`
}

// ImageStorageConfig configures product image uploads. An empty Bucket
// disables them.
type ImageStorageConfig struct {
	Bucket string
	Prefix string
	// PublicBaseURL overrides the bucket URL, e.g. a CloudFront domain.
	PublicBaseURL string
	Region        string
}

// parseID turns a hex id from the URL into an ObjectID.
func parseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(hex))
	if err != nil {
		return primitive.NilObjectID, apperrors.Validation(MsgInvalidID, err)
	}
	return id, nil
}

// storeError maps repository sentinels onto client errors.
func storeError(err error, notFound, duplicate string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NotFound(notFound)
	case duplicate != "" && errors.Is(err, repository.ErrDuplicate):
		return apperrors.Conflict(duplicate, err)
	default:
		return apperrors.Internal(err)
	}
}
