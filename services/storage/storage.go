package storage

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// Folders used for car media.
const (
	CarPhotosFolder    = "carrental/cars"
	GeneratedCarFolder = "carrental/generated"
)

// UploadResult identifies an uploaded asset.
type UploadResult struct {
	PublicID  string `json:"publicId"`
	SecureURL string `json:"secureUrl"`
}

// StorageService uploads media to the asset store.
type StorageService interface {
	// UploadFile uploads a local file, a remote URL or a data URI into destFolder.
	UploadFile(ctx context.Context, file, destFolder string) (*UploadResult, error)
	DeleteFile(ctx context.Context, publicID string) error
}

// CloudinaryStorage implements StorageService on Cloudinary.
type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	logger *zap.Logger
}

// NewCloudinaryStorage creates a new CloudinaryStorage instance.
func NewCloudinaryStorage(cld *cloudinary.Cloudinary, logger *zap.Logger) *CloudinaryStorage {
	return &CloudinaryStorage{cld: cld, logger: logger}
}

// UploadFile uploads file into destFolder and returns its public id and HTTPS URL.
func (s *CloudinaryStorage) UploadFile(ctx context.Context, file, destFolder string) (*UploadResult, error) {
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder: destFolder,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary rejected upload: %s", result.Error.Message)
	}
	if result.PublicID == "" || result.SecureURL == "" {
		return nil, fmt.Errorf("no public ID returned for upload")
	}
	s.logger.Debug("Uploaded asset", zap.String("publicId", result.PublicID), zap.String("folder", destFolder))
	return &UploadResult{PublicID: result.PublicID, SecureURL: result.SecureURL}, nil
}

// DeleteFile deletes an asset given its public ID.
func (s *CloudinaryStorage) DeleteFile(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
