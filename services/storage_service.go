package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	"consulting-platform-server/config"
)

const maxUploadSize = 10 * 1024 * 1024 // 10MB

var allowedUploadExts = map[string]string{
	".jpg":  "image",
	".jpeg": "image",
	".png":  "image",
	".webp": "image",
	".pdf":  "raw",
	".doc":  "raw",
	".docx": "raw",
}

// StorageService uploads booking attachments and consultant documents
// to Cloudinary
type StorageService struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewStorageService() (*StorageService, error) {
	cc := config.AppConfig.Cloudinary
	if cc.CloudName == "" || cc.APIKey == "" || cc.APISecret == "" {
		return nil, fmt.Errorf("cloudinary is not configured")
	}

	cloudinaryURL := fmt.Sprintf("cloudinary://%s:%s@%s", cc.APIKey, cc.APISecret, cc.CloudName)
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &StorageService{cld: cld, folder: cc.Folder}, nil
}

// ValidateUploadFile checks the file size and extension before upload
func ValidateUploadFile(h *multipart.FileHeader) error {
	if h == nil || h.Size <= 0 {
		return fmt.Errorf("empty file")
	}
	if h.Size > maxUploadSize {
		return fmt.Errorf("file exceeds %d bytes", maxUploadSize)
	}
	ext := strings.ToLower(filepath.Ext(h.Filename))
	if _, ok := allowedUploadExts[ext]; !ok {
		return fmt.Errorf("unsupported file type %q", ext)
	}
	return nil
}

// Upload stores a file under folder/subfolder and returns its secure URL.
// The public id gets a uuid suffix so repeated uploads never collide.
func (ss *StorageService) Upload(ctx context.Context, h *multipart.FileHeader, subfolder string) (string, error) {
	if err := ValidateUploadFile(h); err != nil {
		return "", err
	}

	file, err := h.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(h.Filename))
	name := strings.TrimSuffix(h.Filename, filepath.Ext(h.Filename))
	publicID := fmt.Sprintf("%s-%s", name, uuid.NewString()[:8])

	overwrite := false
	uniqueFilename := true
	up, err := ss.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         fmt.Sprintf("%s/%s", ss.folder, subfolder),
		PublicID:       publicID,
		Overwrite:      &overwrite,
		UniqueFilename: &uniqueFilename,
		ResourceType:   allowedUploadExts[ext],
	})
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}

	return up.SecureURL, nil
}
