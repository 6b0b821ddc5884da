// Package media issues presigned S3 upload URLs for project images. The
// API never proxies image bytes; clients PUT directly to the bucket and
// store the resulting public URL on the project.
package media

import (
	"context"
	"fmt"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/appli-farm/applifarm-backend/config"
	"github.com/appli-farm/applifarm-backend/internal/apperr"
)

const (
	// MaxUploadBytes caps project images at 10 MB.
	MaxUploadBytes = 10 << 20

	presignTTL = 15 * time.Minute
)

// Upload is a presigned upload slot: PUT the bytes to UploadURL, then use
// PublicURL as the project's image_url.
type Upload struct {
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expires_in_seconds"`
}

type Presigner struct {
	client        *s3.PresignClient
	bucket        string
	publicBaseURL string
}

// NewPresigner builds a presigner from the ambient AWS credentials.
// Returns (nil, nil) when S3 is disabled; callers skip the upload routes.
func NewPresigner(ctx context.Context, cfg *config.S3Config) (*Presigner, error) {
	if cfg.Disabled {
		return nil, nil
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("aws config load: %w", err)
	}

	return &Presigner{
		client:        s3.NewPresignClient(s3.NewFromConfig(awsCfg)),
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}, nil
}

// PresignImageUpload validates the declared upload and returns a presigned
// PUT URL under the owner's key prefix.
func (p *Presigner) PresignImageUpload(ctx context.Context, ownerID, filename, contentType string, sizeBytes int64) (*Upload, error) {
	if err := ValidateImageUpload(filename, contentType, sizeBytes); err != nil {
		return nil, err
	}

	key := objectKey(ownerID, filename, contentType)
	req, err := p.client.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return nil, fmt.Errorf("presign put object: %w", err)
	}

	return &Upload{
		UploadURL: req.URL,
		PublicURL: p.publicBaseURL + "/" + key,
		Key:       key,
		ExpiresIn: int(presignTTL.Seconds()),
	}, nil
}

// ValidateImageUpload checks the client-declared metadata. The bucket
// policy enforces the size server-side; this check just fails fast.
func ValidateImageUpload(filename, contentType string, sizeBytes int64) error {
	if strings.TrimSpace(filename) == "" {
		return apperr.Validation("filename", "filename is required")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return apperr.Validation("content_type", "only image uploads are allowed")
	}
	if sizeBytes <= 0 {
		return apperr.Validation("size_bytes", "size must be positive")
	}
	if sizeBytes > MaxUploadBytes {
		return apperr.Validation("size_bytes", "image must be at most 10MB")
	}
	return nil
}

// objectKey namespaces uploads per owner and never trusts the client's
// filename beyond its extension.
func objectKey(ownerID, filename, contentType string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
			ext = exts[0]
		}
	}
	return fmt.Sprintf("projects/%s/%s%s", ownerID, uuid.New().String(), ext)
}
