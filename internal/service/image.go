package service

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ObjectPutter is the part of the S3 client used for uploads
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ImageService stores recipe images in S3
type ImageService struct {
	client     ObjectPutter
	bucketName string
	log        *zap.Logger
}

// NewImageService creates a new ImageService instance
func NewImageService(client ObjectPutter, bucketName string, log *zap.Logger) *ImageService {
	return &ImageService{client: client, bucketName: bucketName, log: log}
}

// UploadRecipeImage uploads the image under recipe-images/<recipe id>/ and
// returns its public URL.
func (s *ImageService) UploadRecipeImage(ctx context.Context, recipeID uuid.UUID, data []byte) (string, error) {
	contentType := http.DetectContentType(data)
	ext := ".png"
	if contentType == "image/jpeg" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("recipe-images/%s/%s%s", recipeID, uuid.New(), ext)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucketName, key)
	s.log.Info("uploaded recipe image", zap.String("recipe_id", recipeID.String()), zap.String("url", publicURL))
	return publicURL, nil
}
