package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"github.com/hivenest/hivenest-backend/internal/config"
)

// StorageService uploads listing photos to S3. Without AWS credentials
// it falls back to local disk for development.
type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
}

const (
	maxPhotoSize   = 10 << 20 // 10 MB
	localUploadDir = "./uploads"
)

var allowedPhotoExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	if cfg.AWS.AccessKeyID == "" {
		// Return service without S3 for local development
		return &StorageService{config: cfg}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   cfg,
	}, nil
}

// UploadPropertyPhotos stores each photo and returns its public URL in
// input order.
func (s *StorageService) UploadPropertyPhotos(files []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, header := range files {
		url, err := s.uploadPhoto(header)
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", header.Filename, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *StorageService) uploadPhoto(header *multipart.FileHeader) (string, error) {
	if header.Size > maxPhotoSize {
		return "", fmt.Errorf("file size %d bytes exceeds maximum allowed size %d bytes", header.Size, maxPhotoSize)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowed := false
	for _, allowedExt := range allowedPhotoExtensions {
		if ext == allowedExt {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", fmt.Errorf("file type %s is not allowed", ext)
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	key := fmt.Sprintf("properties/%s%s", uuid.New().String(), ext)

	if s.s3Client != nil {
		return s.uploadToS3(fileBytes, key, header.Header.Get("Content-Type"))
	}
	return s.uploadToLocal(fileBytes, key)
}

func (s *StorageService) uploadToS3(fileBytes []byte, key, contentType string) (string, error) {
	_, err := s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.AWS.S3Bucket, s.config.AWS.Region, key), nil
}

func (s *StorageService) uploadToLocal(fileBytes []byte, key string) (string, error) {
	path := filepath.Join(localUploadDir, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(path, fileBytes, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return "/" + filepath.ToSlash(path), nil
}
