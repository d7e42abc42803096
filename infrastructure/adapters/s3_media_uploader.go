package adapters

import (
	"bytes"
	"context"
	"fmt"
	"generate-lecture-video/application/ports/outbound"
	"generate-lecture-video/config"
	"net/http"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
)

type s3MediaUploader struct {
	logger   outbound.LoggerPort
	fetcher  ContentFetcher
	s3Svc    *s3.S3
	s3Config *config.S3Config
}

func NewS3MediaUploader(logger outbound.LoggerPort, fetcher ContentFetcher, s3Svc *s3.S3, s3Config *config.S3Config) outbound.MediaUploaderPort {
	return &s3MediaUploader{
		logger:   logger,
		fetcher:  fetcher,
		s3Svc:    s3Svc,
		s3Config: s3Config,
	}
}

func (u *s3MediaUploader) Upload(ctx context.Context, req outbound.UploadRequest) (string, error) {
	putInput := &s3.PutObjectInput{
		Bucket:        aws.String(u.s3Config.BucketName),
		Key:           aws.String(req.Key),
		Body:          bytes.NewReader(req.Content),
		ContentLength: aws.Int64(int64(len(req.Content))),
		ContentType:   aws.String(req.ContentType),
	}

	if _, err := u.s3Svc.PutObjectWithContext(ctx, putInput); err != nil {
		u.logger.ErrorWithFields(err, "failed to upload object to S3", map[string]interface{}{
			"bucket": u.s3Config.BucketName,
			"key":    req.Key,
		})
		return "", err
	}

	url := u.objectURL(req.Key)
	u.logger.DebugWithFields("uploaded object to S3", map[string]interface{}{
		"url": url,
	})
	return url, nil
}

// Persist copies an object the media services produced at a transient
// URL into the bucket, giving it a stable playable address.
func (u *s3MediaUploader) Persist(ctx context.Context, sourceURL string, key string) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		u.logger.Error(err, "failed to create the HTTP request")
		return "", err
	}

	content, err := u.fetcher.FetchContent(httpReq, "media storage")
	if err != nil {
		return "", err
	}

	return u.Upload(ctx, outbound.UploadRequest{
		Content:     content,
		Key:         key,
		ContentType: "video/mp4",
	})
}

func (u *s3MediaUploader) objectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.s3Config.BucketName, u.s3Config.Region, key)
}
