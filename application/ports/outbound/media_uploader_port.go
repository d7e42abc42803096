package outbound

import "context"

type UploadRequest struct {
	Content     []byte
	Key         string
	ContentType string
}

// MediaUploaderPort moves media into durable storage. Upload writes
// caller-supplied bytes; Persist copies an already-hosted object by URL.
// Both return the stable public URL.
type MediaUploaderPort interface {
	Upload(ctx context.Context, req UploadRequest) (string, error)
	Persist(ctx context.Context, sourceURL string, key string) (string, error)
}
