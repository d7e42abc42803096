package outbound

import "context"

type SlideComposerPort interface {
	Compose(ctx context.Context, imageURL string, videoURL string) (string, error)
}
