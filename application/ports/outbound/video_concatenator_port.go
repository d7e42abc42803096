package outbound

import "context"

type VideoConcatenatorPort interface {
	Concatenate(ctx context.Context, videoURLs []string) (string, error)
}
