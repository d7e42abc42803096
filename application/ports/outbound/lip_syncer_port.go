package outbound

import "context"

type LipSyncerPort interface {
	Sync(ctx context.Context, audioURL string, videoURL string) (string, error)
}
