package outbound

import "context"

type RecordVideoParams struct {
	VideoURL string
	Username string
	UserID   string
}

type VideoRecorderPort interface {
	Record(ctx context.Context, params RecordVideoParams) error
}
