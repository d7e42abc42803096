package outbound

import (
	"context"
	"generate-lecture-video/domain"
)

type MetadataStorePort interface {
	Save(ctx context.Context, metadata domain.PresentationMetadata) error
}
