package s3cp

import (
	"context"
	"fmt"

	"github.com/fogfish/s3copy"
	"go.uber.org/zap"
)

// Run copies object unless destination already holds the object of same size.
// Re-running on already copied object is no-op that reports Success.
//
// Failure to inspect the source object is a fault. Any failure of destination
// lookup leads to copy.
func (db *Store) Run(ctx context.Context, desc s3copy.CopyDescriptor) (s3copy.Outcome, error) {
	status, err := db.run(ctx, desc)
	if err != nil {
		db.metrics.fault()
		return status, err
	}

	db.metrics.outcome(status)
	return status, nil
}

func (db *Store) run(ctx context.Context, desc s3copy.CopyDescriptor) (s3copy.Outcome, error) {
	bucket, key, err := desc.Source()
	if err != nil {
		return s3copy.Fail, err
	}

	source, err := db.Has(ctx, bucket, key)
	if err != nil {
		return s3copy.Fail, fmt.Errorf("%w: %w", s3copy.ErrSourceUnreachable, err)
	}

	target, err := db.has(ctx, desc.DestinationBucket, desc.DestinationKey)
	switch {
	case err == nil && target.ContentLength == source.ContentLength:
		db.logger.Info("object is already copied, skip",
			zap.String("copy_source", desc.SourceLocation),
			zap.String("bucket", desc.DestinationBucket),
			zap.String("key", desc.DestinationKey),
			zap.Int64("size", source.ContentLength),
		)
		db.metrics.skip()
		return s3copy.Success, nil
	case err == nil:
		db.logger.Debug("object size differs at destination",
			zap.String("copy_source", desc.SourceLocation),
			zap.Int64("size", source.ContentLength),
			zap.Int64("target_size", target.ContentLength),
		)
	case recoverNotFound(err):
		db.logger.Debug("object not found at destination",
			zap.String("bucket", desc.DestinationBucket),
			zap.String("key", desc.DestinationKey),
		)
	default:
		db.logger.Warn("destination lookup failed, copying anyway",
			zap.String("bucket", desc.DestinationBucket),
			zap.String("key", desc.DestinationKey),
			zap.Error(err),
		)
	}

	return db.Copy(ctx, desc, source.ContentLength)
}
