package s3cp

import (
	"context"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dustin/go-humanize"
	"github.com/fogfish/s3copy"
	"go.uber.org/zap"
)

// Copy object using single server-side CopyObject call. Provider reported
// errors are logged and yield Fail outcome. Transport faults are returned
// as error, the caller decides about retry.
func (db *Store) Copy(ctx context.Context, desc s3copy.CopyDescriptor, size int64) (s3copy.Outcome, error) {
	if size >= s3copy.MaxCopySize {
		db.logger.Error("object exceeds single copy size limit",
			zap.String("copy_source", desc.SourceLocation),
			zap.String("bucket", desc.DestinationBucket),
			zap.String("key", desc.DestinationKey),
			zap.Int64("size", size),
			zap.String("size_human", humanize.IBytes(uint64(size))),
			zap.String("limit", humanize.IBytes(uint64(s3copy.MaxCopySize))),
		)
		return s3copy.Fail, nil
	}

	req := &s3.CopyObjectInput{
		Bucket:     aws.String(desc.DestinationBucket),
		CopySource: aws.String(copySource(desc.SourceLocation)),
		Key:        aws.String(desc.DestinationKey),
	}

	_, err := db.client.CopyObject(ctx, req)
	if err == nil {
		return s3copy.Success, nil
	}

	e := recoverAPIError(err)
	if e == nil {
		return s3copy.Fail, ErrServiceIO.New(err, desc.DestinationBucket, desc.DestinationKey)
	}

	switch e.ErrorCode() {
	case codeNoSuchKey:
		db.logger.Error("source object not found",
			zap.String("code", e.ErrorCode()),
			zap.String("message", e.ErrorMessage()),
			zap.String("copy_source", desc.SourceLocation),
		)
	case codeNoSuchBucket:
		db.logger.Error("bucket not found",
			zap.String("code", e.ErrorCode()),
			zap.String("message", e.ErrorMessage()),
			zap.String("copy_source", desc.SourceLocation),
			zap.String("bucket", desc.DestinationBucket),
		)
	default:
		db.logger.Error("copy object failed",
			zap.String("code", e.ErrorCode()),
			zap.String("message", e.ErrorMessage()),
			zap.String("copy_source", desc.SourceLocation),
			zap.String("bucket", desc.DestinationBucket),
			zap.String("key", desc.DestinationKey),
			zap.Error(err),
		)
	}

	return s3copy.Fail, nil
}

// x-amz-copy-source is url encoded, segment by segment to keep separators
func copySource(location string) string {
	seq := strings.Split(location, "/")
	for i, segment := range seq {
		seq[i] = url.PathEscape(segment)
	}

	return strings.Join(seq, "/")
}
