package s3cp

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/fogfish/s3copy"
)

// Has fetches object metadata
func (db *Store) Has(ctx context.Context, bucket, key string) (s3copy.ObjectMetadata, error) {
	val, err := db.has(ctx, bucket, key)
	if err != nil {
		return s3copy.ObjectMetadata{}, ErrServiceIO.New(err, bucket, key)
	}

	return val, nil
}

func (db *Store) has(ctx context.Context, bucket, key string) (s3copy.ObjectMetadata, error) {
	req := &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}

	val, err := db.client.HeadObject(ctx, req)
	if err != nil {
		return s3copy.ObjectMetadata{}, err
	}

	return s3copy.ObjectMetadata{
		ContentLength: aws.ToInt64(val.ContentLength),
		ETag:          aws.ToString(val.ETag),
		LastModified:  aws.ToTime(val.LastModified),
	}, nil
}
