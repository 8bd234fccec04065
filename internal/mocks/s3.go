//
// Copyright (C) 2024 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/s3copy
//

package mocks

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/fogfish/s3copy"
)

type Mock[T any] struct {
	s3copy.S3
	Delay     *time.Duration
	ExpectKey string
	ReturnVal *T
	ReturnErr error
}

func (mock Mock[T]) Assert(ctx context.Context, inputKey *string) error {
	key := aws.ToString(inputKey)
	if key != mock.ExpectKey {
		return fmt.Errorf("expected key %s, got %s", mock.ExpectKey, key)
	}

	if mock.Delay != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(*mock.Delay):
		}
	}

	return nil
}

//

type HeadObject struct{ Mock[s3.HeadObjectOutput] }

func (mock HeadObject) HeadObject(ctx context.Context, input *s3.HeadObjectInput, opts ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if err := mock.Assert(ctx, input.Key); err != nil {
		return nil, err
	}

	if mock.ReturnErr != nil {
		return nil, mock.ReturnErr
	}

	if mock.ReturnVal == nil {
		return nil, &types.NotFound{}
	}

	return mock.ReturnVal, nil
}

//

type CopyObject struct {
	Mock[s3.CopyObjectOutput]
	Calls *int
}

func (mock CopyObject) CopyObject(ctx context.Context, params *s3.CopyObjectInput, optFns ...func(*s3.Options)) (*s3.CopyObjectOutput, error) {
	if mock.Calls != nil {
		*mock.Calls++
	}

	if err := mock.Assert(ctx, params.Key); err != nil {
		return nil, err
	}

	if mock.ReturnErr != nil {
		return nil, mock.ReturnErr
	}

	if mock.ReturnVal == nil {
		return &s3.CopyObjectOutput{}, nil
	}

	return mock.ReturnVal, nil
}

//

// Bucket is in-memory object store, it keeps object sizes only.
// Objects are addressed as "bucket/key".
type Bucket struct {
	mu      sync.Mutex
	buckets map[string]struct{}
	objects map[string]int64
	copies  []string

	// Errors returned by HeadObject for "bucket/key"
	HeadErr map[string]error

	// Errors returned by CopyObject, consumed one per call
	CopyErr []error
}

// NewBucket creates store with objects and extra empty buckets
func NewBucket(objects map[string]int64, buckets ...string) *Bucket {
	b := &Bucket{
		buckets: map[string]struct{}{},
		objects: map[string]int64{},
		HeadErr: map[string]error{},
	}

	for location, size := range objects {
		bucket, _, _ := strings.Cut(location, "/")
		b.buckets[bucket] = struct{}{}
		b.objects[location] = size
	}

	for _, bucket := range buckets {
		b.buckets[bucket] = struct{}{}
	}

	return b
}

// Copies returns destinations of successful and failed copy calls
func (b *Bucket) Copies() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]string{}, b.copies...)
}

// Size of object, -1 if object does not exist
func (b *Bucket) Size(location string) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	if size, has := b.objects[location]; has {
		return size
	}
	return -1
}

func (b *Bucket) HeadObject(ctx context.Context, input *s3.HeadObjectInput, opts ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	location := aws.ToString(input.Bucket) + "/" + aws.ToString(input.Key)
	if err, has := b.HeadErr[location]; has {
		return nil, err
	}

	size, has := b.objects[location]
	if !has {
		return nil, &types.NotFound{}
	}

	return &s3.HeadObjectOutput{ContentLength: aws.Int64(size)}, nil
}

func (b *Bucket) CopyObject(ctx context.Context, params *s3.CopyObjectInput, optFns ...func(*s3.Options)) (*s3.CopyObjectOutput, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	target := aws.ToString(params.Bucket) + "/" + aws.ToString(params.Key)
	b.copies = append(b.copies, target)

	if len(b.CopyErr) > 0 {
		err := b.CopyErr[0]
		b.CopyErr = b.CopyErr[1:]
		if err != nil {
			return nil, err
		}
	}

	source, err := url.PathUnescape(aws.ToString(params.CopySource))
	if err != nil {
		return nil, &types.NoSuchKey{Message: aws.String("The specified key does not exist.")}
	}

	size, has := b.objects[source]
	if !has {
		return nil, &types.NoSuchKey{Message: aws.String("The specified key does not exist.")}
	}

	if _, has := b.buckets[aws.ToString(params.Bucket)]; !has {
		return nil, &types.NoSuchBucket{Message: aws.String("The specified bucket does not exist")}
	}

	b.objects[target] = size
	return &s3.CopyObjectOutput{}, nil
}
