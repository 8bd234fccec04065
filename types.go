//
// Copyright (C) 2024 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/s3copy
//

package s3copy

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3 is the subset of AWS S3 API used by the copier.
// The *s3.Client satisfies it.
type S3 interface {
	HeadObject(context.Context, *s3.HeadObjectInput, ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	CopyObject(context.Context, *s3.CopyObjectInput, ...func(*s3.Options)) (*s3.CopyObjectOutput, error)
}

var _ S3 = (*s3.Client)(nil)

// Server-side copy with single CopyObject call is not valid above this size.
const MaxCopySize int64 = 5 * 1024 * 1024 * 1024

//------------------------------------------------------------------------------

// Outcome of copy operation. It is a normal result value, not an error.
type Outcome int

const (
	Fail Outcome = iota
	Success
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "Success"
	default:
		return "Fail"
	}
}

//------------------------------------------------------------------------------

// ObjectMetadata is a read-only view of the object obtained with HeadObject.
type ObjectMetadata struct {
	ContentLength int64
	ETag          string
	LastModified  time.Time
}
