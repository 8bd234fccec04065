//
// Copyright (C) 2024 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/s3copy
//

package s3copy

import (
	"fmt"
	"strings"
)

// CopyDescriptor is fully resolved parameters of single CopyObject call.
type CopyDescriptor struct {
	DestinationBucket string
	SourceLocation    string // bucket/key
	DestinationKey    string
}

// Source splits source location into bucket and key
func (desc CopyDescriptor) Source() (string, string, error) {
	bucket, key, ok := strings.Cut(desc.SourceLocation, "/")
	if !ok || len(bucket) == 0 {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidURI, desc.SourceLocation)
	}

	return bucket, key, nil
}

func (desc CopyDescriptor) String() string {
	return scheme + desc.SourceLocation + " -> " + scheme + desc.DestinationBucket + "/" + desc.DestinationKey
}

// Build copy descriptor from source object url and destination root.
// The destination root is a bucket optionally followed by the prefix, e.g.
// "my-bucket/new_release". The full path of the source object is preserved
// under the destination prefix:
//
//	Build("s3://ccdi-validation/QL/file2.txt", "my-bucket/new_release")
//	  ⟹ my-bucket, ccdi-validation/QL/file2.txt, new_release/QL/file2.txt
func Build(sourceURI, destRoot string) (CopyDescriptor, error) {
	source, err := Parse(sourceURI)
	if err != nil {
		return CopyDescriptor{}, err
	}

	root := strings.TrimPrefix(destRoot, scheme)
	if !strings.Contains(root, "/") {
		root = root + "/"
	}

	bucket, prefix, _ := strings.Cut(root, "/")
	if len(bucket) == 0 {
		return CopyDescriptor{}, fmt.Errorf("%w: %s", ErrInvalidDestination, destRoot)
	}

	return CopyDescriptor{
		DestinationBucket: bucket,
		SourceLocation:    join(source.Bucket, source.Key),
		DestinationKey:    join(prefix, source.Key),
	}, nil
}

// join path segments collapsing redundant separators.
// Unlike path.Join, it does not resolve "." and ".." (valid S3 key segments)
// and keeps the trailing separator. The result never starts with separator.
func join(base, key string) string {
	s := base
	if len(s) != 0 && !strings.HasSuffix(s, "/") {
		s += "/"
	}
	s += key

	for strings.Contains(s, "//") {
		s = strings.ReplaceAll(s, "//", "/")
	}

	return strings.TrimPrefix(s, "/")
}
