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
	"net/url"
	"strings"
)

const scheme = "s3://"

// ObjectLocation is normalized (bucket, key) pair.
// The key never starts with "/", empty key selects the whole bucket.
type ObjectLocation struct {
	Bucket string
	Key    string
}

// String renders location as s3:// url
func (loc ObjectLocation) String() string {
	return scheme + loc.Bucket + "/" + loc.Key
}

// Parse loosely formatted s3 url into bucket and key. The s3:// prefix is
// optional, e.g. "my-bucket/path/to/object" is same as
// "s3://my-bucket/path/to/object".
//
// The key is taken verbatim: escape sequences are neither decoded nor
// validated, query and fragment are dropped.
func Parse(uri string) (ObjectLocation, error) {
	rest := strings.TrimPrefix(uri, scheme)

	authority, key := rest, ""
	if i := strings.IndexAny(rest, "/?#"); i != -1 {
		authority, key = rest[:i], rest[i:]
	}

	u, err := url.Parse(scheme + authority)
	if err != nil {
		return ObjectLocation{}, fmt.Errorf("%w: %s: %w", ErrInvalidURI, uri, err)
	}

	if len(u.Host) == 0 {
		return ObjectLocation{}, fmt.Errorf("%w: %s: bucket is not defined", ErrInvalidURI, uri)
	}

	if i := strings.IndexAny(key, "?#"); i != -1 {
		key = key[:i]
	}

	if len(key) == 0 {
		key = "/"
	}

	return ObjectLocation{Bucket: u.Host, Key: strings.TrimPrefix(key, "/")}, nil
}
