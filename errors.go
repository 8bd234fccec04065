//
// Copyright (C) 2024 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/s3copy
//

package s3copy

import (
	"github.com/fogfish/faults"
)

const (
	// Malformed object URI, no bucket could be extracted
	ErrInvalidURI = faults.Type("invalid s3 uri")

	// Destination root does not name a bucket
	ErrInvalidDestination = faults.Type("invalid s3 destination")

	// Metadata of source object is not available, the copy cannot proceed
	ErrSourceUnreachable = faults.Type("s3 source object is unreachable")
)
