//
// Copyright (C) 2020 - 2024 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/s3copy
//

package s3cp

import (
	"errors"

	"github.com/aws/smithy-go"
	"github.com/fogfish/faults"
)

const (
	ErrServiceIO = faults.Safe2[string, string]("service i/o failed (bucket: %s, key: %s)")
)

const (
	codeNotFound     = "NotFound"
	codeNoSuchKey    = "NoSuchKey"
	codeNoSuchBucket = "NoSuchBucket"
)

// provider reported error, nil if err is a transport fault
func recoverAPIError(err error) smithy.APIError {
	var e smithy.APIError
	if errors.As(err, &e) {
		return e
	}

	return nil
}

func recoverNotFound(err error) bool {
	e := recoverAPIError(err)
	if e == nil {
		return false
	}

	code := e.ErrorCode()
	return code == codeNotFound || code == codeNoSuchKey
}
