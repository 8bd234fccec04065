//
// Copyright (C) 2020 - 2024 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/s3copy
//

package s3cp

import (
	"github.com/fogfish/s3copy"
	"go.uber.org/zap"
)

// Store executes copy operations against S3 api
type Store struct {
	client  s3copy.S3
	logger  *zap.Logger
	metrics *Metrics
}

// New store instance, logger and metrics are optional
func New(api s3copy.S3, logger *zap.Logger, metrics *Metrics) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{
		client:  api,
		logger:  logger,
		metrics: metrics,
	}
}
