//
// Copyright (C) 2020 - 2024 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/s3copy
//

package copier

import (
	"github.com/fogfish/s3copy"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option type to configure the copier
type Option func(*Options)

// Copier Config Options
type Options struct {
	service     s3copy.S3
	config      s3copy.Config
	logger      *zap.Logger
	registerer  prometheus.Registerer
	retry       s3copy.RetryPolicy
	concurrency int
}

func defaultOptions() *Options {
	return &Options{
		config:      s3copy.DefaultConfig(),
		logger:      zap.NewNop(),
		retry:       s3copy.DefaultRetryPolicy(),
		concurrency: 8,
	}
}

// Use the given S3 api instead of creating client from config
func WithS3(service s3copy.S3) Option {
	return func(c *Options) {
		c.service = service
	}
}

// Configuration of S3 client
func WithConfig(config s3copy.Config) Option {
	return func(c *Options) {
		c.config = config
	}
}

// Structured logger for diagnostic records
func WithLogger(logger *zap.Logger) Option {
	return func(c *Options) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Register copy metrics
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Options) {
		c.registerer = reg
	}
}

// Retry policy of the copy flow
func WithRetryPolicy(policy s3copy.RetryPolicy) Option {
	return func(c *Options) {
		c.retry = policy
	}
}

// Number of objects copied in parallel by CopyAll
func WithConcurrency(n int) Option {
	return func(c *Options) {
		if n > 0 {
			c.concurrency = n
		}
	}
}
