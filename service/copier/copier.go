//
// Copyright (C) 2020 - 2024 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/s3copy
//

// Package copier is the entry point to idempotent copy of S3 objects.
//
//	cp, err := copier.New()
//	status, err := cp.CopyObject(ctx, "s3://source/path/file", "target/prefix")
//
// The copy is skipped if destination already holds the object of same size.
// The outcome Fail is a normal result of copy. The error is returned only if
// the copy flow is aborted by fault after all retries.
package copier

import (
	"context"
	"time"

	"github.com/fogfish/s3copy"
	"github.com/fogfish/s3copy/internal/s3cp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Copier of S3 objects
type Copier struct {
	store       *s3cp.Store
	logger      *zap.Logger
	retry       s3copy.RetryPolicy
	concurrency int
}

// Result of copying single object in batch
type Result struct {
	Source  string
	Outcome s3copy.Outcome
	Err     error
}

// New copier instance
func New(opts ...Option) (*Copier, error) {
	conf := defaultOptions()
	for _, opt := range opts {
		opt(conf)
	}

	client, err := newClient(conf)
	if err != nil {
		return nil, err
	}

	var metrics *s3cp.Metrics
	if conf.registerer != nil {
		metrics, err = s3cp.NewMetrics(conf.registerer)
		if err != nil {
			return nil, err
		}
	}

	return &Copier{
		store:       s3cp.New(client, conf.logger, metrics),
		logger:      conf.logger,
		retry:       conf.retry,
		concurrency: conf.concurrency,
	}, nil
}

func newClient(conf *Options) (s3copy.S3, error) {
	if conf.service != nil {
		return conf.service, nil
	}

	return s3copy.NewClient(context.Background(), conf.config)
}

// CopyObject copies source object under the destination root, preserving
// the object's path. Malformed input fails before any network call.
func (cp *Copier) CopyObject(ctx context.Context, sourceURI, destinationRoot string) (s3copy.Outcome, error) {
	desc, err := s3copy.Build(sourceURI, destinationRoot)
	if err != nil {
		return s3copy.Fail, err
	}

	logger := cp.logger.With(zap.String("copy_source", desc.SourceLocation))

	policy := cp.retry
	if policy.OnRetry == nil {
		policy.OnRetry = func(err error, wait time.Duration) {
			logger.Warn("copy flow fault, retrying", zap.Error(err), zap.Duration("wait", wait))
		}
	}

	run := s3copy.Retry(policy,
		func(ctx context.Context) (s3copy.Outcome, error) {
			return cp.store.Run(ctx, desc)
		},
	)

	status, err := run(ctx)
	if err != nil {
		logger.Error("copy flow aborted", zap.Error(err))
		return s3copy.Fail, err
	}

	logger.Info("copy completed", zap.Stringer("status", status))
	return status, nil
}

// CopyAll copies each source object independently and in parallel.
// Results are ordered as sources.
func (cp *Copier) CopyAll(ctx context.Context, sources []string, destinationRoot string) []Result {
	seq := make([]Result, len(sources))

	var g errgroup.Group
	g.SetLimit(cp.concurrency)

	for i, source := range sources {
		g.Go(func() error {
			status, err := cp.CopyObject(ctx, source, destinationRoot)
			seq[i] = Result{Source: source, Outcome: status, Err: err}
			return nil
		})
	}

	_ = g.Wait()

	return seq
}
