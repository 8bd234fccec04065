//
// Copyright (C) 2024 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/s3copy
//

package s3copy_test

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/fogfish/it/v2"
	"github.com/fogfish/s3copy"
)

func TestConfigFor(t *testing.T) {
	t.Run("Production", func(t *testing.T) {
		cfg := s3copy.ConfigFor("")
		it.Then(t).Should(
			it.Equal(cfg.Endpoint, ""),
			it.Equal(cfg.ConnectTimeout, 300*time.Second),
			it.Equal(cfg.ReadTimeout, 300*time.Second),
			it.Equal(cfg.MaxAttempts, 5),
		)
	})

	t.Run("Local", func(t *testing.T) {
		cfg := s3copy.ConfigFor(" http://localhost:4566 ")
		it.Then(t).Should(
			it.Equal(cfg.Endpoint, "http://localhost:4566"),
			it.Equal(cfg.Region, "us-east-1"),
			it.Equal(cfg.Profile, "localstack"),
		)
	})
}

func TestNewClient(t *testing.T) {
	cfg := s3copy.LocalConfig("http://localhost:4566")
	cfg.Credentials = credentials.NewStaticCredentialsProvider("test", "test", "")
	cfg.MaxAttempts = 2

	client, err := s3copy.NewClient(context.Background(), cfg)
	it.Then(t).Must(it.Nil(err))

	opts := client.Options()
	it.Then(t).Should(
		it.Equal(aws.ToString(opts.BaseEndpoint), "http://localhost:4566"),
		it.Equal(opts.UsePathStyle, true),
		it.Equal(opts.Region, "us-east-1"),
		it.Equal(opts.RequestChecksumCalculation, aws.RequestChecksumCalculationWhenRequired),
		it.Equal(opts.RetryMaxAttempts, 2),
	)
}
