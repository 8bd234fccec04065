//
// Copyright (C) 2024 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/s3copy
//

//
// The file declares configuration of S3 client
//

package s3copy

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Config of S3 client. It is constructed once by the caller and passed into
// NewClient, there is no process-wide state.
type Config struct {
	// Custom endpoint (e.g. localstack), empty for AWS
	Endpoint string

	// AWS region, empty to resolve from environment
	Region string

	// Shared config profile, empty for default
	Profile string

	// Connect and read timeouts of http transport
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration

	// Max attempts of each api call by SDK retryer (standard mode)
	MaxAttempts int

	// Explicit credentials, overrides default chain
	Credentials aws.CredentialsProvider
}

// DefaultConfig is production configuration
func DefaultConfig() Config {
	return Config{
		ConnectTimeout: 300 * time.Second,
		ReadTimeout:    300 * time.Second,
		MaxAttempts:    5,
	}
}

// LocalConfig is configuration of local S3 double (e.g. localstack)
func LocalConfig(endpoint string) Config {
	return Config{
		Endpoint: endpoint,
		Region:   "us-east-1",
		Profile:  "localstack",
	}
}

// ConfigFor selects local config if endpoint is defined, production otherwise
func ConfigFor(endpoint string) Config {
	if len(strings.TrimSpace(endpoint)) != 0 {
		return LocalConfig(strings.TrimSpace(endpoint))
	}

	return DefaultConfig()
}

// NewClient creates S3 client from config
func NewClient(ctx context.Context, cfg Config) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithHTTPClient(newHTTPClient(cfg)),
	}

	if len(cfg.Region) != 0 {
		opts = append(opts, config.WithRegion(cfg.Region))
	}

	if len(cfg.Profile) != 0 && cfg.Credentials == nil {
		opts = append(opts, config.WithSharedConfigProfile(cfg.Profile))
	}

	if cfg.Credentials != nil {
		opts = append(opts, config.WithCredentialsProvider(cfg.Credentials))
	}

	if cfg.MaxAttempts > 0 {
		opts = append(opts,
			config.WithRetryMode(aws.RetryModeStandard),
			config.WithRetryMaxAttempts(cfg.MaxAttempts),
		)
	}

	conf, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(conf, func(o *s3.Options) {
		if len(cfg.Endpoint) != 0 {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
			// local S3 doubles do not support streaming checksums
			o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		}
	})

	return client, nil
}

func newHTTPClient(cfg Config) *awshttp.BuildableClient {
	client := awshttp.NewBuildableClient()

	if cfg.ConnectTimeout > 0 {
		client = client.WithDialerOptions(func(d *net.Dialer) {
			d.Timeout = cfg.ConnectTimeout
		})
	}

	if cfg.ReadTimeout > 0 {
		client = client.WithTransportOptions(func(tr *http.Transport) {
			tr.ResponseHeaderTimeout = cfg.ReadTimeout
		})
	}

	return client
}
