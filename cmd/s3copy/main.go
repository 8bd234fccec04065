//
// Copyright (C) 2024 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/s3copy
//

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fogfish/s3copy"
	"github.com/fogfish/s3copy/service/copier"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	keyEndpoint       = "endpoint"
	keyRegion         = "region"
	keyProfile        = "profile"
	keyConnectTimeout = "connect-timeout"
	keyReadTimeout    = "read-timeout"
	keyMaxAttempts    = "max-attempts"
	keyRetries        = "retries"
	keyRetryDelay     = "retry-delay"
	keyConcurrency    = "concurrency"
	keyManifest       = "manifest"
	keyLogLevel       = "log-level"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newCommand(viper.New()).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newCommand(vip *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "s3copy [flags] SOURCE DESTINATION\n  s3copy --manifest FILE DESTINATION",
		Short: "idempotent server-side copy of S3 objects",
		Long: `Copies S3 object(s) under the destination bucket/prefix, preserving the
object's path. Objects already present at destination with the same size
are skipped. Objects of 5GiB or larger are rejected.

  s3copy s3://ccdi-validation/QL/file2.txt my-bucket/new_release

Set LOCALSTACK_ENDPOINT_URL to copy within local S3 double.`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), vip, args, cmd.OutOrStdout())
		},
	}

	def := s3copy.DefaultConfig()
	pol := s3copy.DefaultRetryPolicy()

	flags := cmd.Flags()
	flags.String(keyEndpoint, "", "custom S3 endpoint (local test double)")
	flags.String(keyRegion, "", "AWS region")
	flags.String(keyProfile, "", "AWS shared config profile")
	flags.Duration(keyConnectTimeout, def.ConnectTimeout, "connect timeout")
	flags.Duration(keyReadTimeout, def.ReadTimeout, "read timeout")
	flags.Int(keyMaxAttempts, def.MaxAttempts, "max attempts of each S3 api call")
	flags.Int(keyRetries, pol.Retries, "retries of copy flow on fault")
	flags.Duration(keyRetryDelay, pol.Delay, "delay between retries of copy flow")
	flags.Int(keyConcurrency, 8, "number of objects copied in parallel")
	flags.String(keyManifest, "", "file with source urls, one per line")
	flags.String(keyLogLevel, "info", "log level (debug, info, warn, error)")

	vip.SetEnvPrefix("S3COPY")
	vip.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vip.AutomaticEnv()

	mustBindFlag(vip, keyEndpoint, "LOCALSTACK_ENDPOINT_URL", flags.Lookup(keyEndpoint))
	for _, key := range []string{
		keyRegion, keyProfile, keyConnectTimeout, keyReadTimeout, keyMaxAttempts,
		keyRetries, keyRetryDelay, keyConcurrency, keyManifest, keyLogLevel,
	} {
		mustBindFlag(vip, key, "", flags.Lookup(key))
	}

	return cmd
}

func mustBindFlag(vip *viper.Viper, key, env string, flag *pflag.Flag) {
	if flag == nil {
		panic(fmt.Sprintf("flag for key %s not found", key))
	}
	if err := vip.BindPFlag(key, flag); err != nil {
		panic(err)
	}
	if env != "" {
		if err := vip.BindEnv(key, "S3COPY_"+strings.ToUpper(strings.ReplaceAll(key, "-", "_")), env); err != nil {
			panic(err)
		}
	}
}

func run(ctx context.Context, vip *viper.Viper, args []string, stdout io.Writer) error {
	logger, err := newLogger(vip.GetString(keyLogLevel))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	sources, dest, err := sourcesOf(vip.GetString(keyManifest), args)
	if err != nil {
		return err
	}

	cp, err := copier.New(
		copier.WithConfig(configOf(vip)),
		copier.WithLogger(logger.With(zap.String("run", uuid.NewString()))),
		copier.WithRetryPolicy(s3copy.RetryPolicy{
			Retries: vip.GetInt(keyRetries),
			Delay:   vip.GetDuration(keyRetryDelay),
		}),
		copier.WithConcurrency(vip.GetInt(keyConcurrency)),
	)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range cp.CopyAll(ctx, sources, dest) {
		if r.Err != nil {
			failed++
			fmt.Fprintf(stdout, "%s transfer_status: %s (%s)\n", r.Source, r.Outcome, r.Err)
			continue
		}
		if r.Outcome != s3copy.Success {
			failed++
		}
		fmt.Fprintf(stdout, "%s transfer_status: %s\n", r.Source, r.Outcome)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d object(s) are not copied", failed, len(sources))
	}

	return nil
}

func configOf(vip *viper.Viper) s3copy.Config {
	cfg := s3copy.ConfigFor(vip.GetString(keyEndpoint))

	if region := vip.GetString(keyRegion); len(region) != 0 {
		cfg.Region = region
	}

	if profile := vip.GetString(keyProfile); len(profile) != 0 {
		cfg.Profile = profile
	}

	if len(cfg.Endpoint) == 0 {
		cfg.ConnectTimeout = vip.GetDuration(keyConnectTimeout)
		cfg.ReadTimeout = vip.GetDuration(keyReadTimeout)
		cfg.MaxAttempts = vip.GetInt(keyMaxAttempts)
	}

	return cfg
}

// sources either from the manifest file or from command line
func sourcesOf(manifest string, args []string) ([]string, string, error) {
	if len(manifest) == 0 {
		if len(args) != 2 {
			return nil, "", fmt.Errorf("expected SOURCE and DESTINATION, got %d argument(s)", len(args))
		}
		return []string{args[0]}, args[1], nil
	}

	if len(args) != 1 {
		return nil, "", fmt.Errorf("expected DESTINATION, got %d argument(s)", len(args))
	}

	fd, err := os.Open(manifest)
	if err != nil {
		return nil, "", err
	}
	defer fd.Close()

	sources, err := readManifest(fd)
	if err != nil {
		return nil, "", err
	}

	return sources, args[0], nil
}

// manifest lists source urls one per line, blank lines and # comments are skipped
func readManifest(r io.Reader) ([]string, error) {
	seq := make([]string, 0)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}
		seq = append(seq, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return seq, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339)
	cfg.OutputPaths = []string{"stderr"}

	return cfg.Build()
}
