package s3cp_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/fogfish/it/v2"
	"github.com/fogfish/s3copy"
	"github.com/fogfish/s3copy/internal/mocks"
	"github.com/fogfish/s3copy/internal/s3cp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var desc = s3copy.CopyDescriptor{
	DestinationBucket: "my-source-bucket",
	SourceLocation:    "ccdi-validation/QL/file2.txt",
	DestinationKey:    "new_release/QL/file2.txt",
}

func s3CopyObject(calls *int, err error) mocks.CopyObject {
	return mocks.CopyObject{
		Mock: mocks.Mock[s3.CopyObjectOutput]{
			ExpectKey: desc.DestinationKey,
			ReturnErr: err,
		},
		Calls: calls,
	}
}

func newObserver() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestCopy(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		calls := 0
		store := s3cp.New(s3CopyObject(&calls, nil), nil, nil)

		status, err := store.Copy(context.Background(), desc, 1024)
		it.Then(t).Should(
			it.Nil(err),
			it.Equal(status, s3copy.Success),
			it.Equal(calls, 1),
		)
	})

	t.Run("SizeLimit", func(t *testing.T) {
		calls := 0
		logger, logs := newObserver()
		store := s3cp.New(s3CopyObject(&calls, nil), logger, nil)

		status, err := store.Copy(context.Background(), desc, s3copy.MaxCopySize)
		it.Then(t).Should(
			it.Nil(err),
			it.Equal(status, s3copy.Fail),
			it.Equal(calls, 0),
			it.Equal(logs.FilterMessage("object exceeds single copy size limit").Len(), 1),
		)

		entry := logs.All()[0].ContextMap()
		it.Then(t).Should(
			it.Equal(entry["size"], any(s3copy.MaxCopySize)),
			it.Equal(entry["size_human"], any("5.0 GiB")),
			it.Equal(entry["copy_source"], any(desc.SourceLocation)),
		)
	})

	t.Run("BelowSizeLimit", func(t *testing.T) {
		calls := 0
		store := s3cp.New(s3CopyObject(&calls, nil), nil, nil)

		status, err := store.Copy(context.Background(), desc, s3copy.MaxCopySize-1)
		it.Then(t).Should(
			it.Nil(err),
			it.Equal(status, s3copy.Success),
			it.Equal(calls, 1),
		)
	})

	t.Run("NoSuchKey", func(t *testing.T) {
		calls := 0
		logger, logs := newObserver()
		store := s3cp.New(
			s3CopyObject(&calls, &types.NoSuchKey{Message: aws.String("The specified key does not exist.")}),
			logger, nil,
		)

		status, err := store.Copy(context.Background(), desc, 1024)
		it.Then(t).Should(
			it.Nil(err),
			it.Equal(status, s3copy.Fail),
			it.Equal(logs.FilterMessage("source object not found").Len(), 1),
		)

		entry := logs.All()[0].ContextMap()
		it.Then(t).Should(
			it.Equal(entry["code"], any("NoSuchKey")),
			it.Equal(entry["message"], any("The specified key does not exist.")),
			it.Equal(entry["copy_source"], any(desc.SourceLocation)),
		)
	})

	t.Run("NoSuchBucket", func(t *testing.T) {
		calls := 0
		logger, logs := newObserver()
		store := s3cp.New(s3CopyObject(&calls, &types.NoSuchBucket{}), logger, nil)

		status, err := store.Copy(context.Background(), desc, 1024)
		it.Then(t).Should(
			it.Nil(err),
			it.Equal(status, s3copy.Fail),
			it.Equal(logs.FilterMessage("bucket not found").Len(), 1),
		)

		entry := logs.All()[0].ContextMap()
		it.Then(t).Should(
			it.Equal(entry["code"], any("NoSuchBucket")),
			it.Equal(entry["bucket"], any(desc.DestinationBucket)),
		)
	})

	t.Run("AccessDenied", func(t *testing.T) {
		calls := 0
		logger, logs := newObserver()
		store := s3cp.New(
			s3CopyObject(&calls, &smithy.GenericAPIError{Code: "AccessDenied", Message: "Access Denied"}),
			logger, nil,
		)

		status, err := store.Copy(context.Background(), desc, 1024)
		it.Then(t).Should(
			it.Nil(err),
			it.Equal(status, s3copy.Fail),
			it.Equal(logs.FilterMessage("copy object failed").Len(), 1),
		)

		entry := logs.All()[0].ContextMap()
		it.Then(t).Should(
			it.Equal(entry["code"], any("AccessDenied")),
			it.Equal(entry["message"], any("Access Denied")),
			it.Equal(entry["key"], any(desc.DestinationKey)),
		)
	})

	t.Run("Fault", func(t *testing.T) {
		calls := 0
		fault := errors.New("connection reset by peer")
		store := s3cp.New(s3CopyObject(&calls, fault), nil, nil)

		status, err := store.Copy(context.Background(), desc, 1024)
		it.Then(t).Should(
			it.Equal(status, s3copy.Fail),
			it.Equal(calls, 1),
		).ShouldNot(
			it.Nil(err),
		)
	})

	t.Run("EscapedCopySource", func(t *testing.T) {
		db := mocks.NewBucket(
			map[string]int64{"ccdi-validation/QL/a%2Fb 100%.csv": 1024},
			"my-source-bucket",
		)
		store := s3cp.New(db, nil, nil)

		status, err := store.Copy(context.Background(),
			s3copy.CopyDescriptor{
				DestinationBucket: "my-source-bucket",
				SourceLocation:    "ccdi-validation/QL/a%2Fb 100%.csv",
				DestinationKey:    "new_release/QL/a%2Fb 100%.csv",
			},
			1024,
		)
		it.Then(t).Should(
			it.Nil(err),
			it.Equal(status, s3copy.Success),
			it.Equal(db.Size("my-source-bucket/new_release/QL/a%2Fb 100%.csv"), int64(1024)),
		)
	})
}
