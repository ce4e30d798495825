package memory

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
)

// Error kinds attached to every error returned by Store operations. Test for
// them with goerr.HasTag or the Is* helpers.
var (
	// ErrInvalidInput marks malformed caller input, detected before any
	// provider or database call.
	ErrInvalidInput = goerr.NewTag("invalid_input")
	// ErrEmbeddingUnavailable marks a failed embedding provider call.
	ErrEmbeddingUnavailable = goerr.NewTag("embedding_unavailable")
	// ErrStorage marks a failed database statement or an undecodable row.
	ErrStorage = goerr.NewTag("storage")
	// ErrCancelled marks an operation abandoned because its context ended.
	ErrCancelled = goerr.NewTag("cancelled")
)

// IsInvalidInput reports whether err carries ErrInvalidInput.
func IsInvalidInput(err error) bool { return goerr.HasTag(err, ErrInvalidInput) }

// IsEmbeddingUnavailable reports whether err carries ErrEmbeddingUnavailable.
func IsEmbeddingUnavailable(err error) bool { return goerr.HasTag(err, ErrEmbeddingUnavailable) }

// IsStorage reports whether err carries ErrStorage.
func IsStorage(err error) bool { return goerr.HasTag(err, ErrStorage) }

// IsCancelled reports whether err carries ErrCancelled.
func IsCancelled(err error) bool { return goerr.HasTag(err, ErrCancelled) }

// fail wraps err with msg and the given kind, unless the failure was caused by
// ctx ending, in which case the kind is ErrCancelled.
func fail(ctx context.Context, err error, kind goerr.Option, msg string, opts ...goerr.Option) error {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		kind = goerr.T(ErrCancelled)
	}
	return goerr.Wrap(err, msg, append(opts, kind)...)
}

// checkCtx reports a context that has already ended before any work started.
func checkCtx(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return goerr.Wrap(err, "operation cancelled", goerr.V("op", op), goerr.T(ErrCancelled))
	}
	return nil
}
