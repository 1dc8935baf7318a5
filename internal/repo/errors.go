package repo

import (
	"context"
	"errors"

	"github.com/Skotchmaster/epicbeats/internal/logging"
)

// ErrRepository matches every *RepositoryError with errors.Is.
var ErrRepository = errors.New("repository failure")

// RepositoryError reports a failed store operation. The driver error is
// logged where it happens and is not carried to callers.
type RepositoryError struct {
	Op string
}

func (e *RepositoryError) Error() string {
	return "repository: " + e.Op
}

func (e *RepositoryError) Is(target error) bool {
	return target == ErrRepository
}

func fail(ctx context.Context, op string, err error) error {
	logging.FromContext(ctx).Error("repository_failed", "op", op, "error", err)
	return &RepositoryError{Op: op}
}
