package execution

import (
	"context"
	"time"

	"pyformat/internal/domain"
)

// Executor runs probes and returns their results in input order
type Executor interface {
	Execute(ctx context.Context, probes []domain.Probe) ([]domain.ProbeResult, time.Duration, error)
}
