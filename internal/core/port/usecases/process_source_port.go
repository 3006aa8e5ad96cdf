package usecases_port

import (
	"context"
)

// ProcessSourcePort - входящий порт одного pipeline-цикла:
// fetch -> novelty filter -> side effects -> mark seen.
type ProcessSourcePort interface {
	Execute(ctx context.Context) error
}
