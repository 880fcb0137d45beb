// Package datasource defines the minimal contract for pipeline inputs.
package datasource

import (
	"context"
	"io"
)

// Source is anything the pipeline can open for reading: a local file today,
// an object-storage download tomorrow. Implementations must honor context
// cancellation at open time.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
