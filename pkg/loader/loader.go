// pkg/loader/loader.go
package loader

import (
	"context"

	"github.com/matthew-brett/airquality/pkg/table"
)

// Source produces the table the pipeline cleans. The pipeline consumes only
// the table abstraction; how the underlying spreadsheet is parsed is the
// source's business.
type Source interface {
	// Load reads the source once and returns its contents as a table.
	Load(ctx context.Context) (*table.Table, error)

	// Close releases any resources held by the source.
	Close() error
}
