package immigration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"

	"i94etl/internal/schema"
)

// snapshotBatch is the number of rows pulled per parquet read call. Keeps
// peak allocation bounded for month-scale snapshot files.
const snapshotBatch = 64 * 1024

// ReadSnapshot loads the raw fact snapshot from path, which may be a single
// parquet file or a directory of them (non-parquet entries are ignored).
// Files are read in lexical order so reruns see the rows in a stable order.
//
// A file whose schema does not match schema.RawImmigration fails the read;
// the run aborts rather than silently coercing.
func ReadSnapshot(ctx context.Context, path string) ([]schema.RawImmigration, error) {
	files, err := snapshotFiles(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("immigration: no parquet files under %s", path)
	}

	var out []schema.RawImmigration
	for _, f := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		rows, err := readFile(f)
		if err != nil {
			return nil, err
		}
		out = append(out, rows...)
	}
	return out, nil
}

func snapshotFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("immigration: stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(p, ".parquet") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("immigration: walk %s: %w", path, err)
	}
	sort.Strings(files)
	return files, nil
}

func readFile(path string) ([]schema.RawImmigration, error) {
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, fmt.Errorf("immigration: open %s: %w", path, err)
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(schema.RawImmigration), 4)
	if err != nil {
		return nil, fmt.Errorf("immigration: read %s: %w", path, err)
	}
	defer pr.ReadStop()

	total := int(pr.GetNumRows())
	out := make([]schema.RawImmigration, 0, total)
	for len(out) < total {
		n := snapshotBatch
		if rem := total - len(out); rem < n {
			n = rem
		}
		batch := make([]schema.RawImmigration, n)
		if err := pr.Read(&batch); err != nil {
			return nil, fmt.Errorf("immigration: read %s: %w", path, err)
		}
		out = append(out, batch...)
	}
	return out, nil
}
