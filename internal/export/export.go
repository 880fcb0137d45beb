// Package export persists cleaned datasets as partitioned parquet trees.
// Each dataset is written under its own logical name as
//
//	<root>/<name>/<col>=<value>/.../part-00000.parquet
//
// with partition directories nested in the declared column order. Every
// write is a full refresh: the dataset directory is removed first, so a run
// is idempotent and a rerun replaces stale partitions instead of merging
// into them.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

// NullPartition is the directory value used when a partition column is
// empty or nil for a row.
const NullPartition = "__null__"

// Writer writes datasets under a single output root.
type Writer struct {
	Root string

	// RowGroupParallel is passed to the parquet writer. Zero means 4.
	RowGroupParallel int64
}

// Write persists rows as the named dataset, partitioned by the given ordered
// columns (parquet column names). An empty partitionBy writes a single
// unpartitioned file. Partition columns that do not exist in T's schema are
// an error before anything is removed or written.
func Write[T any](w Writer, name string, rows []T, partitionBy []string) error {
	fields, err := partitionFields[T](partitionBy)
	if err != nil {
		return fmt.Errorf("export %s: %w", name, err)
	}

	dir := filepath.Join(w.Root, name)
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("export %s: clear previous output: %w", name, err)
	}

	groups := make(map[string][]T)
	for _, row := range rows {
		key := partitionPath(reflect.ValueOf(row), fields, partitionBy)
		groups[key] = append(groups[key], row)
	}

	// Stable write order keeps logs and failures reproducible.
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		partDir := filepath.Join(dir, filepath.FromSlash(key))
		if err := os.MkdirAll(partDir, 0o755); err != nil {
			return fmt.Errorf("export %s: %w", name, err)
		}
		if err := writeFile(filepath.Join(partDir, "part-00000.parquet"), groups[key], w.RowGroupParallel); err != nil {
			return fmt.Errorf("export %s: %w", name, err)
		}
	}
	return nil
}

// writeFile writes one parquet file for a single partition.
func writeFile[T any](path string, rows []T, parallel int64) error {
	if parallel <= 0 {
		parallel = 4
	}
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	pw, err := writer.NewParquetWriter(fw, new(T), parallel)
	if err != nil {
		fw.Close()
		return fmt.Errorf("parquet writer %s: %w", path, err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for i := range rows {
		if err := pw.Write(rows[i]); err != nil {
			pw.WriteStop()
			fw.Close()
			return fmt.Errorf("write %s row %d: %w", path, i, err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return fmt.Errorf("finalize %s: %w", path, err)
	}
	return fw.Close()
}

// partitionFields resolves partition column names to struct field indexes by
// their parquet name= tags.
func partitionFields[T any](partitionBy []string) ([]int, error) {
	t := reflect.TypeOf(*new(T))
	byName := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if name := parquetName(t.Field(i).Tag.Get("parquet")); name != "" {
			byName[name] = i
		}
	}
	fields := make([]int, 0, len(partitionBy))
	for _, col := range partitionBy {
		idx, ok := byName[col]
		if !ok {
			return nil, fmt.Errorf("no column %q in record schema", col)
		}
		fields = append(fields, idx)
	}
	return fields, nil
}

// parquetName extracts the name= component of a parquet struct tag.
func parquetName(tag string) string {
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		if v, ok := strings.CutPrefix(part, "name="); ok {
			return v
		}
	}
	return ""
}

// partitionPath renders the nested <col>=<value> path for one row, using
// forward slashes; callers convert to the platform separator.
func partitionPath(row reflect.Value, fields []int, partitionBy []string) string {
	if len(fields) == 0 {
		return "."
	}
	parts := make([]string, 0, len(fields))
	for i, idx := range fields {
		parts = append(parts, partitionBy[i]+"="+partitionValue(row.Field(idx)))
	}
	return strings.Join(parts, "/")
}

// partitionValue stringifies one partition column value. Nil pointers and
// empty strings map to NullPartition; path separators are replaced so a
// value cannot escape its partition directory.
func partitionValue(v reflect.Value) string {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return NullPartition
		}
		v = v.Elem()
	}
	s := fmt.Sprint(v.Interface())
	if s == "" {
		return NullPartition
	}
	s = strings.NewReplacer("/", "_", string(filepath.Separator), "_").Replace(s)
	return s
}
