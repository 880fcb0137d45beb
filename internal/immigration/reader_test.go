package immigration

import (
	"context"
	"path/filepath"
	"testing"

	"i94etl/internal/export"
	"i94etl/internal/schema"
)

// writeSnapshot writes rows as a one-file parquet dataset and returns the
// dataset directory.
func writeSnapshot(t *testing.T, rows []schema.RawImmigration) string {
	t.Helper()
	root := t.TempDir()
	if err := export.Write(export.Writer{Root: root}, "snapshot", rows, nil); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	return filepath.Join(root, "snapshot")
}

func TestReadSnapshotDirectory(t *testing.T) {
	t.Parallel()

	dir := writeSnapshot(t, []schema.RawImmigration{
		{CICID: f(1), I94Yr: f(2016), I94Mon: f(4), I94Port: s("ATL"), ArrDate: f(20566)},
		{CICID: f(2), I94Yr: f(2016), I94Mon: f(4), Gender: s("F")},
	})

	got, err := ReadSnapshot(context.Background(), dir)
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	if got[0].CICID == nil || *got[0].CICID != 1 {
		t.Errorf("row 0 cicid = %v, want 1", got[0].CICID)
	}
	if got[0].I94Port == nil || *got[0].I94Port != "ATL" {
		t.Errorf("row 0 i94port = %v, want ATL", got[0].I94Port)
	}
	if got[0].ArrDate == nil || *got[0].ArrDate != 20566 {
		t.Errorf("row 0 arrdate = %v, want 20566", got[0].ArrDate)
	}
	if got[1].I94Port != nil {
		t.Errorf("row 1 i94port = %q, want nil", *got[1].I94Port)
	}
	if got[1].Gender == nil || *got[1].Gender != "F" {
		t.Errorf("row 1 gender = %v, want F", got[1].Gender)
	}
}

func TestReadSnapshotSingleFile(t *testing.T) {
	t.Parallel()

	dir := writeSnapshot(t, []schema.RawImmigration{
		{CICID: f(7), VisaType: s("B2")},
	})

	got, err := ReadSnapshot(context.Background(), filepath.Join(dir, "part-00000.parquet"))
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d rows, want 1", len(got))
	}
	if got[0].VisaType == nil || *got[0].VisaType != "B2" {
		t.Errorf("visatype = %v, want B2", got[0].VisaType)
	}
}

func TestReadSnapshotNoParquetFiles(t *testing.T) {
	t.Parallel()

	if _, err := ReadSnapshot(context.Background(), t.TempDir()); err == nil {
		t.Fatal("expected error for directory without parquet files")
	}
}

func TestReadSnapshotMissingPath(t *testing.T) {
	t.Parallel()

	if _, err := ReadSnapshot(context.Background(), filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestReadSnapshotCanceledContext(t *testing.T) {
	t.Parallel()

	dir := writeSnapshot(t, []schema.RawImmigration{{CICID: f(1)}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ReadSnapshot(ctx, dir); err == nil {
		t.Fatal("expected error for canceled context")
	}
}
