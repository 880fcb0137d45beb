package mirror

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// fakeUploader records the keys it was asked to upload.
type fakeUploader struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (f *fakeUploader) UploadWithContext(_ aws.Context, in *s3manager.UploadInput, _ ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.keys = append(f.keys, aws.StringValue(in.Key))
	return &s3manager.UploadOutput{}, nil
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	return root
}

func TestUploadPreservesRelativePaths(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"events/year=2016/part-00000.parquet": "a",
		"events/year=2017/part-00000.parquet": "b",
		"countries/part-00000.parquet":        "c",
	})

	fake := &fakeUploader{}
	m := &Mirror{Bucket: "warehouse", Prefix: "i94", up: fake}
	n, err := m.Upload(context.Background(), root)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if n != 3 {
		t.Fatalf("uploaded = %d, want 3", n)
	}

	sort.Strings(fake.keys)
	want := []string{
		"i94/countries/part-00000.parquet",
		"i94/events/year=2016/part-00000.parquet",
		"i94/events/year=2017/part-00000.parquet",
	}
	for i := range want {
		if fake.keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", fake.keys, want)
		}
	}
}

func TestUploadNoPrefix(t *testing.T) {
	t.Parallel()

	m := &Mirror{Bucket: "warehouse"}
	if got := m.Key("a/b.parquet"); got != "a/b.parquet" {
		t.Fatalf("key = %q, want a/b.parquet", got)
	}
}

func TestUploadFailureSurfaces(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{"x/part-00000.parquet": "a"})
	fake := &fakeUploader{err: os.ErrPermission}
	m := &Mirror{Bucket: "warehouse", up: fake}
	if _, err := m.Upload(context.Background(), root); err == nil {
		t.Fatal("expected upload error")
	}
}

func TestUploadWithoutUploader(t *testing.T) {
	t.Parallel()

	m := &Mirror{Bucket: "warehouse"}
	if _, err := m.Upload(context.Background(), t.TempDir()); err == nil {
		t.Fatal("expected error for missing uploader")
	}
}
