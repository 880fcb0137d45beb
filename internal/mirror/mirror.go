// Package mirror uploads the local partitioned output tree to an object
// storage bucket. It performs no transformation: every file under the root
// is uploaded with its path relative to that root as the object key, so the
// partition layout is preserved exactly.
package mirror

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"golang.org/x/sync/errgroup"
)

// uploader is the slice of s3manager.Uploader the mirror needs. Tests
// substitute a recording fake.
type uploader interface {
	UploadWithContext(ctx aws.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

// Mirror uploads a directory tree to one bucket under an optional key
// prefix.
type Mirror struct {
	Bucket string
	Prefix string

	// Concurrency bounds the number of parallel uploads. Zero means 8.
	Concurrency int

	up uploader
}

// New builds a Mirror backed by an s3manager uploader on the given session.
// Credentials and region are resolved by the session (env, shared config);
// the mirror has no interface into how they were obtained.
func New(sess *session.Session, bucket, prefix string) *Mirror {
	return &Mirror{Bucket: bucket, Prefix: prefix, up: s3manager.NewUploader(sess)}
}

// Upload walks root recursively and uploads every regular file. It returns
// the number of files uploaded. The first failed upload cancels the
// remaining ones and is returned; completed uploads are left in place.
func (m *Mirror) Upload(ctx context.Context, root string) (int, error) {
	if m.up == nil {
		return 0, fmt.Errorf("mirror: no uploader configured")
	}

	g, ctx := errgroup.WithContext(ctx)
	limit := m.Concurrency
	if limit <= 0 {
		limit = 8
	}
	g.SetLimit(limit)

	count := 0
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		key := m.Key(rel)
		count++
		g.Go(func() error {
			return m.uploadOne(ctx, p, key)
		})
		return nil
	})
	if werr := g.Wait(); werr != nil && err == nil {
		err = werr
	}
	if err != nil {
		return 0, fmt.Errorf("mirror: upload %s: %w", root, err)
	}
	log.Printf("mirror: uploaded %d files to s3://%s/%s", count, m.Bucket, m.Prefix)
	return count, nil
}

// Key maps a root-relative file path to its object key: the configured
// prefix joined with the slash-form of the relative path, preserved exactly.
func (m *Mirror) Key(rel string) string {
	return path.Join(m.Prefix, filepath.ToSlash(rel))
}

func (m *Mirror) uploadOne(ctx context.Context, p, key string) error {
	f, err := os.Open(p)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = m.up.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(m.Bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}
