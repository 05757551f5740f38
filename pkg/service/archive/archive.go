package archive

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/standup-lab/cadence/pkg/domain/model"
)

// Service persists generated report text for audit. Reports remain
// ephemeral for the service itself; the archive is write-only.
type Service interface {
	Store(ctx context.Context, report *model.Report, text string) error
	Close() error
}

// client archives reports as plain-text objects in a GCS bucket
type client struct {
	gcs    *storage.Client
	bucket string
	prefix string
}

// Option is a functional option for client configuration
type Option func(*client)

// WithPrefix sets an object-name prefix inside the bucket
func WithPrefix(prefix string) Option {
	return func(c *client) {
		c.prefix = prefix
	}
}

// New creates a GCS-backed report archive
func New(ctx context.Context, bucket string, opts ...Option) (Service, error) {
	if bucket == "" {
		return nil, goerr.New("archive bucket is required")
	}

	gcs, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}

	c := &client{
		gcs:    gcs,
		bucket: bucket,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *client) objectName(report *model.Report) string {
	return fmt.Sprintf("%sreports/%s/%s.txt",
		c.prefix, report.Period, report.GeneratedAt.UTC().Format("20060102T150405Z"))
}

func (c *client) Store(ctx context.Context, report *model.Report, text string) error {
	name := c.objectName(report)
	w := c.gcs.Bucket(c.bucket).Object(name).NewWriter(ctx)
	w.ContentType = "text/plain; charset=utf-8"

	if _, err := w.Write([]byte(text)); err != nil {
		_ = w.Close()
		return goerr.Wrap(err, "failed to write report object", goerr.V("object", name))
	}
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to finalize report object", goerr.V("object", name))
	}

	return nil
}

func (c *client) Close() error {
	return c.gcs.Close()
}
