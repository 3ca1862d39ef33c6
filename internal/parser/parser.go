package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/KaramelBytes/studentdash/internal/student"
)

// Source opens a CSV resource for reading.
type Source interface {
	CanOpen(location string) bool
	Open(ctx context.Context, location string, opt Options) (io.ReadCloser, error)
}

var registry []Source

// Register adds a source implementation to the registry. Later registrations
// are consulted first.
func Register(s Source) {
	registry = append([]Source{s}, registry...)
}

// Options controls how a CSV resource is loaded and parsed.
type Options struct {
	// Delimiter for CSV fields. If 0, ',' is used.
	Delimiter rune
	// HTTPTimeout bounds remote fetches; 0 means no limit.
	HTTPTimeout time.Duration
}

// DefaultOptions returns the defaults for the student CSV.
func DefaultOptions() Options {
	return Options{Delimiter: ','}
}

// Load opens location with the first source that accepts it and parses the
// CSV into records. There is exactly one attempt; failures are returned as is.
func Load(ctx context.Context, location string, opt Options) ([]student.Record, error) {
	if location == "" {
		return nil, ErrNoSource
	}
	for _, s := range registry {
		if !s.CanOpen(location) {
			continue
		}
		rc, err := s.Open(ctx, location, opt)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return Parse(rc, opt)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, location)
}

// ParseFile parses a CSV file on disk.
func ParseFile(path string) ([]student.Record, error) {
	return Load(context.Background(), path, DefaultOptions())
}

func init() {
	Register(fileSource{})
	Register(httpSource{})
}

var (
	// ErrUnsupported indicates no registered source accepts the location.
	ErrUnsupported = errors.New("unsupported data source")
	// ErrNoSource indicates an empty data source location.
	ErrNoSource = errors.New("no data source configured")
)
