package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/KaramelBytes/studentdash/internal/parser"
	"github.com/KaramelBytes/studentdash/internal/student"
)

func parseOptions() parser.Options {
	opt := parser.DefaultOptions()
	opt.Delimiter = cfg.DelimiterRune()
	if cfg.HTTPTimeoutSec > 0 {
		opt.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSec) * time.Second
	}
	return opt
}

// loadStudents reads the configured data source. With allowEmpty a load
// failure is reported as a warning and an empty set is returned.
func loadStudents(ctx context.Context, allowEmpty bool) ([]student.Record, error) {
	if _, err := ensureConfig(); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	debugf("loading students from %s", cfg.DataSource)
	recs, err := parser.Load(ctx, cfg.DataSource, parseOptions())
	if err != nil {
		if allowEmpty {
			warnf("load students: %v", err)
			return []student.Record{}, nil
		}
		return nil, fmt.Errorf("load students: %w", err)
	}
	debugf("loaded %d students", len(recs))
	return recs, nil
}
