package dashboard

import (
	"context"
	"log"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/KaramelBytes/studentdash/internal/charts"
	"github.com/KaramelBytes/studentdash/internal/parser"
	"github.com/KaramelBytes/studentdash/internal/student"
)

// Options configures a Dashboard.
type Options struct {
	Title  string
	Source string
	Parse  parser.Options
	Charts charts.Options
	// Logf receives load diagnostics; defaults to log.Printf.
	Logf func(format string, args ...any)
	// MaxSessions and SessionTTL bound the visitor session store; zero
	// selects DefaultMaxSessions and DefaultSessionTTL.
	MaxSessions int
	SessionTTL  time.Duration
}

// Dashboard owns the record set loaded once per process and derives every
// page value from it on demand.
type Dashboard struct {
	opt      Options
	records  atomic.Pointer[[]student.Record]
	loadOnce sync.Once
	done     chan struct{}
	err      error
	Sessions *Sessions
}

// New returns a dashboard with an empty record set.
func New(opt Options) *Dashboard {
	if opt.Title == "" {
		opt.Title = "Student Dashboard"
	}
	if opt.Logf == nil {
		opt.Logf = log.Printf
	}
	if opt.Charts == (charts.Options{}) {
		opt.Charts = charts.DefaultOptions()
	}
	d := &Dashboard{opt: opt, done: make(chan struct{}), Sessions: NewBoundedSessions(opt.MaxSessions, opt.SessionTTL)}
	empty := []student.Record{}
	d.records.Store(&empty)
	return d
}

// Load fetches and parses the source once. A failure is logged and leaves
// the record set empty; later calls return the first result.
func (d *Dashboard) Load(ctx context.Context) error {
	d.loadOnce.Do(func() {
		defer close(d.done)
		recs, err := parser.Load(ctx, d.opt.Source, d.opt.Parse)
		if err != nil {
			d.err = err
			d.opt.Logf("load students from %s: %v", d.opt.Source, err)
			return
		}
		d.records.Store(&recs)
		d.opt.Logf("loaded %d students from %s", len(recs), d.opt.Source)
	})
	<-d.done
	return d.err
}

// LoadAsync starts Load in the background and returns immediately.
func (d *Dashboard) LoadAsync(ctx context.Context) {
	go func() { _ = d.Load(ctx) }()
}

// SetRecords replaces the record set and marks the load as finished.
func (d *Dashboard) SetRecords(recs []student.Record) {
	d.loadOnce.Do(func() { close(d.done) })
	d.records.Store(&recs)
}

// Done is closed once the load attempt has finished.
func (d *Dashboard) Done() <-chan struct{} { return d.done }

// Loaded reports whether the load attempt has finished.
func (d *Dashboard) Loaded() bool {
	select {
	case <-d.done:
		return true
	default:
		return false
	}
}

// Err returns the load error, if any. It is only meaningful once Loaded.
func (d *Dashboard) Err() error {
	if !d.Loaded() {
		return nil
	}
	return d.err
}

// Records returns the current record set. Callers must not modify it.
func (d *Dashboard) Records() []student.Record {
	return *d.records.Load()
}

// Source returns the configured data location.
func (d *Dashboard) Source() string { return d.opt.Source }

// SourceName is the base name of the data location.
func (d *Dashboard) SourceName() string { return filepath.Base(d.opt.Source) }
