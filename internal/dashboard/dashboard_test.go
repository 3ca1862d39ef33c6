package dashboard

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/KaramelBytes/studentdash/internal/student"
	"github.com/KaramelBytes/studentdash/internal/table"
)

const studentsCSV = "student_id,name,class,comprehension,attention,focus,retention,assessment_score,engagement_time\n" +
	"1,Alice,A,80,70,60,90,85,40\n" +
	"2,Bob,B,60,50,40,70,65,30\n"

func quiet(string, ...any) {}

func newLoaded(t *testing.T) *Dashboard {
	t.Helper()
	p := filepath.Join(t.TempDir(), "studentdashboard.csv")
	if err := os.WriteFile(p, []byte(studentsCSV), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	d := New(Options{Source: p, Logf: quiet})
	if err := d.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return d
}

func TestLoad(t *testing.T) {
	d := newLoaded(t)
	if !d.Loaded() || d.Err() != nil {
		t.Fatalf("expected successful load, err=%v", d.Err())
	}
	if len(d.Records()) != 2 {
		t.Fatalf("records = %d", len(d.Records()))
	}
	if d.SourceName() != "studentdashboard.csv" {
		t.Fatalf("source name = %q", d.SourceName())
	}
	// second load is a no-op
	if err := d.Load(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
}

func TestLoad_FailureLeavesEmptySet(t *testing.T) {
	var logged []string
	d := New(Options{Source: filepath.Join(t.TempDir(), "missing.csv"), Logf: func(f string, a ...any) {
		logged = append(logged, f)
	}})
	if d.Loaded() {
		t.Fatalf("should not be loaded before Load")
	}
	if err := d.Load(context.Background()); err == nil {
		t.Fatalf("expected load error")
	}
	if len(d.Records()) != 0 {
		t.Fatalf("records should stay empty")
	}
	if len(logged) != 1 {
		t.Fatalf("expected one diagnostic, got %v", logged)
	}
	page := d.Build(UIState{})
	if page.Total != 0 || len(page.Rows) != 0 || !page.LoadFailed {
		t.Fatalf("unexpected page: total=%d rows=%d failed=%v", page.Total, len(page.Rows), page.LoadFailed)
	}
	var buf bytes.Buffer
	if err := Render(&buf, page); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "Data unavailable.") || strings.Contains(buf.String(), "missing.csv") {
		t.Fatalf("page should note the failure without the error detail")
	}
	for _, s := range page.Overview.Stats {
		if s.Mean != 0 {
			t.Fatalf("%s = %v, want 0", s.Field, s.Mean)
		}
	}
	if page.ProfileName != "Student" {
		t.Fatalf("profile name = %q", page.ProfileName)
	}
}

func TestLoadAsync(t *testing.T) {
	p := filepath.Join(t.TempDir(), "s.csv")
	if err := os.WriteFile(p, []byte(studentsCSV), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	d := New(Options{Source: p, Logf: quiet})
	d.LoadAsync(context.Background())
	<-d.Done()
	if len(d.Records()) != 2 {
		t.Fatalf("records = %d", len(d.Records()))
	}
}

func TestBuild(t *testing.T) {
	d := newLoaded(t)
	score := 68.0
	st := UIState{
		Table:     table.State{Search: "ali", SortKey: "assessment_score", SortOrder: table.Descending},
		Predicted: &score,
	}
	st.Inputs.Comprehension = "80"
	page := d.Build(st)
	if page.Title != "Student Dashboard" || page.Total != 2 {
		t.Fatalf("unexpected header: %q %d", page.Title, page.Total)
	}
	if page.Overview.Mean("comprehension") != 70 {
		t.Fatalf("avg comprehension = %v", page.Overview.Mean("comprehension"))
	}
	if len(page.Rows) != 1 || page.Rows[0][1] != "Alice" {
		t.Fatalf("rows = %v", page.Rows)
	}
	if page.Predicted != "68.00" {
		t.Fatalf("predicted = %q", page.Predicted)
	}
	if page.Inputs[0].Value != "80" || page.Inputs[4].Placeholder != "engagement time" {
		t.Fatalf("inputs = %+v", page.Inputs)
	}
	var found bool
	for _, h := range page.Headers {
		if h.Field == "assessment_score" {
			found = h.Indicator == "▼"
		} else if h.Indicator != "" {
			t.Fatalf("unexpected indicator on %s", h.Field)
		}
	}
	if !found {
		t.Fatalf("sorted column should show descending indicator")
	}
}

func TestRender(t *testing.T) {
	d := newLoaded(t)
	var buf bytes.Buffer
	if err := Render(&buf, d.Build(UIState{})); err != nil {
		t.Fatalf("render: %v", err)
	}
	html := buf.String()
	for _, want := range []string{
		"<h1>Student Dashboard</h1>",
		"Total Students: 2",
		"Avg Comprehension: 70.00",
		"Alice Profile (Radar Chart)",
		`href="/sort/student_id"`,
		"<td>Bob</td>",
		"Key Insights",
		"echarts.min.js",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("page missing %q", want)
		}
	}
	if strings.Contains(html, "Predicted Assessment Score") {
		t.Fatalf("no prediction before one is requested")
	}
}

func TestRender_EscapesRecordText(t *testing.T) {
	const hostile = "</script><script>alert(1)</script>"
	d := New(Options{Logf: quiet})
	d.SetRecords([]student.Record{{"name": hostile, "class": "<b>A</b>", "comprehension": "80"}})
	var buf bytes.Buffer
	if err := Render(&buf, d.Build(UIState{})); err != nil {
		t.Fatalf("render: %v", err)
	}
	html := buf.String()
	if strings.Contains(html, hostile) || strings.Contains(html, "<script>alert") || strings.Contains(html, "<b>A</b>") {
		t.Fatalf("record text rendered unescaped")
	}
	if !strings.Contains(html, "&lt;/script&gt;") {
		t.Fatalf("table cell should show the escaped name")
	}
}

func TestSessions(t *testing.T) {
	s := NewSessions()
	id := s.New()
	if _, ok := s.Get(id); !ok {
		t.Fatalf("new session missing")
	}
	st := s.Update(id, func(u UIState) UIState {
		u.Table = u.Table.Toggle("name")
		return u
	})
	if st.Table.SortKey != "name" {
		t.Fatalf("update not applied: %+v", st)
	}
	got, _ := s.Get(id)
	if got.Table.SortOrder != table.Ascending {
		t.Fatalf("stored state = %+v", got)
	}
	if _, ok := s.Get("nope"); ok {
		t.Fatalf("unknown session should not exist")
	}
	if s.Len() != 1 {
		t.Fatalf("len = %d", s.Len())
	}
}

func TestSetRecords(t *testing.T) {
	d := New(Options{Logf: quiet})
	d.SetRecords(nil)
	if !d.Loaded() || len(d.Records()) != 0 {
		t.Fatalf("SetRecords should finish the load")
	}
	if err := d.Load(context.Background()); err != nil {
		t.Fatalf("load after SetRecords: %v", err)
	}
}

func TestSessions_EvictsLeastRecentlySeen(t *testing.T) {
	s := NewBoundedSessions(3, time.Hour)
	clock := time.Unix(0, 0)
	s.now = func() time.Time { return clock }
	var ids []string
	for i := 0; i < 3; i++ {
		ids = append(ids, s.New())
		clock = clock.Add(time.Second)
	}
	// touch the oldest so the second becomes least recently seen
	if _, ok := s.Get(ids[0]); !ok {
		t.Fatalf("session 0 missing")
	}
	clock = clock.Add(time.Second)
	s.New()
	if s.Len() != 3 {
		t.Fatalf("len = %d, want 3", s.Len())
	}
	if _, ok := s.Get(ids[1]); ok {
		t.Fatalf("least recently seen session should be evicted")
	}
	if _, ok := s.Get(ids[0]); !ok {
		t.Fatalf("recently used session should survive")
	}
	for i := 0; i < 100; i++ {
		s.Update(fmt.Sprintf("visitor-%d", i), func(u UIState) UIState { return u })
	}
	if s.Len() != 3 {
		t.Fatalf("len after updates = %d, want 3", s.Len())
	}
}

func TestSessions_ExpireAfterTTL(t *testing.T) {
	s := NewBoundedSessions(10, time.Minute)
	clock := time.Unix(0, 0)
	s.now = func() time.Time { return clock }
	id := s.New()
	clock = clock.Add(30 * time.Second)
	if _, ok := s.Get(id); !ok {
		t.Fatalf("session should be live within the TTL")
	}
	clock = clock.Add(2 * time.Minute)
	if _, ok := s.Get(id); ok {
		t.Fatalf("idle session should expire")
	}
	if s.Len() != 0 {
		t.Fatalf("expired session should be removed, len = %d", s.Len())
	}
}
