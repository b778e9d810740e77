// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package engine

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/stellarlog/internal/catalog"
	"github.com/tomtom215/stellarlog/internal/graph"
	"github.com/tomtom215/stellarlog/internal/insights"
	"github.com/tomtom215/stellarlog/internal/models"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func testRecords() []models.CatalogRecord {
	return []models.CatalogRecord{
		{
			ID: "b1", Title: "Foundation", Author: "Isaac Asimov",
			Tags:                []string{"empire", "psychohistory"},
			TemporalContextTags: []string{"Golden Age"},
			CreatedAt:           fixedNow.AddDate(0, -1, 0),
		},
		{
			ID: "b2", Title: "I, Robot", Author: "Isaac Asimov",
			Tags:                []string{"robots", "empire"},
			TemporalContextTags: []string{"Golden Age"},
			CreatedAt:           fixedNow.AddDate(0, -2, 0),
		},
		{
			ID: "b3", Title: "Neuromancer", Author: "William Gibson",
			Tags:                  []string{"cyberspace", "empire"},
			HistoricalContextTags: []string{"Cyberpunk Era"},
			CreatedAt:             fixedNow.AddDate(0, 0, -3),
			Protagonist:           "Case",
		},
	}
}

func newTestEngine(opts Options) *Engine {
	if opts.Clock == nil {
		opts.Clock = func() time.Time { return fixedNow }
	}
	return New(opts)
}

func authorEntity(t *testing.T, g *GraphResult, name string) graph.Entity {
	t.Helper()
	ent, ok := g.Entity(graph.AuthorEntityID(name))
	if !ok {
		t.Fatalf("author entity %q not found", name)
	}
	return ent
}

func TestEngine_NoSnapshot(t *testing.T) {
	e := newTestEngine(Options{})

	if _, _, err := e.Graph(context.Background()); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("Graph() error = %v, want ErrNoSnapshot", err)
	}
	if _, err := e.Status(); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("Status() error = %v, want ErrNoSnapshot", err)
	}
	if _, _, err := e.Rebuild(context.Background()); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("Rebuild() error = %v, want ErrNoSnapshot", err)
	}
}

func TestEngine_GraphIsMemoized(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(Options{})
	if err := e.ApplyRecords(ctx, testRecords(), nil); err != nil {
		t.Fatalf("ApplyRecords() error = %v", err)
	}

	first, meta, err := e.Graph(ctx)
	if err != nil {
		t.Fatalf("Graph() error = %v", err)
	}
	if meta.Cached {
		t.Error("first Graph() reported cached")
	}
	if meta.Version == "" {
		t.Error("Meta.Version is empty")
	}
	if first.Stats.Books != 3 || first.Stats.Authors != 2 || first.Stats.Protagonists != 1 {
		t.Errorf("Stats = %+v, want 3 books, 2 authors, 1 protagonist", first.Stats)
	}
	if _, ok := first.Index.EdgeData("b1", "b2"); !ok {
		t.Error("expected same-author edge between b1 and b2")
	}

	second, meta, err := e.Graph(ctx)
	if err != nil {
		t.Fatalf("Graph() error = %v", err)
	}
	if !meta.Cached {
		t.Error("second Graph() was not cached")
	}
	if first != second {
		t.Error("second Graph() returned a different result")
	}
}

func TestEngine_SameContentKeepsVersion(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(Options{})
	_ = e.ApplyRecords(ctx, testRecords(), nil)
	first, _, _ := e.Graph(ctx)

	snap, _ := e.Snapshot()
	if e.SetSnapshot(NewSnapshot(testRecords(), nil, fixedNow.Add(time.Hour))) {
		t.Error("SetSnapshot() with identical content reported a change")
	}
	again, _ := e.Snapshot()
	if again.Version() != snap.Version() {
		t.Errorf("Version() = %s, want %s", again.Version(), snap.Version())
	}

	second, meta, _ := e.Graph(ctx)
	if !meta.Cached || first != second {
		t.Error("identical snapshot did not reuse the memoized graph")
	}
}

func TestEngine_NewSnapshotMisses(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(Options{})
	_ = e.ApplyRecords(ctx, testRecords(), nil)
	_, before, _ := e.Graph(ctx)

	records := testRecords()[:2]
	_ = e.ApplyRecords(ctx, records, nil)

	g, after, err := e.Graph(ctx)
	if err != nil {
		t.Fatalf("Graph() error = %v", err)
	}
	if after.Version == before.Version {
		t.Error("version did not change with new records")
	}
	if after.Cached {
		t.Error("graph of new snapshot reported cached")
	}
	if g.Stats.Books != 2 {
		t.Errorf("Stats.Books = %d, want 2", g.Stats.Books)
	}
}

func TestSnapshot_VersionDeterministic(t *testing.T) {
	profiles := map[string]models.AuthorProfile{
		"isaac asimov":   {ID: "a1", Name: "Isaac Asimov"},
		"william gibson": {ID: "a2", Name: "William Gibson"},
	}
	a := NewSnapshot(testRecords(), profiles, fixedNow)
	b := NewSnapshot(testRecords(), profiles, fixedNow.Add(time.Minute))
	if a.Version() != b.Version() {
		t.Errorf("versions differ for equal content: %s vs %s", a.Version(), b.Version())
	}
	c := NewSnapshot(testRecords(), nil, fixedNow)
	if a.Version() == c.Version() {
		t.Error("profiles did not affect the version")
	}
	if len(NewSnapshot(nil, nil, fixedNow).Records) != 0 {
		t.Error("nil records not normalized")
	}
}

func TestEngine_DirectoryDecoratesAuthors(t *testing.T) {
	ctx := context.Background()
	dir := catalog.NewMemoryDirectory(models.AuthorProfile{ID: "dir-asimov", Name: "isaac asimov", Bio: "Prolific"})
	e := newTestEngine(Options{Directory: dir})

	inline := []models.AuthorProfile{{ID: "inline-gibson", Name: "William Gibson"}}
	if err := e.ApplyRecords(ctx, testRecords(), inline); err != nil {
		t.Fatalf("ApplyRecords() error = %v", err)
	}

	g, _, err := e.Graph(ctx)
	if err != nil {
		t.Fatalf("Graph() error = %v", err)
	}

	asimov := authorEntity(t, g, "Isaac Asimov")
	if asimov.Writer == nil || asimov.Writer.Profile == nil || asimov.Writer.Profile.ID != "dir-asimov" {
		t.Errorf("Asimov profile = %+v, want directory profile", asimov.Writer)
	}
	gibson := authorEntity(t, g, "William Gibson")
	if gibson.Writer == nil || gibson.Writer.Profile == nil || gibson.Writer.Profile.ID != "inline-gibson" {
		t.Errorf("Gibson profile = %+v, want inline profile", gibson.Writer)
	}
}

func TestEngine_InlineWinsOverDirectory(t *testing.T) {
	ctx := context.Background()
	dir := catalog.NewMemoryDirectory(models.AuthorProfile{ID: "dir", Name: "Isaac Asimov"})
	e := newTestEngine(Options{Directory: dir})
	_ = e.ApplyRecords(ctx, testRecords(), []models.AuthorProfile{{ID: "inline", Name: "ISAAC ASIMOV"}})

	g, _, _ := e.Graph(ctx)
	if got := authorEntity(t, g, "Isaac Asimov").Writer.Profile.ID; got != "inline" {
		t.Errorf("profile ID = %q, want inline", got)
	}
}

type brokenDirectory struct{}

func (brokenDirectory) Lookup(context.Context, []string) (map[string]models.AuthorProfile, error) {
	return nil, errors.New("directory offline")
}

func TestEngine_DirectoryFailureIsSoft(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(Options{Directory: brokenDirectory{}})
	if err := e.ApplyRecords(ctx, testRecords(), nil); err != nil {
		t.Fatalf("ApplyRecords() error = %v, want nil", err)
	}

	g, _, err := e.Graph(ctx)
	if err != nil {
		t.Fatalf("Graph() error = %v", err)
	}
	if p := authorEntity(t, g, "Isaac Asimov").Writer.Profile; p != nil {
		t.Errorf("Profile = %+v, want nil", p)
	}
}

func TestEngine_InvalidateAndRebuild(t *testing.T) {
	ctx := context.Background()
	dir := catalog.NewMemoryDirectory()
	e := newTestEngine(Options{Directory: dir})
	_ = e.ApplyRecords(ctx, testRecords(), nil)
	_, _, _ = e.Graph(ctx)

	e.Invalidate()
	if _, meta, _ := e.Graph(ctx); meta.Cached {
		t.Error("Graph() after Invalidate() reported cached")
	}

	_ = dir.Put(ctx, models.AuthorProfile{ID: "late", Name: "William Gibson"})
	g, meta, err := e.Rebuild(ctx)
	if err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if meta.Cached {
		t.Error("Rebuild() returned a cached graph")
	}
	if p := authorEntity(t, g, "William Gibson").Writer.Profile; p == nil || p.ID != "late" {
		t.Errorf("Profile = %+v, want directory profile added after load", p)
	}
}

func TestEngine_ConcurrentMissesShareResult(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(Options{})
	_ = e.ApplyRecords(ctx, testRecords(), nil)

	const workers = 16
	results := make([]*GraphResult, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			g, _, err := e.Graph(ctx)
			if err != nil {
				t.Errorf("Graph() error = %v", err)
				return
			}
			results[i] = g
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		if results[i] != results[0] {
			t.Fatalf("worker %d got a different graph instance", i)
		}
	}
}

func TestEngine_VelocityKeyedPerHour(t *testing.T) {
	ctx := context.Background()
	now := fixedNow.Add(5 * time.Minute)
	e := newTestEngine(Options{Clock: func() time.Time { return now }})
	_ = e.ApplyRecords(ctx, testRecords(), nil)

	first, meta, err := e.Velocity(ctx)
	if err != nil || meta.Cached {
		t.Fatalf("Velocity() cached=%v err=%v, want fresh result", meta.Cached, err)
	}

	now = fixedNow.Add(55 * time.Minute)
	if _, meta, _ := e.Velocity(ctx); !meta.Cached {
		t.Error("Velocity() later in the same hour was not cached")
	}

	// A fresh engine queried late in the hour computes the same window.
	late := fixedNow.Add(55 * time.Minute)
	other := newTestEngine(Options{Clock: func() time.Time { return late }})
	_ = other.ApplyRecords(ctx, testRecords(), nil)
	second, _, err := other.Velocity(ctx)
	if err != nil {
		t.Fatalf("Velocity() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Velocity() within one hour differs:\n%+v\n%+v", first, second)
	}

	now = fixedNow.Add(time.Hour)
	if _, meta, _ := e.Velocity(ctx); meta.Cached {
		t.Error("Velocity() in the next hour was cached")
	}
}

func TestEngine_Insights(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(Options{})
	_ = e.ApplyRecords(ctx, testRecords(), nil)

	thematic, _, err := e.Clusters(ctx, insights.ClusterThematic)
	if err != nil {
		t.Fatalf("Clusters(thematic) error = %v", err)
	}
	found := false
	for _, c := range thematic {
		if c.Theme == "empire" && len(c.Books) == 3 {
			found = true
		}
	}
	if !found {
		t.Errorf("thematic clusters = %+v, want an empire cluster of 3", thematic)
	}

	if _, _, err := e.Clusters(ctx, insights.ClusterTemporal); err != nil {
		t.Errorf("Clusters(temporal) error = %v", err)
	}
	if _, _, err := e.Clusters(ctx, "spatial"); err == nil {
		t.Error("Clusters(spatial) error = nil, want error")
	}

	conceptual, _, err := e.Bridges(ctx, insights.BridgeScopeConceptual)
	if err != nil || conceptual == nil {
		t.Errorf("Bridges(conceptual) = %v, %v", conceptual, err)
	}
	temporal, _, err := e.Bridges(ctx, insights.BridgeScopeTemporal)
	if err != nil || temporal == nil {
		t.Errorf("Bridges(temporal) = %v, %v", temporal, err)
	}
	all, _, err := e.Bridges(ctx, insights.BridgeScopeAll)
	if err != nil {
		t.Fatalf("Bridges(all) error = %v", err)
	}
	if len(all) != len(conceptual)+len(temporal) {
		t.Errorf("Bridges(all) = %d bridges, want %d conceptual + %d temporal", len(all), len(conceptual), len(temporal))
	}
	if _, _, err := e.Bridges(ctx, "spatial"); err == nil {
		t.Error("Bridges(spatial) error = nil, want error")
	}
	if _, _, err := e.Influence(ctx); err != nil {
		t.Errorf("Influence() error = %v", err)
	}
	if _, _, err := e.Evolution(ctx); err != nil {
		t.Errorf("Evolution() error = %v", err)
	}
}

func TestEngine_ApplyCatalog(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(Options{})

	res := &catalog.LoadResult{
		Records:   testRecords(),
		Authors:   []models.AuthorProfile{{ID: "a1", Name: "Isaac Asimov"}},
		Dropped:   1,
		DroppedBy: map[string]int{catalog.DropInvalid: 1},
	}
	if err := e.ApplyCatalog(ctx, res); err != nil {
		t.Fatalf("ApplyCatalog() error = %v", err)
	}

	st, err := e.Status()
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if st.Records != 3 || st.Authors != 1 {
		t.Errorf("Status = %+v, want 3 records and 1 author", st)
	}
	if !st.LoadedAt.Equal(fixedNow) {
		t.Errorf("LoadedAt = %v, want %v", st.LoadedAt, fixedNow)
	}

	if err := e.ApplyCatalog(ctx, nil); err == nil {
		t.Error("ApplyCatalog(nil) error = nil, want error")
	}
}

func TestEngine_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := newTestEngine(Options{})
	if err := e.ApplyRecords(ctx, testRecords(), nil); !errors.Is(err, context.Canceled) {
		t.Errorf("ApplyRecords() error = %v, want context.Canceled", err)
	}
}
