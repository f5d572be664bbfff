package domain_test

import (
	"testing"
	"time"

	"github.com/RPDevJesco/EventChains-BuildSystem/internal/core/domain"
)

func TestBuildCache_UpsertThenFind(t *testing.T) {
	c := domain.NewBuildCache("/proj", "/proj/.eventchains")
	now := time.Now()

	c.Upsert("m.c", "build/m.o", 0xDEADBEEF, []domain.DependencyHash{
		{Path: domain.NewInternedString("m.h"), Hash: 0x1},
	}, now)

	entry := c.Find("m.c")
	if entry == nil {
		t.Fatal("Find(m.c) = nil, want an entry")
	}
	if !entry.Valid {
		t.Error("entry.Valid = false, want true after Upsert")
	}
	if entry.SourceHash != 0xDEADBEEF {
		t.Errorf("entry.SourceHash = %#x, want %#x", entry.SourceHash, uint64(0xDEADBEEF))
	}
	if len(entry.Dependencies) != 1 || entry.Dependencies[0].Path.String() != "m.h" {
		t.Errorf("entry.Dependencies = %v, want [m.h]", entry.Dependencies)
	}
}

func TestBuildCache_UpsertBoundsDependencies(t *testing.T) {
	c := domain.NewBuildCache("/proj", "/proj/.eventchains")
	deps := make([]domain.DependencyHash, domain.MaxDependenciesPerEntry+10)
	for i := range deps {
		deps[i] = domain.DependencyHash{Path: domain.NewInternedString("h.h"), Hash: uint64(i)}
	}

	c.Upsert("m.c", "build/m.o", 1, deps, time.Now())

	entry := c.Find("m.c")
	if len(entry.Dependencies) != domain.MaxDependenciesPerEntry {
		t.Errorf("len(Dependencies) = %d, want %d", len(entry.Dependencies), domain.MaxDependenciesPerEntry)
	}
}

func TestBuildCache_Invalidate(t *testing.T) {
	c := domain.NewBuildCache("/proj", "/proj/.eventchains")
	c.Upsert("m.c", "build/m.o", 1, nil, time.Now())

	c.Invalidate("m.c")

	entry := c.Find("m.c")
	if entry == nil {
		t.Fatal("Invalidate should not remove the entry")
	}
	if entry.Valid {
		t.Error("entry.Valid = true, want false after Invalidate")
	}
	if c.Invalidations != 1 {
		t.Errorf("Invalidations = %d, want 1", c.Invalidations)
	}
}

func TestBuildCache_Invalidate_MissingEntryIsNoop(t *testing.T) {
	c := domain.NewBuildCache("/proj", "/proj/.eventchains")
	c.Invalidate("nonexistent.c")
	if c.Invalidations != 0 {
		t.Errorf("Invalidations = %d, want 0 for a missing entry", c.Invalidations)
	}
}

func TestBuildCache_InvalidateDependents(t *testing.T) {
	c := domain.NewBuildCache("/proj", "/proj/.eventchains")
	now := time.Now()
	c.Upsert("a.c", "build/a.o", 1, []domain.DependencyHash{
		{Path: domain.NewInternedString("common.h"), Hash: 1},
	}, now)
	c.Upsert("b.c", "build/b.o", 2, []domain.DependencyHash{
		{Path: domain.NewInternedString("common.h"), Hash: 1},
	}, now)
	c.Upsert("c.c", "build/c.o", 3, nil, now)

	c.InvalidateDependents("common.h")

	if c.Find("a.c").Valid {
		t.Error("a.c should be invalidated: it depends on common.h")
	}
	if c.Find("b.c").Valid {
		t.Error("b.c should be invalidated: it depends on common.h")
	}
	if !c.Find("c.c").Valid {
		t.Error("c.c should stay valid: it does not depend on common.h")
	}
	if c.Invalidations != 2 {
		t.Errorf("Invalidations = %d, want 2", c.Invalidations)
	}
}

func TestBuildCache_HitRate(t *testing.T) {
	c := domain.NewBuildCache("/proj", "/proj/.eventchains")
	if rate := c.HitRate(); rate != 0 {
		t.Errorf("HitRate() on empty cache = %v, want 0", rate)
	}

	c.Hits = 3
	c.Misses = 1
	if rate := c.HitRate(); rate != 0.75 {
		t.Errorf("HitRate() = %v, want 0.75", rate)
	}
}

func TestBuildCache_SizeBytes_GrowsWithEntries(t *testing.T) {
	c := domain.NewBuildCache("/proj", "/proj/.eventchains")
	empty := c.SizeBytes()

	c.Upsert("m.c", "build/m.o", 1, []domain.DependencyHash{
		{Path: domain.NewInternedString("m.h"), Hash: 1},
	}, time.Now())

	if got := c.SizeBytes(); got <= empty {
		t.Errorf("SizeBytes() = %d, want more than empty cache's %d", got, empty)
	}
}

func TestBuildCache_UpsertIsIdempotentOnPath(t *testing.T) {
	c := domain.NewBuildCache("/proj", "/proj/.eventchains")
	now := time.Now()
	c.Upsert("m.c", "build/m.o", 1, nil, now)
	c.Upsert("m.c", "build/m.o", 2, nil, now.Add(time.Second))

	if len(c.Entries) != 1 {
		t.Errorf("len(Entries) = %d, want 1 after re-upserting the same path", len(c.Entries))
	}
	if c.Find("m.c").SourceHash != 2 {
		t.Errorf("SourceHash = %d, want 2 (the latest upsert)", c.Find("m.c").SourceHash)
	}
}
