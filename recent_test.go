package main

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func newTestRecentList(store Store) *RecentList {
	r := NewRecentList(store)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	r.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	return r
}

func pathSelection(path string) *SelectedImage {
	return &SelectedImage{Name: "mock.png", SourcePath: path}
}

func TestRecentListTouchOrdering(t *testing.T) {
	ctx := context.Background()
	r := newTestRecentList(newMemStore())

	r.Touch(ctx, pathSelection("/mocks/a.png"))
	r.Touch(ctx, pathSelection("/mocks/b.png"))
	r.Touch(ctx, pathSelection("/mocks/c.png"))

	entries := r.Entries()
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	want := []string{"/mocks/c.png", "/mocks/b.png", "/mocks/a.png"}
	for i, path := range want {
		if entries[i].Path != path {
			t.Errorf("entries[%d] = %q, want %q", i, entries[i].Path, path)
		}
	}
}

func TestRecentListTouchDeduplicates(t *testing.T) {
	ctx := context.Background()
	r := newTestRecentList(newMemStore())

	r.Touch(ctx, pathSelection("/mocks/a.png"))
	r.Touch(ctx, pathSelection("/mocks/b.png"))
	r.Touch(ctx, pathSelection("/mocks/a.png"))

	entries := r.Entries()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Path != "/mocks/a.png" {
		t.Errorf("re-touched entry should be first, got %q", entries[0].Path)
	}
	if !entries[0].LastUsed.After(entries[1].LastUsed) {
		t.Error("re-touched entry should carry the newest timestamp")
	}
}

func TestRecentListBounded(t *testing.T) {
	ctx := context.Background()
	r := newTestRecentList(newMemStore())

	for i := 0; i < maxRecentImages+5; i++ {
		r.Touch(ctx, pathSelection(fmt.Sprintf("/mocks/%d.png", i)))
	}

	entries := r.Entries()
	if len(entries) != maxRecentImages {
		t.Fatalf("got %d entries, want %d", len(entries), maxRecentImages)
	}
	// The oldest entries are the ones evicted.
	if entries[0].Path != fmt.Sprintf("/mocks/%d.png", maxRecentImages+4) {
		t.Errorf("newest entry = %q", entries[0].Path)
	}
	for _, e := range entries {
		if e.Path == "/mocks/0.png" {
			t.Error("oldest entry should have been evicted")
		}
	}
}

func TestRecentListRemove(t *testing.T) {
	ctx := context.Background()
	r := newTestRecentList(newMemStore())

	r.Touch(ctx, pathSelection("/mocks/a.png"))
	r.Touch(ctx, pathSelection("/mocks/b.png"))

	r.Remove(ctx, "/mocks/a.png")

	entries := r.Entries()
	if len(entries) != 1 || entries[0].Path != "/mocks/b.png" {
		t.Errorf("entries after remove = %+v", entries)
	}

	// Removing an unknown id is a no-op.
	r.Remove(ctx, "/mocks/z.png")
	if len(r.Entries()) != 1 {
		t.Error("removing unknown id changed the list")
	}
}

func TestRecentListPersistsAcrossLoad(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()

	r := newTestRecentList(store)
	r.Touch(ctx, pathSelection("/mocks/a.png"))
	r.Touch(ctx, &SelectedImage{Name: "dropped.png", Bytes: []byte{1, 2, 3}})

	reloaded := NewRecentList(store)
	reloaded.Load(ctx)

	entries := reloaded.Entries()
	if len(entries) != 2 {
		t.Fatalf("got %d entries after reload, want 2", len(entries))
	}
	if entries[0].ID != "drop:dropped.png" {
		t.Errorf("newest ID = %q", entries[0].ID)
	}
	if string(entries[0].Data) != string([]byte{1, 2, 3}) {
		t.Error("drop entry lost its image bytes")
	}
	if entries[1].Path != "/mocks/a.png" {
		t.Errorf("path entry = %q", entries[1].Path)
	}
}

func TestRecentListCorruptRecordIgnored(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	if err := store.Set(ctx, keyRecentImages, []byte(`{"not":"a list"}`)); err != nil {
		t.Fatal(err)
	}

	r := NewRecentList(store)
	r.Load(ctx)

	if len(r.Entries()) != 0 {
		t.Error("corrupt record should leave the list empty")
	}
}

func TestRecentListStoreFailureKeepsSessionState(t *testing.T) {
	ctx := context.Background()
	r := NewRecentList(failingStore{})
	r.now = time.Now

	r.Touch(ctx, pathSelection("/mocks/a.png"))

	if len(r.Entries()) != 1 {
		t.Error("store failure should not lose the in-memory entry")
	}
}
