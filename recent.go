package main

import (
	"context"
	"encoding/json"
	"log"
	"time"
)

const maxRecentImages = 10

// RecentImage is one entry of the bounded recent-mock history. Path is empty
// for in-memory drops, which carry their image bytes instead so they survive
// a restart.
type RecentImage struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Path     string    `json:"path,omitempty"`
	Data     []byte    `json:"data,omitempty"`
	LastUsed time.Time `json:"last_used"`
}

// RecentList keeps the most recently used mocks, newest first, capped at
// maxRecentImages, persisted under the recent_images key. Store failures are
// logged and leave the in-memory list authoritative for the session.
type RecentList struct {
	store   Store
	entries []RecentImage
	now     func() time.Time
}

// NewRecentList creates an empty list backed by store.
func NewRecentList(store Store) *RecentList {
	return &RecentList{store: store, now: time.Now}
}

// Load replaces the in-memory list with the persisted one. A missing or
// corrupt record leaves the list empty.
func (r *RecentList) Load(ctx context.Context) {
	data, ok, err := r.store.Get(ctx, keyRecentImages)
	if err != nil {
		log.Printf("Warning: loading recent images: %v", err)
		return
	}
	if !ok {
		return
	}
	var entries []RecentImage
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("Warning: corrupt recent image list, ignoring: %v", err)
		return
	}
	if len(entries) > maxRecentImages {
		entries = entries[:maxRecentImages]
	}
	r.entries = entries
}

// Touch moves the selection to the front of the history, renewing its
// timestamp, and persists the list.
func (r *RecentList) Touch(ctx context.Context, sel *SelectedImage) {
	entry := RecentImage{
		ID:       recentID(sel),
		Name:     sel.Name,
		Path:     sel.SourcePath,
		LastUsed: r.now(),
	}
	if entry.Path == "" {
		entry.Data = sel.Bytes
	}

	updated := make([]RecentImage, 0, len(r.entries)+1)
	updated = append(updated, entry)
	for _, e := range r.entries {
		if e.ID != entry.ID {
			updated = append(updated, e)
		}
	}
	if len(updated) > maxRecentImages {
		updated = updated[:maxRecentImages]
	}
	r.entries = updated
	r.persist(ctx)
}

// Remove deletes the entry with the given id and persists the list.
func (r *RecentList) Remove(ctx context.Context, id string) {
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(r.entries) {
		return
	}
	r.entries = kept
	r.persist(ctx)
}

// Entries returns the history, newest first. Callers must not mutate it.
func (r *RecentList) Entries() []RecentImage {
	return r.entries
}

func (r *RecentList) persist(ctx context.Context) {
	data, err := json.Marshal(r.entries)
	if err != nil {
		log.Printf("Error: encoding recent images: %v", err)
		return
	}
	if err := r.store.Set(ctx, keyRecentImages, data); err != nil {
		log.Printf("Warning: saving recent images: %v", err)
	}
}

// recentID derives a stable identity for a selection: its path when it has
// one, otherwise its display name.
func recentID(sel *SelectedImage) string {
	if sel.SourcePath != "" {
		return sel.SourcePath
	}
	return "drop:" + sel.Name
}
