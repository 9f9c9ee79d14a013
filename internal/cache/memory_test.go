package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreGetSet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(100, time.Minute)

	val, err := store.Get(ctx, "genres::id::1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if val != nil {
		t.Fatalf("expected miss, got %q", val)
	}

	if err := store.Set(ctx, "genres::id::1", []byte(`{"name":"Drama"}`), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	val, err = store.Get(ctx, "genres::id::1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(val) != `{"name":"Drama"}` {
		t.Errorf("unexpected value %q", val)
	}
}

func TestMemoryStoreDeletePattern(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(100, time.Minute)

	for _, key := range []string{"movies::id::1", "movies::page_number::1", "genres::id::1"} {
		if err := store.Set(ctx, key, []byte("x"), time.Minute); err != nil {
			t.Fatalf("set %s: %v", key, err)
		}
	}

	deleted, err := store.DeletePattern(ctx, "movies::*")
	if err != nil {
		t.Fatalf("delete pattern: %v", err)
	}
	if deleted != 2 {
		t.Errorf("expected 2 deleted keys, got %d", deleted)
	}

	if val, _ := store.Get(ctx, "genres::id::1"); val == nil {
		t.Error("genres key should survive")
	}
	if val, _ := store.Get(ctx, "movies::id::1"); val != nil {
		t.Error("movies key should be gone")
	}
}

func TestMemoryStoreDeletePatternMatchesSlashes(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(100, time.Minute)

	keys := []string{
		"movies::page_number::1::page_size::50::query::AC/DC",
		"movies::query::a/b/c::sort::-imdb_rating",
	}
	for _, key := range keys {
		if err := store.Set(ctx, key, []byte("x"), time.Minute); err != nil {
			t.Fatalf("set %s: %v", key, err)
		}
	}

	deleted, err := store.DeletePattern(ctx, "movies::*")
	if err != nil {
		t.Fatalf("delete pattern: %v", err)
	}
	if deleted != len(keys) {
		t.Errorf("expected %d deleted keys, got %d", len(keys), deleted)
	}
	for _, key := range keys {
		if val, _ := store.Get(ctx, key); val != nil {
			t.Errorf("%s survived the flush", key)
		}
	}
}

func TestGlobRegexp(t *testing.T) {
	tests := []struct {
		pattern string
		key     string
		want    bool
	}{
		{"movies::*", "movies::id::1", true},
		{"movies::*", "movies::query::AC/DC", true},
		{"movies::*", "moviesX::id::1", false},
		{"movies::*", "genres::id::1", false},
		{"movies::id::?", "movies::id::7", true},
		{"movies::id::?", "movies::id::77", false},
		{"movies.*", "movies::id", false},
	}
	for _, tt := range tests {
		re, err := globRegexp(tt.pattern)
		if err != nil {
			t.Fatalf("globRegexp(%q): %v", tt.pattern, err)
		}
		if got := re.MatchString(tt.key); got != tt.want {
			t.Errorf("%q matches %q = %v, want %v", tt.pattern, tt.key, got, tt.want)
		}
	}
}
