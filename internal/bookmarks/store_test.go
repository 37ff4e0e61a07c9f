package bookmarks

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "db", "bookmarks.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_SaveGetListDelete(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	first, err := s.Save(ctx, Bookmark{URL: "https://example.com/a", Summary: "first", Tags: []string{" go ", "", "nlp"}})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if first.ID == "" || first.SavedAt.IsZero() {
		t.Fatalf("expected generated id and time: %+v", first)
	}
	if first.Title != "https://example.com/a" {
		t.Fatalf("expected title to fall back to url, got %q", first.Title)
	}
	second, err := s.Save(ctx, Bookmark{Title: "Second", URL: "https://example.com/b", SavedAt: first.SavedAt.Add(time.Second)})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(got.Tags, []string{"go", "nlp"}) || got.Summary != "first" {
		t.Fatalf("unexpected bookmark: %+v", got)
	}
	if !got.SavedAt.Equal(first.SavedAt) {
		t.Fatalf("saved_at round trip: %v vs %v", got.SavedAt, first.SavedAt)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID {
		t.Fatalf("expected newest first, got %+v", list)
	}

	if err := s.Delete(ctx, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(ctx, first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	n, err := s.Clear(ctx)
	if err != nil || n != 1 {
		t.Fatalf("clear n=%d err=%v", n, err)
	}
}

func TestOpen_InMemory(t *testing.T) {
	s, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	if _, err := s.Save(context.Background(), Bookmark{Title: "t", URL: "u"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	list, err := s.List(context.Background())
	if err != nil || len(list) != 1 {
		t.Fatalf("list=%v err=%v", list, err)
	}
}

func TestParseTags(t *testing.T) {
	got := ParseTags(" a, b ,,c,d,e,f,g,h,i,j")
	want := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q want %q", got, want)
	}
	if got := ParseTags(" , "); len(got) != 0 {
		t.Fatalf("expected no tags, got %q", got)
	}
}

func TestScore(t *testing.T) {
	b := Bookmark{Title: "Solar power grows", Summary: "Solar panels are cheaper.", URL: "https://example.com/solar", Tags: []string{"energy"}}
	cases := []struct {
		query string
		want  float64
	}{
		{"", 1},
		{"  ", 1},
		{"POWER GROWS", 1},
		{"solar wind", 1}, // "solar" appears twice in the text
		{"energy wind", 0.5},
		{"wind hydro", 0},
		{"!!!", 0},
	}
	for _, tc := range cases {
		if got := Score(tc.query, b); got != tc.want {
			t.Fatalf("Score(%q)=%v want %v", tc.query, got, tc.want)
		}
	}
}

func TestSearch_OrdersByScoreThenRecency(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mustSave := func(b Bookmark) {
		t.Helper()
		if _, err := s.Save(ctx, b); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	mustSave(Bookmark{ID: "old-full", Title: "rust and go", URL: "u1", SavedAt: base})
	mustSave(Bookmark{ID: "new-full", Title: "go and rust", URL: "u2", SavedAt: base.Add(time.Hour)})
	mustSave(Bookmark{ID: "half", Title: "only go here", URL: "u3", SavedAt: base.Add(2 * time.Hour)})
	mustSave(Bookmark{ID: "none", Title: "python", URL: "u4", SavedAt: base.Add(3 * time.Hour)})

	res, err := s.Search(ctx, "go rust")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	var ids []string
	for _, r := range res {
		ids = append(ids, r.ID)
	}
	if !reflect.DeepEqual(ids, []string{"new-full", "old-full", "half"}) {
		t.Fatalf("unexpected order %v", ids)
	}
	if res[2].Score != 0.5 {
		t.Fatalf("expected half score 0.5, got %v", res[2].Score)
	}
}
