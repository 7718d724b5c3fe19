package transcript_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/fakeyudi/qna/internal/transcript"
)

// generateTime produces an arbitrary time truncated to second precision.
func generateTime(t *rapid.T, label string) time.Time {
	sec := rapid.Int64Range(1_000_000_000, 1_700_000_000).Draw(t, label+"_unix_sec")
	return time.Unix(sec, 0).UTC()
}

// generateTranscript produces an arbitrary Transcript.
func generateTranscript(t *rapid.T) *transcript.Transcript {
	start := generateTime(t, "start")
	n := rapid.IntRange(0, 6).Draw(t, "num_entries")
	entries := make([]transcript.Entry, n)
	for i := range entries {
		entries[i] = transcript.Entry{
			Question:  rapid.StringN(1, 60, -1).Draw(t, "question"),
			Answer:    rapid.StringN(0, 60, -1).Draw(t, "answer"),
			Timestamp: generateTime(t, "entry_ts"),
		}
	}
	return &transcript.Transcript{
		ID:         rapid.StringMatching(`[a-f0-9-]{8,36}`).Draw(t, "id"),
		Set:        rapid.StringN(0, 20, -1).Draw(t, "set"),
		Respondent: rapid.StringN(0, 20, -1).Draw(t, "respondent"),
		StartTime:  start,
		EndTime:    start.Add(time.Duration(rapid.IntRange(0, 3600).Draw(t, "secs")) * time.Second),
		Entries:    entries,
	}
}

func assertSameTranscript(t *rapid.T, got, want *transcript.Transcript) {
	t.Helper()
	if got.ID != want.ID || got.Set != want.Set || got.Respondent != want.Respondent {
		t.Fatalf("header mismatch: got %+v, want %+v", got, want)
	}
	if !got.StartTime.Equal(want.StartTime) || !got.EndTime.Equal(want.EndTime) {
		t.Fatalf("time mismatch: got %v..%v, want %v..%v", got.StartTime, got.EndTime, want.StartTime, want.EndTime)
	}
	if len(got.Entries) != len(want.Entries) {
		t.Fatalf("entries length mismatch: got %d, want %d", len(got.Entries), len(want.Entries))
	}
	for i, e := range want.Entries {
		g := got.Entries[i]
		if g.Question != e.Question || g.Answer != e.Answer || !g.Timestamp.Equal(e.Timestamp) {
			t.Fatalf("Entries[%d] mismatch: got %+v, want %+v", i, g, e)
		}
	}
}

// Feature: qna, Property 7: transcript persistence round-trip
func TestStoreRoundTrip(t *testing.T) {
	store, err := transcript.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	rapid.Check(t, func(t *rapid.T) {
		original := generateTranscript(t)
		if err := store.Save(original); err != nil {
			t.Fatalf("Save: %v", err)
		}
		loaded, err := store.Load(original.ID)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		assertSameTranscript(t, loaded, original)
	})
}

func TestStoreDefaultsToXDGDataHome(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	store, err := transcript.NewStore("")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.Save(&transcript.Transcript{ID: "abc"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmp, "qna", "transcripts", "abc.json")); err != nil {
		t.Errorf("transcript not written under XDG_DATA_HOME: %v", err)
	}
}

func TestStoreLoadMissing(t *testing.T) {
	store, err := transcript.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if _, err := store.Load("missing"); !errors.Is(err, transcript.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestStoreListNewestFirstAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := transcript.NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		tr := &transcript.Transcript{ID: id, StartTime: base.Add(time.Duration(i) * time.Hour)}
		if err := store.Save(tr); err != nil {
			t.Fatalf("Save %s: %v", id, err)
		}
	}
	// Stray files are ignored.
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644)
	os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o644)

	list, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var ids []string
	for _, tr := range list {
		ids = append(ids, tr.ID)
	}
	if len(ids) != 3 || ids[0] != "new" || ids[1] != "mid" || ids[2] != "old" {
		t.Fatalf("List order = %v, want [new mid old]", ids)
	}

	if err := store.Delete("mid"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete("mid"); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if _, err := store.Load("mid"); !errors.Is(err, transcript.ErrNotFound) {
		t.Errorf("Load after Delete: err = %v, want ErrNotFound", err)
	}
}

func TestStoreRejectsPathLikeIDs(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "store")
	store, err := transcript.NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	outside := filepath.Join(root, "outside.json")
	if err := os.WriteFile(outside, []byte(`{"id":"outside","entries":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{"", "../outside", `..\outside`, "a/b"} {
		if err := store.Save(&transcript.Transcript{ID: id}); !errors.Is(err, transcript.ErrInvalidID) {
			t.Errorf("Save(%q) err = %v, want ErrInvalidID", id, err)
		}
		if _, err := store.Load(id); !errors.Is(err, transcript.ErrInvalidID) {
			t.Errorf("Load(%q) err = %v, want ErrInvalidID", id, err)
		}
		if err := store.Delete(id); !errors.Is(err, transcript.ErrInvalidID) {
			t.Errorf("Delete(%q) err = %v, want ErrInvalidID", id, err)
		}
	}
	if _, err := os.Stat(outside); err != nil {
		t.Errorf("file outside the store was touched: %v", err)
	}
}
