package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned by Load when no transcript has the given ID.
	ErrNotFound = errors.New("transcript not found")
	// ErrInvalidID is returned for an empty ID or one containing a path
	// separator.
	ErrInvalidID = errors.New("invalid transcript id")
)

// Store persists transcripts.
type Store interface {
	Save(t *Transcript) error
	Load(id string) (*Transcript, error) // returns ErrNotFound if absent
	List() ([]*Transcript, error)        // newest first
	Delete(id string) error
}

// diskStore keeps one JSON file per transcript in a directory.
type diskStore struct {
	dir string
}

// NewStore returns a Store rooted at dir. An empty dir selects the XDG data
// directory: $XDG_DATA_HOME/qna/transcripts or ~/.local/share/qna/transcripts.
func NewStore(dir string) (Store, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("resolving data directory: %w", err)
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating transcript directory: %w", err)
	}
	return &diskStore{dir: dir}, nil
}

// DefaultDir returns the default transcript directory.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "qna", "transcripts"), nil
}

// path maps id to its file, refusing IDs that would leave the directory.
func (d *diskStore) path(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("%w %q", ErrInvalidID, id)
	}
	return filepath.Join(d.dir, id+".json"), nil
}

// Save writes t atomically via a temp file + os.Rename.
func (d *diskStore) Save(t *Transcript) (err error) {
	dest, err := d.path(t.ID)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to persist transcript: %w", err)
	}

	// Temp file lives in the same directory so the rename is atomic.
	tmp, err := os.CreateTemp(d.dir, "transcript-*.json.tmp")
	if err != nil {
		return fmt.Errorf("failed to persist transcript: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to persist transcript: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to persist transcript: %w", err)
	}
	if err = os.Rename(tmpName, dest); err != nil {
		return fmt.Errorf("failed to persist transcript: %w", err)
	}
	return nil
}

// Load reads the transcript with the given ID.
func (d *diskStore) Load(id string) (*Transcript, error) {
	p, err := d.path(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}
	t, err := (&JSONParser{}).Parse(data)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// List returns every stored transcript, newest first. Unreadable files are
// skipped.
func (d *diskStore) List() ([]*Transcript, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list transcripts: %w", err)
	}
	var out []*Transcript
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		t, err := d.Load(strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

// Delete removes the transcript file. Deleting a missing transcript is not
// an error.
func (d *diskStore) Delete(id string) error {
	p, err := d.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete transcript: %w", err)
	}
	return nil
}
