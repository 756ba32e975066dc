package prefs

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/artkit/pkg/errors"
)

type resizePrefs struct {
	Size         string  `json:"size"`
	Side         string  `json:"side"`
	Proportional bool    `json:"proportional"`
	Tension      float64 `json:"tension,omitempty"`
}

func TestSaveLoad(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	var got resizePrefs
	ok, err := s.Load("resize", &got)
	if err != nil || ok {
		t.Fatalf("Load on empty store = %v, %v; want false, nil", ok, err)
	}

	want := resizePrefs{Size: "50mm", Side: "width", Proportional: true}
	if err := s.Save("resize", want); err != nil {
		t.Fatal(err)
	}
	ok, err = s.Load("resize", &got)
	if err != nil || !ok {
		t.Fatalf("Load = %v, %v", ok, err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load = %+v, want %+v", got, want)
	}

	if _, err := os.Stat(filepath.Join(s.Dir(), "resize_data.json")); err != nil {
		t.Errorf("prefs file not at expected path: %v", err)
	}
}

func TestSaveReplacesWholeFile(t *testing.T) {
	s, _ := NewStore(t.TempDir())
	if err := s.Save("smooth", map[string]any{"tension": 0.5, "closed": true}); err != nil {
		t.Fatal(err)
	}
	if err := s.Save("smooth", map[string]any{"tension": 1}); err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if _, err := s.Load("smooth", &got); err != nil {
		t.Fatal(err)
	}
	if _, ok := got["closed"]; ok {
		t.Errorf("stale key survived Save: %v", got)
	}

	entries, _ := os.ReadDir(s.Dir())
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want 1 (no temp files)", len(entries))
	}
}

func TestLoadMalformed(t *testing.T) {
	s, _ := NewStore(t.TempDir())
	path, _ := s.Path("bad")
	if err := os.WriteFile(path, []byte("{eval: 'x'}"), 0600); err != nil {
		t.Fatal(err)
	}
	var v map[string]any
	if _, err := s.Load("bad", &v); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Load error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestInvalidNames(t *testing.T) {
	s, _ := NewStore(t.TempDir())
	for _, name := range []string{"", "../escape", "a/b", ".hidden"} {
		if err := s.Save(name, 1); !errors.Is(err, errors.ErrCodeInvalidName) {
			t.Errorf("Save(%q) error = %v, want %s", name, err, errors.ErrCodeInvalidName)
		}
	}
}

func TestListDelete(t *testing.T) {
	s, _ := NewStore(t.TempDir())
	for _, n := range []string{"scatter", "align", "resize"} {
		if err := s.Save(n, struct{}{}); err != nil {
			t.Fatal(err)
		}
	}
	names, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"align", "resize", "scatter"}; !reflect.DeepEqual(names, want) {
		t.Errorf("List = %v, want %v", names, want)
	}

	if err := s.Delete("align"); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("align"); err != nil {
		t.Errorf("second Delete should be a no-op: %v", err)
	}
	names, _ = s.List()
	if len(names) != 2 {
		t.Errorf("List after Delete = %v", names)
	}
}

func TestDefaultDirXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	d, err := DefaultDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg", "artkit", "prefs"); d != want {
		t.Errorf("DefaultDir = %s, want %s", d, want)
	}
}
