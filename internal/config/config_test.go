package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"pgregory.net/rapid"
)

// Feature: qna, Property 9: config merge precedence
func TestConfigMergePrecedence(t *testing.T) {
	nonEmptyString := rapid.StringMatching(`[a-zA-Z0-9/_.-]{1,20}`)

	// Each field is independently either empty or a non-empty value.
	configGen := rapid.Custom(func(t *rapid.T) *Config {
		cfg := &Config{}
		if rapid.Bool().Draw(t, "hasDefaultSet") {
			cfg.DefaultSet = nonEmptyString.Draw(t, "defaultSet")
		}
		if rapid.Bool().Draw(t, "hasDefaultFormat") {
			cfg.DefaultFormat = nonEmptyString.Draw(t, "defaultFormat")
		}
		if rapid.Bool().Draw(t, "hasTranscriptDir") {
			cfg.TranscriptDir = nonEmptyString.Draw(t, "transcriptDir")
		}
		if rapid.Bool().Draw(t, "hasQuestionFiles") {
			cfg.QuestionFiles = rapid.SliceOfN(nonEmptyString, 1, 3).Draw(t, "questionFiles")
		}
		return cfg
	})

	rapid.Check(t, func(t *rapid.T) {
		global := configGen.Draw(t, "global")
		project := configGen.Draw(t, "project")

		merged := Merge(global, project)
		defaults := Defaults()

		checkStringField(t, "DefaultSet",
			global.DefaultSet, project.DefaultSet, defaults.DefaultSet, merged.DefaultSet)
		checkStringField(t, "DefaultFormat",
			global.DefaultFormat, project.DefaultFormat, defaults.DefaultFormat, merged.DefaultFormat)
		checkStringField(t, "TranscriptDir",
			global.TranscriptDir, project.TranscriptDir, defaults.TranscriptDir, merged.TranscriptDir)

		switch {
		case len(project.QuestionFiles) > 0:
			if !reflect.DeepEqual(merged.QuestionFiles, project.QuestionFiles) {
				t.Fatalf("QuestionFiles: expected project value %v, got %v", project.QuestionFiles, merged.QuestionFiles)
			}
		case len(global.QuestionFiles) > 0:
			if !reflect.DeepEqual(merged.QuestionFiles, global.QuestionFiles) {
				t.Fatalf("QuestionFiles: expected global value %v, got %v", global.QuestionFiles, merged.QuestionFiles)
			}
		default:
			if len(merged.QuestionFiles) != 0 {
				t.Fatalf("QuestionFiles: expected empty, got %v", merged.QuestionFiles)
			}
		}
	})
}

// checkStringField asserts the merge precedence rule for a single string field:
//   - project non-empty  → merged == project
//   - project empty, global non-empty → merged == global
//   - both empty → merged == defaultVal
func checkStringField(t *rapid.T, name, globalVal, projectVal, defaultVal, mergedVal string) {
	t.Helper()
	switch {
	case projectVal != "":
		if mergedVal != projectVal {
			t.Fatalf("%s: both set — expected project value %q, got %q", name, projectVal, mergedVal)
		}
	case globalVal != "":
		if mergedVal != globalVal {
			t.Fatalf("%s: only global set — expected global value %q, got %q", name, globalVal, mergedVal)
		}
	default:
		if mergedVal != defaultVal {
			t.Fatalf("%s: neither set — expected default %q, got %q", name, defaultVal, mergedVal)
		}
	}
}

func TestDefaultsValues(t *testing.T) {
	d := Defaults()
	if d.DefaultSet != "intro" {
		t.Errorf("DefaultSet: want %q, got %q", "intro", d.DefaultSet)
	}
	if d.DefaultFormat != "plain" {
		t.Errorf("DefaultFormat: want %q, got %q", "plain", d.DefaultFormat)
	}
	if d.QuestionFiles == nil || len(d.QuestionFiles) != 0 {
		t.Errorf("QuestionFiles: want empty slice, got %v", d.QuestionFiles)
	}
}

func TestLoadGlobalMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected non-nil config, got nil")
	}
	if !reflect.DeepEqual(*cfg, Defaults()) {
		t.Errorf("got %+v, want defaults", *cfg)
	}
}

func TestLoadProjectMissingFileReturnsNil(t *testing.T) {
	tmp := t.TempDir()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmp); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(orig) })

	cfg, err := LoadProject()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != nil {
		t.Errorf("expected nil config, got %+v", cfg)
	}
}

func TestLoadGlobalReadsFile(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	cfgDir := filepath.Join(tmp, ".config", "qna")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	body := `{"default_set":"survey","question_files":["team.yaml"]}`
	if err := os.WriteFile(filepath.Join(cfgDir, "config.json"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	if cfg.DefaultSet != "survey" || !reflect.DeepEqual(cfg.QuestionFiles, []string{"team.yaml"}) {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadGlobalParseError(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	cfgDir := filepath.Join(tmp, ".config", "qna")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.json"), []byte("{invalid json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadGlobal()
	if err == nil {
		t.Fatal("expected an error for invalid JSON, got nil")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("expected *ParseError, got %T: %v", err, err)
	}
}
