// Package questions defines named question sets and loads them from YAML.
package questions

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownSet is returned when a set name is not registered.
	ErrUnknownSet = errors.New("unknown question set")
	// ErrInvalidSet is returned when a set fails validation.
	ErrInvalidSet = errors.New("invalid question set")
)

// Set is a named, ordered list of questions with an optional thank-you
// template rendered once every question is answered.
type Set struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Questions   []string `yaml:"questions"`
	// Thanks is a text/template executed with .Questions and .Answers.
	Thanks string `yaml:"thanks,omitempty"`
}

// file is the on-disk shape of a question set file.
type file struct {
	Sets []Set `yaml:"sets"`
}

// Builtin returns the question sets shipped with qna.
func Builtin() []Set {
	return []Set{
		{
			Name:        "intro",
			Description: "Three quick questions about you",
			Questions: []string{
				"What is your name? ",
				"Where do you live? ",
				"What are you going to do with node js? ",
			},
		},
		{
			Name:        "survey",
			Description: "What you would rather be doing",
			Questions: []string{
				"What is your name? ",
				"What would you rather be doing? ",
				"What is your preferred programming language? ",
			},
			Thanks: "Thank you for your answers.\n\nGo {{index .Answers 1}} {{index .Answers 0}}, you can write {{index .Answers 2}} later!",
		},
		{
			Name:        "ask",
			Description: "A single question",
			Questions:   []string{"How do you like Go? "},
			Thanks:      "Your answer: {{index .Answers 0}}",
		},
	}
}

// Validate reports whether the set can be asked.
func (s *Set) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidSet)
	}
	if len(s.Questions) == 0 {
		return fmt.Errorf("%w: %q has no questions", ErrInvalidSet, s.Name)
	}
	for i, q := range s.Questions {
		if strings.TrimSpace(q) == "" {
			return fmt.Errorf("%w: %q question %d is blank", ErrInvalidSet, s.Name, i+1)
		}
	}
	if s.Thanks != "" {
		if _, err := template.New(s.Name).Option("missingkey=error").Parse(s.Thanks); err != nil {
			return fmt.Errorf("%w: %q thanks template: %v", ErrInvalidSet, s.Name, err)
		}
	}
	return nil
}

// RenderThanks executes the thanks template against answers. It returns ""
// when the set has no template.
func (s *Set) RenderThanks(answers []string) (string, error) {
	if s.Thanks == "" {
		return "", nil
	}
	tmpl, err := template.New(s.Name).Option("missingkey=error").Parse(s.Thanks)
	if err != nil {
		return "", fmt.Errorf("parsing thanks template: %w", err)
	}
	var sb strings.Builder
	data := struct {
		Questions []string
		Answers   []string
	}{s.Questions, answers}
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("rendering thanks template: %w", err)
	}
	return sb.String(), nil
}

// LoadFile reads a YAML question set file and validates every set in it.
func LoadFile(path string) ([]Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	for i := range f.Sets {
		if err := f.Sets[i].Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return f.Sets, nil
}

// Registry looks sets up by name. Later additions replace earlier ones with
// the same name, so user files can override the built-in sets.
type Registry struct {
	sets map[string]Set
}

// NewRegistry returns a registry holding sets.
func NewRegistry(sets ...Set) *Registry {
	r := &Registry{sets: make(map[string]Set, len(sets))}
	for _, s := range sets {
		r.sets[s.Name] = s
	}
	return r
}

// Add registers sets, replacing any with the same name.
func (r *Registry) Add(sets ...Set) {
	for _, s := range sets {
		r.sets[s.Name] = s
	}
}

// Get returns the named set.
func (r *Registry) Get(name string) (Set, error) {
	s, ok := r.sets[name]
	if !ok {
		if near := r.Suggest(name); len(near) > 0 {
			return Set{}, fmt.Errorf("%w: %q (did you mean %q?)", ErrUnknownSet, name, near[0])
		}
		return Set{}, fmt.Errorf("%w: %q", ErrUnknownSet, name)
	}
	return s, nil
}

// Suggest returns registered set names that fuzzy-match name, best first.
func (r *Registry) Suggest(name string) []string {
	if name == "" {
		return nil
	}
	matches := fuzzy.Find(name, r.Names())
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Str
	}
	return out
}

// Names returns the registered set names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sets))
	for name := range r.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
