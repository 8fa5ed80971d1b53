package script

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// File is the on-disk representation of a script: a named list of span
// specs. Pace and style are referenced by name and bound to concrete
// functions by the caller when the runtime sequence is built.
type File struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Spans       []SpanSpec `yaml:"spans"`
	Source      string     `yaml:"-"` // file path
}

// SpanSpec describes one span of a script file.
type SpanSpec struct {
	Text  string            `yaml:"text"`
	Style string            `yaml:"style,omitempty"`
	Pace  string            `yaml:"pace,omitempty"`
	Delay string            `yaml:"delay,omitempty"`
	Attrs map[string]string `yaml:"attrs,omitempty"`
}

// BaseDelay parses the per-span delay override, or returns fallback when
// the spec does not set one.
func (s SpanSpec) BaseDelay(fallback time.Duration) time.Duration {
	if s.Delay == "" {
		return fallback
	}
	d, err := time.ParseDuration(s.Delay)
	if err != nil {
		return fallback
	}
	return d
}

// Load reads a single script file from disk.
func Load(path string) (*File, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("script path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script %s: %w", path, err)
	}

	file, err := parseFile(data)
	if err != nil {
		return nil, fmt.Errorf("parse script %s: %w", path, err)
	}
	file.Source = path
	return file, nil
}

// LoadDir loads all scripts from a directory, sorted by name.
func LoadDir(dir string) ([]*File, error) {
	if strings.TrimSpace(dir) == "" {
		return []*File{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*File{}, nil
		}
		return nil, fmt.Errorf("read scripts dir %s: %w", dir, err)
	}

	files := make([]*File, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		file, err := Load(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

func parseFile(data []byte) (*File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	file.Name = strings.TrimSpace(file.Name)
	if file.Name == "" {
		return nil, fmt.Errorf("script name is required")
	}
	file.Description = strings.TrimSpace(file.Description)

	if len(file.Spans) == 0 {
		return nil, fmt.Errorf("script spans are required")
	}

	for i := range file.Spans {
		if err := normalizeSpan(&file.Spans[i]); err != nil {
			return nil, fmt.Errorf("script span %d: %w", i+1, err)
		}
	}

	return &file, nil
}

func normalizeSpan(spec *SpanSpec) error {
	// Text is deliberately not trimmed; leading and trailing whitespace
	// is revealable content.
	if spec.Text == "" {
		return fmt.Errorf("span text is required")
	}

	spec.Style = strings.ToLower(strings.TrimSpace(spec.Style))
	spec.Pace = strings.ToLower(strings.TrimSpace(spec.Pace))
	spec.Delay = strings.TrimSpace(spec.Delay)

	if spec.Delay != "" {
		d, err := time.ParseDuration(spec.Delay)
		if err != nil {
			return fmt.Errorf("invalid span delay: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("span delay must not be negative")
		}
	}

	return nil
}
