package template

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/konqer/konqer-api/internal/domain/generation"
	"github.com/konqer/konqer-api/internal/shared/logger"
)

//go:embed prompts/*.tmpl
var embeddedPrompts embed.FS

const promptExt = ".tmpl"

// PromptLoader holds the prompt templates used by the generation routines.
// Embedded defaults are always loaded; a file named <name>.tmpl in the
// override directory replaces the default of the same name.
type PromptLoader struct {
	templates map[string]*template.Template
	path      string
	logger    logger.Interface
}

func NewPromptLoader(path string, logger logger.Interface) *PromptLoader {
	return &PromptLoader{
		templates: make(map[string]*template.Template),
		path:      path,
		logger:    logger,
	}
}

// Load parses the embedded prompts, then the overrides. A template that
// fails to parse is an error.
func (l *PromptLoader) Load() error {
	entries, err := fs.Glob(embeddedPrompts, "prompts/*"+promptExt)
	if err != nil {
		return fmt.Errorf("failed to list embedded prompts: %w", err)
	}
	for _, entry := range entries {
		content, err := embeddedPrompts.ReadFile(entry)
		if err != nil {
			return fmt.Errorf("failed to read embedded prompt %s: %w", entry, err)
		}
		if err := l.add(promptName(entry), string(content)); err != nil {
			return err
		}
	}

	if l.path == "" {
		l.logger.Infow("prompt templates loaded", "count", len(l.templates))
		return nil
	}

	if _, err := os.Stat(l.path); os.IsNotExist(err) {
		l.logger.Warnw("prompts directory not found, using embedded prompts", "path", l.path)
		return nil
	}

	files, err := filepath.Glob(filepath.Join(l.path, "*"+promptExt))
	if err != nil {
		return fmt.Errorf("failed to list prompt overrides: %w", err)
	}
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			l.logger.Warnw("failed to read prompt override", "file", file, "error", err)
			continue
		}
		name := promptName(file)
		if err := l.add(name, string(content)); err != nil {
			return err
		}
		l.logger.Infow("loaded prompt override", "name", name, "file", file, "size", len(content))
	}

	l.logger.Infow("prompt templates loaded", "count", len(l.templates), "overrides", len(files))
	return nil
}

func (l *PromptLoader) add(name, content string) error {
	tmpl, err := template.New(name).Funcs(promptFuncs).Parse(content)
	if err != nil {
		return fmt.Errorf("failed to parse prompt %q: %w", name, err)
	}
	l.templates[name] = tmpl
	return nil
}

// Render executes the named prompt with data and trims surrounding
// whitespace.
func (l *PromptLoader) Render(name string, data any) (string, error) {
	tmpl, ok := l.templates[name]
	if !ok {
		return "", fmt.Errorf("prompt %q is not loaded", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt %q: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// Names returns the loaded prompt names in sorted order.
func (l *PromptLoader) Names() []string {
	names := make([]string, 0, len(l.templates))
	for name := range l.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func promptName(file string) string {
	return strings.TrimSuffix(filepath.Base(file), promptExt)
}

var promptFuncs = template.FuncMap{
	"str": func(v any) string {
		switch s := v.(type) {
		case nil:
			return ""
		case string:
			return strings.TrimSpace(s)
		case float64:
			return strconv.FormatFloat(s, 'f', -1, 64)
		default:
			return fmt.Sprint(s)
		}
	},
	"list": generation.ContactList,
	"activities": func(contact map[string]any) []string {
		return generation.ActivitySummaries(contact)
	},
	"limit": func(items []string, n int) []string {
		if len(items) > n {
			return items[:n]
		}
		return items
	},
	"join": func(items []string, sep string) string {
		return strings.Join(items, sep)
	},
}
