package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konqer/konqer-api/internal/shared/logger"
)

func loadPrompts(t *testing.T, dir string) *PromptLoader {
	t.Helper()
	l := NewPromptLoader(dir, logger.NewNopLogger())
	require.NoError(t, l.Load())
	return l
}

func TestPromptLoader_Embedded(t *testing.T) {
	l := loadPrompts(t, "")

	assert.Equal(t, []string{
		"carousel.system", "carousel.user",
		"cold-dm.system", "cold-dm.user",
		"objection.system", "objection.user",
	}, l.Names())

	out, err := l.Render("cold-dm.user", map[string]any{
		"name":         "Ada Lovelace",
		"title":        "VP Sales",
		"company":      "Acme",
		"company_size": float64(250),
		"tech_stack":   []any{"Salesforce", "HubSpot", "Gong", "Outreach", "Clari", "Slack"},
		"recent_activity": []any{
			map[string]any{"summary": "Launched a new outbound team"},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, out, "- Name: Ada Lovelace")
	assert.Contains(t, out, "- Company: Acme (250 employees)")
	assert.Contains(t, out, "- Tech Stack: Salesforce, HubSpot, Gong, Outreach, Clari\n")
	assert.Contains(t, out, "- Launched a new outbound team")
	assert.NotContains(t, out, "<no value>")
}

func TestPromptLoader_MissingContext(t *testing.T) {
	l := loadPrompts(t, "")

	out, err := l.Render("cold-dm.user", map[string]any{})
	require.NoError(t, err)
	assert.Contains(t, out, "(unknown employees)")
	assert.Contains(t, out, "No recent activity available")
	assert.NotContains(t, out, "<no value>")

	out, err = l.Render("objection.user", struct {
		Objection string
		Framework string
		Context   map[string]any
	}{Objection: "Too expensive", Framework: "Cost vs Value"})
	require.NoError(t, err)
	assert.Contains(t, out, `**Objection:** "Too expensive"`)
	assert.Contains(t, out, "- Deal Size: N/A")
}

func TestPromptLoader_Override(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "carousel.system.tmpl"), []byte("Be brief."), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	l := loadPrompts(t, dir)
	out, err := l.Render("carousel.system", nil)
	require.NoError(t, err)
	assert.Equal(t, "Be brief.", out)
	assert.Len(t, l.Names(), 6)
}

func TestPromptLoader_Errors(t *testing.T) {
	t.Run("missing directory falls back to embedded", func(t *testing.T) {
		l := loadPrompts(t, filepath.Join(t.TempDir(), "absent"))
		assert.Len(t, l.Names(), 6)
	})

	t.Run("broken override", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "carousel.user.tmpl"), []byte("{{.Topic"), 0o600))
		l := NewPromptLoader(dir, logger.NewNopLogger())
		assert.Error(t, l.Load())
	})

	t.Run("unknown prompt", func(t *testing.T) {
		l := loadPrompts(t, "")
		_, err := l.Render("webinar.user", nil)
		assert.Error(t, err)
	})
}
