package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_ToSafeHTML(t *testing.T) {
	r := NewRenderer()

	t.Run("renders emphasis and lists", func(t *testing.T) {
		out, err := r.ToSafeHTML("**Slide 1**\n\n- hook\n- payoff")
		require.NoError(t, err)
		assert.Contains(t, out, "<strong>Slide 1</strong>")
		assert.Contains(t, out, "<li>hook</li>")
	})

	t.Run("drops script tags", func(t *testing.T) {
		out, err := r.ToSafeHTML("hello <script>alert(1)</script>")
		require.NoError(t, err)
		assert.NotContains(t, out, "<script>")
	})
}

func TestRenderer_StripMarkup(t *testing.T) {
	r := NewRenderer()
	assert.Equal(t, "Q&A pricing", r.StripMarkup("  Q&A <b>pricing</b> "))
	assert.Equal(t, "plain prompt", r.StripMarkup("plain prompt"))
}
