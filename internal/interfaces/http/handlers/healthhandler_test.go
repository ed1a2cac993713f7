package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konqer/konqer-api/internal/interfaces/http/handlers/testutil"
)

func TestHealthHandler(t *testing.T) {
	h := NewHealthHandler()

	c, w := testutil.NewTestContext(http.MethodGet, "/health", nil)
	h.Health(c)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, testutil.ParseResponse(w, &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "konqer-api", body["service"])
	assert.NotEmpty(t, body["version"])
}
