package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	admindto "github.com/konqer/konqer-api/internal/application/admin/dto"
	"github.com/konqer/konqer-api/internal/application/generation/dto"
	"github.com/konqer/konqer-api/internal/interfaces/http/handlers/testutil"
	"github.com/konqer/konqer-api/internal/shared/errors"
	"github.com/konqer/konqer-api/internal/shared/logger"
)

type mockGenerateUC struct {
	result  *dto.GenerateResponse
	err     error
	userID  string
	service string
	req     dto.GenerateRequest
}

func (m *mockGenerateUC) Execute(_ context.Context, userID, service string, req dto.GenerateRequest) (*dto.GenerateResponse, error) {
	m.userID, m.service, m.req = userID, service, req
	return m.result, m.err
}

type mockGetServiceConfigUC struct {
	result *admindto.ServiceConfigResponse
	err    error
}

func (m *mockGetServiceConfigUC) Execute(_ context.Context, _ string) (*admindto.ServiceConfigResponse, error) {
	return m.result, m.err
}

func TestServiceHandler_Generate(t *testing.T) {
	score := 80
	gen := &mockGenerateUC{result: &dto.GenerateResponse{
		ID:                   "gen-1",
		Service:              "cold-dm",
		Output:               "Hi Ada",
		PersonalizationScore: &score,
		TokensUsed:           42,
		CreatedAt:            time.Now(),
	}}
	h := NewServiceHandler(gen, &mockGetServiceConfigUC{}, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/services/cold-dm/generate", map[string]any{
		"prompt":  "Write a short opener for Ada",
		"context": map[string]any{"company": "Acme"},
	})
	testutil.SetAuthContext(c, "user-1")
	testutil.SetURLParam(c, "service", "cold-dm")
	h.Generate(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", gen.userID)
	assert.Equal(t, "cold-dm", gen.service)
	assert.Equal(t, "Acme", gen.req.Context["company"])

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var out dto.GenerateResponse
	require.NoError(t, json.Unmarshal(resp.Data, &out))
	assert.Equal(t, "gen-1", out.ID)
	require.NotNil(t, out.PersonalizationScore)
	assert.Equal(t, 80, *out.PersonalizationScore)
}

func TestServiceHandler_Generate_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		typ    errors.ErrorType
	}{
		{"locked", errors.NewForbiddenError("Access to cold-dm is locked. Upgrade your plan."), http.StatusForbidden, errors.ErrorTypeForbidden},
		{"quota", errors.NewTooManyRequestsError("Daily rate limit exceeded"), http.StatusTooManyRequests, errors.ErrorTypeRateLimited},
		{"provider", errors.NewGenerationError("Generation failed"), http.StatusInternalServerError, errors.ErrorTypeGeneration},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewServiceHandler(&mockGenerateUC{err: tc.err}, &mockGetServiceConfigUC{}, logger.NewNopLogger())
			c, w := testutil.NewTestContext(http.MethodPost, "/services/cold-dm/generate", map[string]any{"prompt": "Write a short opener"})
			testutil.SetAuthContext(c, "user-1")
			testutil.SetURLParam(c, "service", "cold-dm")
			h.Generate(c)

			assert.Equal(t, tc.status, w.Code)
			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, string(tc.typ), resp.Error.Type)
		})
	}
}

func TestServiceHandler_Generate_RequiresAuthAndPrompt(t *testing.T) {
	gen := &mockGenerateUC{}
	h := NewServiceHandler(gen, &mockGetServiceConfigUC{}, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/services/cold-dm/generate", map[string]any{"prompt": "Write a short opener"})
	h.Generate(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c, w = testutil.NewTestContext(http.MethodPost, "/services/cold-dm/generate", map[string]any{"context": map[string]any{}})
	testutil.SetAuthContext(c, "user-1")
	h.Generate(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, gen.userID)
}

func TestServiceHandler_GetConfig(t *testing.T) {
	h := NewServiceHandler(&mockGenerateUC{}, &mockGetServiceConfigUC{result: &admindto.ServiceConfigResponse{
		Service: "carousel", Name: "LinkedIn Carousel Forge", RateLimitDaily: 20, Enabled: true,
	}}, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/services/config/carousel", nil)
	testutil.SetURLParam(c, "service", "carousel")
	h.GetConfig(c)
	require.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var cfg admindto.ServiceConfigResponse
	require.NoError(t, json.Unmarshal(resp.Data, &cfg))
	assert.Equal(t, 20, cfg.RateLimitDaily)

	h = NewServiceHandler(&mockGenerateUC{}, &mockGetServiceConfigUC{err: errors.NewNotFoundError("service not found")}, logger.NewNopLogger())
	c, w = testutil.NewTestContext(http.MethodGet, "/services/config/nope", nil)
	testutil.SetURLParam(c, "service", "nope")
	h.GetConfig(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
