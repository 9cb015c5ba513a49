package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"stock-quality-engine/internal/scoring/dto"
	"stock-quality-engine/internal/scoring/service"
	"stock-quality-engine/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScoringService struct {
	score  *dto.ScoreResponse
	gating *dto.GatingResponse
	runID  string
	err    error
}

func (s *stubScoringService) ProcessTask(ctx context.Context) {}

func (s *stubScoringService) TriggerRun(ctx context.Context, triggeredBy string) (string, error) {
	return s.runID, s.err
}

func (s *stubScoringService) RunBatch(ctx context.Context, trigger dto.StreamDataBatchTrigger) *dto.RunSummary {
	return &dto.RunSummary{}
}

func (s *stubScoringService) GetScore(ctx context.Context, assetCode string) (*dto.ScoreResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.score, nil
}

func (s *stubScoringService) GetGating(ctx context.Context, assetCode string) (*dto.GatingResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.gating, nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)
	return log
}

func TestGetScore(t *testing.T) {
	svc := &stubScoringService{score: &dto.ScoreResponse{AssetCode: "BBCA", ScoreTotal: 72.5, Confidence: 88}}
	handler := NewScoreHandler(svc, testLogger(t))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/scores/:code")
	c.SetParamNames("code")
	c.SetParamValues("BBCA")

	require.NoError(t, handler.GetScore(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body dto.ScoreResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "BBCA", body.AssetCode)
	assert.Equal(t, 72.5, body.ScoreTotal)
	assert.Equal(t, 88, body.Confidence)
}

func TestGetScoreNotFound(t *testing.T) {
	svc := &stubScoringService{err: fmt.Errorf("no score recorded for asset XXXX: %w", service.ErrNotFound)}
	handler := NewScoreHandler(svc, testLogger(t))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/scores/:code")
	c.SetParamNames("code")
	c.SetParamValues("XXXX")

	require.NoError(t, handler.GetScore(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetScoreStorageFailure(t *testing.T) {
	// A backend outage must not masquerade as a missing asset.
	svc := &stubScoringService{err: errors.New("connection refused")}
	handler := NewScoreHandler(svc, testLogger(t))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/scores/:code")
	c.SetParamNames("code")
	c.SetParamValues("BBCA")

	require.NoError(t, handler.GetScore(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetGatingStorageFailure(t *testing.T) {
	svc := &stubScoringService{err: errors.New("connection refused")}
	handler := NewScoreHandler(svc, testLogger(t))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/gating/:code")
	c.SetParamNames("code")
	c.SetParamValues("BBCA")

	require.NoError(t, handler.GetGating(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetGating(t *testing.T) {
	reason := "insufficient_liquidity"
	svc := &stubScoringService{gating: &dto.GatingResponse{AssetCode: "ZOMB", Eligible: false, Reason: &reason}}
	handler := NewScoreHandler(svc, testLogger(t))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/gating/:code")
	c.SetParamNames("code")
	c.SetParamValues("ZOMB")

	require.NoError(t, handler.GetGating(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body dto.GatingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Eligible)
	require.NotNil(t, body.Reason)
	assert.Equal(t, reason, *body.Reason)
}

func TestTriggerRun(t *testing.T) {
	svc := &stubScoringService{runID: "run-42"}
	handler := NewScoreHandler(svc, testLogger(t))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/runs", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.TriggerRun(c))
	assert.Equal(t, http.StatusAccepted, rec.Code)

	var body dto.TriggerRunResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "run-42", body.RunID)
}
