package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/betterday-backend/internal/http/response"
	"github.com/yungbote/betterday-backend/internal/services"
	"github.com/yungbote/betterday-backend/internal/types"
)

type stubDashboardService struct {
	view     *services.DashboardView
	err      error
	gotDate  datatypes.Date
	gotDayID uuid.UUID
}

func (s *stubDashboardService) GetDashboard(ctx context.Context, date datatypes.Date) (*services.DashboardView, error) {
	s.gotDate = date
	return s.view, s.err
}

func (s *stubDashboardService) GetDashboardForDay(ctx context.Context, dayID uuid.UUID) (*services.DashboardView, error) {
	s.gotDayID = dayID
	return s.view, s.err
}

type stubDayService struct {
	day      *types.Day
	err      error
	gotDayID uuid.UUID
	gotWake  *time.Time
	gotSleep *time.Time
}

func (s *stubDayService) GetOrCreateByDate(ctx context.Context, date datatypes.Date) (*types.Day, error) {
	return s.day, s.err
}

func (s *stubDayService) GetByID(ctx context.Context, id uuid.UUID) (*types.Day, error) {
	s.gotDayID = id
	return s.day, s.err
}

func (s *stubDayService) GetByDate(ctx context.Context, date datatypes.Date) (*types.Day, error) {
	return s.day, s.err
}

func (s *stubDayService) SetTimes(ctx context.Context, dayID uuid.UUID, wake, sleep *time.Time) (*types.Day, error) {
	s.gotDayID = dayID
	s.gotWake = wake
	s.gotSleep = sleep
	return s.day, s.err
}

type stubCategoryService struct {
	category *types.Category
	err      error
	gotDayID uuid.UUID
	gotID    uuid.UUID
	gotName  string
	gotDesc  string
	deleted  bool
}

func (s *stubCategoryService) Create(ctx context.Context, dayID uuid.UUID, name, description string) (*types.Category, error) {
	s.gotDayID, s.gotName, s.gotDesc = dayID, name, description
	return s.category, s.err
}

func (s *stubCategoryService) Update(ctx context.Context, dayID, categoryID uuid.UUID, name, description string) (*types.Category, error) {
	s.gotDayID, s.gotID, s.gotName, s.gotDesc = dayID, categoryID, name, description
	return s.category, s.err
}

func (s *stubCategoryService) SoftDelete(ctx context.Context, dayID, categoryID uuid.UUID) error {
	s.gotDayID, s.gotID = dayID, categoryID
	s.deleted = true
	return s.err
}

func (s *stubCategoryService) HardDelete(ctx context.Context, dayID, categoryID uuid.UUID) error {
	s.gotDayID, s.gotID = dayID, categoryID
	return s.err
}

type stubTargetService struct {
	target        *types.Target
	err           error
	gotDayID      uuid.UUID
	gotID         uuid.UUID
	gotName       *string
	gotImportance *uuid.UUID
	toggled       bool
	deleted       bool
}

func (s *stubTargetService) Create(ctx context.Context, dayID, categoryID, importanceID uuid.UUID, name string) (*types.Target, error) {
	s.gotDayID = dayID
	return s.target, s.err
}

func (s *stubTargetService) Update(ctx context.Context, dayID, targetID uuid.UUID, name *string, importanceID *uuid.UUID) (*types.Target, error) {
	s.gotDayID, s.gotID, s.gotName, s.gotImportance = dayID, targetID, name, importanceID
	return s.target, s.err
}

func (s *stubTargetService) ToggleAchievement(ctx context.Context, dayID, targetID uuid.UUID) (*types.Target, error) {
	s.gotDayID, s.gotID = dayID, targetID
	s.toggled = true
	return s.target, s.err
}

func (s *stubTargetService) SoftDelete(ctx context.Context, dayID, targetID uuid.UUID) error {
	s.gotDayID, s.gotID = dayID, targetID
	s.deleted = true
	return s.err
}

func (s *stubTargetService) HardDelete(ctx context.Context, dayID, targetID uuid.UUID) error {
	s.gotDayID, s.gotID = dayID, targetID
	return s.err
}

type stubImportanceService struct {
	level    *types.ImportanceLevel
	levels   []*types.ImportanceLevel
	err      error
	gotID    uuid.UUID
	gotLabel string
	gotScore int
	deleted  bool
}

func (s *stubImportanceService) List(ctx context.Context) ([]*types.ImportanceLevel, error) {
	return s.levels, s.err
}

func (s *stubImportanceService) GetByID(ctx context.Context, id uuid.UUID) (*types.ImportanceLevel, error) {
	s.gotID = id
	return s.level, s.err
}

func (s *stubImportanceService) Create(ctx context.Context, label string, score int) (*types.ImportanceLevel, error) {
	s.gotLabel, s.gotScore = label, score
	return s.level, s.err
}

func (s *stubImportanceService) Update(ctx context.Context, id uuid.UUID, label *string, score *int) (*types.ImportanceLevel, error) {
	s.gotID = id
	if label != nil {
		s.gotLabel = *label
	}
	if score != nil {
		s.gotScore = *score
	}
	return s.level, s.err
}

func (s *stubImportanceService) UpsertByLabel(ctx context.Context, label string, score int) (*types.ImportanceLevel, error) {
	s.gotLabel, s.gotScore = label, score
	return s.level, s.err
}

func (s *stubImportanceService) Delete(ctx context.Context, id uuid.UUID) error {
	s.gotID = id
	s.deleted = true
	return s.err
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env response.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error envelope: %v (body %q)", err, rec.Body.String())
	}
	return env.Error.Code
}
