package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/betterday-backend/internal/types"
)

func newImportanceRouter(svc *stubImportanceService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewImportanceHandler(svc)
	r.GET("/api/importance", h.ListImportance)
	r.POST("/api/importance", h.CreateImportance)
	r.PUT("/api/importance/:id", h.UpdateImportance)
	r.DELETE("/api/importance/:id", h.DeleteImportance)
	return r
}

func TestListImportanceWrapsLevels(t *testing.T) {
	svc := &stubImportanceService{levels: []*types.ImportanceLevel{
		{ID: uuid.New(), Label: "Low", Score: 1},
		{ID: uuid.New(), Label: "High", Score: 5},
	}}
	r := newImportanceRouter(svc)

	rec := doJSON(t, r, http.MethodGet, "/api/importance", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d want=%d", rec.Code, http.StatusOK)
	}
	var payload struct {
		Levels []*types.ImportanceLevel `json:"importance_levels"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if len(payload.Levels) != 2 {
		t.Fatalf("levels: got=%d want=2", len(payload.Levels))
	}
}

func TestCreateImportanceBindsLabelAndScore(t *testing.T) {
	svc := &stubImportanceService{level: &types.ImportanceLevel{ID: uuid.New(), Label: "Critical", Score: 9}}
	r := newImportanceRouter(svc)

	rec := doJSON(t, r, http.MethodPost, "/api/importance", `{"label":"Critical","score":9}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got=%d want=%d body=%s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if svc.gotLabel != "Critical" || svc.gotScore != 9 {
		t.Fatalf("fields: got label=%q score=%d", svc.gotLabel, svc.gotScore)
	}

	rec = doJSON(t, r, http.MethodPost, "/api/importance", `{"label":"NoScore"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status without score: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}
}

func TestDeleteImportanceMapsInUseConflict(t *testing.T) {
	svc := &stubImportanceService{err: &types.ImportanceInUseError{Label: "High", Count: 4}}
	r := newImportanceRouter(svc)

	rec := doJSON(t, r, http.MethodDelete, "/api/importance/"+uuid.New().String(), "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("status: got=%d want=%d", rec.Code, http.StatusConflict)
	}
	if code := errorCode(t, rec); code != "importance_in_use" {
		t.Fatalf("error code: got=%q want=%q", code, "importance_in_use")
	}
}

func TestUpdateImportanceRejectsBadID(t *testing.T) {
	r := newImportanceRouter(&stubImportanceService{})

	rec := doJSON(t, r, http.MethodPut, "/api/importance/nope", `{"score":3}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}
	if code := errorCode(t, rec); code != "invalid_id" {
		t.Fatalf("error code: got=%q want=%q", code, "invalid_id")
	}
}
