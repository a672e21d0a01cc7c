package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/betterday-backend/internal/platform/dbctx"
	"github.com/yungbote/betterday-backend/internal/repos/testutil"
	"github.com/yungbote/betterday-backend/internal/types"
)

func TestImportanceLevelRepo(t *testing.T) {
	db := testutil.DB(t)
	dbc := dbctx.New(context.Background())
	repo := NewImportanceLevelRepo(db, testutil.Logger(t))

	low := &types.ImportanceLevel{Label: "Low", Score: 1}
	mid := &types.ImportanceLevel{Label: "Medium", Score: 3}
	high := &types.ImportanceLevel{Label: "High", Score: 5}
	for _, row := range []*types.ImportanceLevel{high, low, mid} {
		if err := repo.Create(dbc, row); err != nil {
			t.Fatalf("Create %s: %v", row.Label, err)
		}
	}

	if got, err := repo.GetByID(dbc, mid.ID); err != nil || got == nil || got.Score != 3 {
		t.Fatalf("GetByID: got=%v err=%v", got, err)
	}
	if rows, err := repo.GetByIDs(dbc, []uuid.UUID{low.ID, high.ID}); err != nil || len(rows) != 2 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(rows))
	}
	if got, err := repo.GetByLabel(dbc, "HIGH"); err != nil || got == nil || got.ID != high.ID {
		t.Fatalf("GetByLabel case-insensitive: got=%v err=%v", got, err)
	}

	rows, err := repo.List(dbc)
	if err != nil || len(rows) != 3 {
		t.Fatalf("List: err=%v len=%d", err, len(rows))
	}
	if rows[0].Label != "Low" || rows[2].Label != "High" {
		t.Fatalf("List order: got %s..%s, want Low..High", rows[0].Label, rows[2].Label)
	}

	if max, err := repo.MaxScore(dbc); err != nil || max != 5 {
		t.Fatalf("MaxScore: max=%d err=%v", max, err)
	}

	if taken, err := repo.LabelTaken(dbc, "medium", uuid.Nil); err != nil || !taken {
		t.Fatalf("LabelTaken case-insensitive: taken=%v err=%v", taken, err)
	}
	if taken, err := repo.LabelTaken(dbc, "Medium", mid.ID); err != nil || taken {
		t.Fatalf("LabelTaken excluding self: taken=%v err=%v", taken, err)
	}

	if err := repo.UpdateFields(dbc, high.ID, map[string]interface{}{"score": 9}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if max, err := repo.MaxScore(dbc); err != nil || max != 9 {
		t.Fatalf("MaxScore after update: max=%d err=%v", max, err)
	}

	if err := repo.FullDeleteByID(dbc, high.ID); err != nil {
		t.Fatalf("FullDeleteByID: %v", err)
	}
	if max, err := repo.MaxScore(dbc); err != nil || max != 3 {
		t.Fatalf("MaxScore after delete: max=%d err=%v", max, err)
	}
}

func TestImportanceLevelRepoMaxScoreEmpty(t *testing.T) {
	db := testutil.DB(t)
	dbc := dbctx.New(context.Background())
	repo := NewImportanceLevelRepo(db, testutil.Logger(t))

	if max, err := repo.MaxScore(dbc); err != nil || max != 0 {
		t.Fatalf("MaxScore on empty table: max=%d err=%v", max, err)
	}
}
