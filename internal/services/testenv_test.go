package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/betterday-backend/internal/platform/dbctx"
	"github.com/yungbote/betterday-backend/internal/repos"
	"github.com/yungbote/betterday-backend/internal/repos/testutil"
	"github.com/yungbote/betterday-backend/internal/types"
)

// testEnv wires the real service graph over a throwaway database so tests
// run the same code paths the handlers do.
type testEnv struct {
	db             *gorm.DB
	dayRepo        repos.DayRepo
	categoryRepo   repos.CategoryRepo
	targetRepo     repos.TargetRepo
	importanceRepo repos.ImportanceLevelRepo
	engine         ScoreService
	days           DayService
	categories     CategoryService
	targets        TargetService
	importance     ImportanceService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	env := &testEnv{
		db:             db,
		dayRepo:        repos.NewDayRepo(db, log),
		categoryRepo:   repos.NewCategoryRepo(db, log),
		targetRepo:     repos.NewTargetRepo(db, log),
		importanceRepo: repos.NewImportanceLevelRepo(db, log),
	}
	env.engine = NewScoreService(log, env.dayRepo, env.categoryRepo, env.targetRepo, env.importanceRepo)
	env.days = NewDayService(db, log, env.dayRepo, env.categoryRepo, env.targetRepo, env.engine)
	env.categories = NewCategoryService(db, log, env.dayRepo, env.categoryRepo, env.targetRepo, env.engine)
	env.targets = NewTargetService(db, log, env.dayRepo, env.categoryRepo, env.targetRepo, env.importanceRepo, env.engine)
	env.importance = NewImportanceService(db, log, env.importanceRepo, env.targetRepo, env.engine)
	return env
}

func (e *testEnv) dbc() dbctx.Context {
	return dbctx.New(context.Background())
}

// Seed helpers write through the repos directly so engine tests control
// exactly what is on disk before a recompute runs.
func (e *testEnv) seedDay(t *testing.T, date datatypes.Date) *types.Day {
	t.Helper()
	day := &types.Day{Date: date}
	if err := e.dayRepo.Create(e.dbc(), day); err != nil {
		t.Fatalf("seed day: %v", err)
	}
	return day
}

func (e *testEnv) seedCategory(t *testing.T, dayID uuid.UUID, name string) *types.Category {
	t.Helper()
	category := &types.Category{DayID: dayID, Name: name}
	if err := e.categoryRepo.Create(e.dbc(), category); err != nil {
		t.Fatalf("seed category %s: %v", name, err)
	}
	return category
}

func (e *testEnv) seedTarget(t *testing.T, categoryID, importanceID uuid.UUID, name string, achieved bool) *types.Target {
	t.Helper()
	target := &types.Target{CategoryID: categoryID, ImportanceID: importanceID, Name: name, IsAchieved: achieved}
	if err := e.targetRepo.Create(e.dbc(), target); err != nil {
		t.Fatalf("seed target %s: %v", name, err)
	}
	return target
}

func (e *testEnv) seedLevel(t *testing.T, label string, score int) *types.ImportanceLevel {
	t.Helper()
	level := &types.ImportanceLevel{Label: label, Score: score}
	if err := e.importanceRepo.Create(e.dbc(), level); err != nil {
		t.Fatalf("seed level %s: %v", label, err)
	}
	return level
}

func (e *testEnv) reloadDay(t *testing.T, id uuid.UUID) *types.Day {
	t.Helper()
	day, err := e.dayRepo.GetByID(e.dbc(), id)
	if err != nil {
		t.Fatalf("reload day: %v", err)
	}
	if day == nil {
		t.Fatalf("reload day: %s is gone", id)
	}
	return day
}

func (e *testEnv) reloadCategory(t *testing.T, id uuid.UUID) *types.Category {
	t.Helper()
	category, err := e.categoryRepo.GetByID(e.dbc(), id)
	if err != nil {
		t.Fatalf("reload category: %v", err)
	}
	if category == nil {
		t.Fatalf("reload category: %s is gone", id)
	}
	return category
}

func (e *testEnv) reloadTarget(t *testing.T, id uuid.UUID) *types.Target {
	t.Helper()
	target, err := e.targetRepo.GetByID(e.dbc(), id)
	if err != nil {
		t.Fatalf("reload target: %v", err)
	}
	if target == nil {
		t.Fatalf("reload target: %s is gone", id)
	}
	return target
}

func (e *testEnv) categoriesByName(t *testing.T, dayID uuid.UUID) map[string]*types.Category {
	t.Helper()
	rows, err := e.categoryRepo.ListByDayID(e.dbc(), dayID)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	out := make(map[string]*types.Category, len(rows))
	for _, c := range rows {
		out[c.Name] = c
	}
	return out
}

// scorePair reads the cached pair with nil collapsed to zero, matching how
// the day sum treats missing caches.
func scorePair(score, max *int) (int, int) {
	return intOr0(score), intOr0(max)
}
