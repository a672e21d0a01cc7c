package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/betterday-backend/internal/repos/testutil"
	"github.com/yungbote/betterday-backend/internal/types"
)

func TestCategoryCreateRecomputesWholeDay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	high := env.seedLevel(t, "High", 5)
	day, err := env.days.GetOrCreateByDate(ctx, testutil.Date(2025, 3, 10))
	if err != nil {
		t.Fatalf("GetOrCreateByDate: %v", err)
	}
	health, err := env.categories.Create(ctx, day.ID, "Health", "")
	if err != nil {
		t.Fatalf("create Health: %v", err)
	}

	// Written behind the service's back, so the day cache is stale until
	// the next mutation recomputes bottom-up.
	env.seedTarget(t, health.ID, high.ID, "run", true)

	finance, err := env.categories.Create(ctx, day.ID, "Finance", "")
	if err != nil {
		t.Fatalf("create Finance: %v", err)
	}
	if score, max := scorePair(finance.Score, finance.MaxScore); score != 0 || max != 0 {
		t.Fatalf("new category pair: want (0, 0) got (%d, %d)", score, max)
	}
	if score, max := scorePair(env.reloadDay(t, day.ID).Score, env.reloadDay(t, day.ID).MaxScore); score != 5 || max != 5 {
		t.Fatalf("day pair: want (5, 5) got (%d, %d)", score, max)
	}
}

func TestCategoryNamesAreExclusivePerDay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	day, err := env.days.GetOrCreateByDate(ctx, testutil.Date(2025, 3, 10))
	if err != nil {
		t.Fatalf("GetOrCreateByDate: %v", err)
	}
	health, err := env.categories.Create(ctx, day.ID, "Health", "")
	if err != nil {
		t.Fatalf("create Health: %v", err)
	}

	var ve *types.ValidationError
	if _, err := env.categories.Create(ctx, day.ID, "health", ""); !errors.As(err, &ve) {
		t.Fatalf("live duplicate: want ValidationError got %v", err)
	}

	// The same name is free on another day.
	other, err := env.days.GetOrCreateByDate(ctx, testutil.Date(2025, 3, 12))
	if err != nil {
		t.Fatalf("GetOrCreateByDate other: %v", err)
	}
	carried := env.categoriesByName(t, other.ID)
	if carried["Health"] == nil {
		t.Fatalf("carry-forward should have placed Health on the other day")
	}

	// A tombstone keeps holding its exact spelling; only that spelling
	// stays blocked.
	if err := env.categories.SoftDelete(ctx, day.ID, health.ID); err != nil {
		t.Fatalf("soft delete Health: %v", err)
	}
	if _, err := env.categories.Create(ctx, day.ID, "Health", ""); !errors.As(err, &ve) {
		t.Fatalf("tombstoned slot: want ValidationError got %v", err)
	}
	if _, err := env.categories.Create(ctx, day.ID, "HEALTH", ""); err != nil {
		t.Fatalf("differently-spelled name after tombstone: %v", err)
	}
}

func TestCategoryCreateValidatesNames(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	day, err := env.days.GetOrCreateByDate(ctx, testutil.Date(2025, 3, 10))
	if err != nil {
		t.Fatalf("GetOrCreateByDate: %v", err)
	}

	var ve *types.ValidationError
	if _, err := env.categories.Create(ctx, day.ID, "   ", ""); !errors.As(err, &ve) {
		t.Fatalf("blank name: want ValidationError got %v", err)
	}
	if _, err := env.categories.Create(ctx, day.ID, strings.Repeat("x", 201), ""); !errors.As(err, &ve) {
		t.Fatalf("oversized name: want ValidationError got %v", err)
	}

	created, err := env.categories.Create(ctx, day.ID, "  Health  ", " keep moving ")
	if err != nil {
		t.Fatalf("create with padding: %v", err)
	}
	if created.Name != "Health" || created.Description != "keep moving" {
		t.Fatalf("fields not trimmed: name=%q description=%q", created.Name, created.Description)
	}
}

func TestCategoryUpdateRenames(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	day, err := env.days.GetOrCreateByDate(ctx, testutil.Date(2025, 3, 10))
	if err != nil {
		t.Fatalf("GetOrCreateByDate: %v", err)
	}
	health, err := env.categories.Create(ctx, day.ID, "Health", "old")
	if err != nil {
		t.Fatalf("create Health: %v", err)
	}
	if _, err := env.categories.Create(ctx, day.ID, "Finance", ""); err != nil {
		t.Fatalf("create Finance: %v", err)
	}

	renamed, err := env.categories.Update(ctx, day.ID, health.ID, "Wellness", "new")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if renamed.Name != "Wellness" || renamed.Description != "new" {
		t.Fatalf("rename result: name=%q description=%q", renamed.Name, renamed.Description)
	}

	// Keeping the name while editing the description is not a collision
	// with itself.
	if _, err := env.categories.Update(ctx, day.ID, health.ID, "Wellness", "newer"); err != nil {
		t.Fatalf("same-name update: %v", err)
	}

	var ve *types.ValidationError
	if _, err := env.categories.Update(ctx, day.ID, health.ID, "finance", ""); !errors.As(err, &ve) {
		t.Fatalf("rename collision: want ValidationError got %v", err)
	}
}

func TestCategorySoftDeleteTombstonesItsTargets(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	high := env.seedLevel(t, "High", 5)
	day, err := env.days.GetOrCreateByDate(ctx, testutil.Date(2025, 3, 10))
	if err != nil {
		t.Fatalf("GetOrCreateByDate: %v", err)
	}
	health, err := env.categories.Create(ctx, day.ID, "Health", "")
	if err != nil {
		t.Fatalf("create Health: %v", err)
	}
	run, err := env.targets.Create(ctx, day.ID, health.ID, high.ID, "run")
	if err != nil {
		t.Fatalf("create run: %v", err)
	}
	if _, err := env.targets.Create(ctx, day.ID, health.ID, high.ID, "stretch"); err != nil {
		t.Fatalf("create stretch: %v", err)
	}
	if _, err := env.targets.ToggleAchievement(ctx, day.ID, run.ID); err != nil {
		t.Fatalf("toggle run: %v", err)
	}
	if score, max := scorePair(env.reloadDay(t, day.ID).Score, env.reloadDay(t, day.ID).MaxScore); score != 5 || max != 10 {
		t.Fatalf("pre-delete day pair: want (5, 10) got (%d, %d)", score, max)
	}

	if err := env.categories.SoftDelete(ctx, day.ID, health.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}

	if live := env.categoriesByName(t, day.ID); len(live) != 0 {
		t.Fatalf("category still listed after soft delete: %v", live)
	}
	var rows []types.Target
	if err := env.db.Unscoped().Where("category_id = ?", health.ID).Find(&rows).Error; err != nil {
		t.Fatalf("unscoped target query: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("tombstoned targets: want 2 rows got %d", len(rows))
	}
	for _, row := range rows {
		if !row.DeletedAt.Valid {
			t.Fatalf("target %q was not tombstoned", row.Name)
		}
	}
	if score, max := scorePair(env.reloadDay(t, day.ID).Score, env.reloadDay(t, day.ID).MaxScore); score != 0 || max != 0 {
		t.Fatalf("post-delete day pair: want (0, 0) got (%d, %d)", score, max)
	}
}

func TestCategoryHardDeleteDropsTargetRows(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	high := env.seedLevel(t, "High", 5)
	day, err := env.days.GetOrCreateByDate(ctx, testutil.Date(2025, 3, 10))
	if err != nil {
		t.Fatalf("GetOrCreateByDate: %v", err)
	}
	health, err := env.categories.Create(ctx, day.ID, "Health", "")
	if err != nil {
		t.Fatalf("create Health: %v", err)
	}
	if _, err := env.targets.Create(ctx, day.ID, health.ID, high.ID, "run"); err != nil {
		t.Fatalf("create run: %v", err)
	}

	if err := env.categories.HardDelete(ctx, day.ID, health.ID); err != nil {
		t.Fatalf("HardDelete: %v", err)
	}

	var categoryCount int64
	if err := env.db.Unscoped().Model(&types.Category{}).Where("id = ?", health.ID).Count(&categoryCount).Error; err != nil {
		t.Fatalf("unscoped category count: %v", err)
	}
	if categoryCount != 0 {
		t.Fatalf("category row survived hard delete")
	}
	var targetCount int64
	if err := env.db.Unscoped().Model(&types.Target{}).Where("category_id = ?", health.ID).Count(&targetCount).Error; err != nil {
		t.Fatalf("unscoped target count: %v", err)
	}
	if targetCount != 0 {
		t.Fatalf("target rows survived the cascade: %d", targetCount)
	}
	if score, max := scorePair(env.reloadDay(t, day.ID).Score, env.reloadDay(t, day.ID).MaxScore); score != 0 || max != 0 {
		t.Fatalf("post-delete day pair: want (0, 0) got (%d, %d)", score, max)
	}
}

func TestCategoryOperationsEnforceDayScope(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	day1 := env.seedDay(t, testutil.Date(2025, 3, 10))
	day2 := env.seedDay(t, testutil.Date(2025, 3, 11))
	health := env.seedCategory(t, day1.ID, "Health")

	var scope *types.ScopeError
	if _, err := env.categories.Update(ctx, day2.ID, health.ID, "Health", ""); !errors.As(err, &scope) {
		t.Fatalf("Update across days: want ScopeError got %v", err)
	}
	if err := env.categories.SoftDelete(ctx, day2.ID, health.ID); !errors.As(err, &scope) {
		t.Fatalf("SoftDelete across days: want ScopeError got %v", err)
	}
	if err := env.categories.HardDelete(ctx, day2.ID, health.ID); !errors.As(err, &scope) {
		t.Fatalf("HardDelete across days: want ScopeError got %v", err)
	}

	var notFound *types.NotFoundError
	if _, err := env.categories.Create(ctx, uuid.New(), "Health", ""); !errors.As(err, &notFound) {
		t.Fatalf("Create on unknown day: want NotFoundError got %v", err)
	}
	if _, err := env.categories.Update(ctx, day1.ID, uuid.New(), "Health", ""); !errors.As(err, &notFound) {
		t.Fatalf("Update unknown category: want NotFoundError got %v", err)
	}
}
