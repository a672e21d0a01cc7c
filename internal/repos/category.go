package repos

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/betterday-backend/internal/platform/dbctx"
	"github.com/yungbote/betterday-backend/internal/platform/logger"
	"github.com/yungbote/betterday-backend/internal/types"
)

type CategoryRepo interface {
	Create(dbc dbctx.Context, row *types.Category) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Category, error)
	ListByDayID(dbc dbctx.Context, dayID uuid.UUID) ([]*types.Category, error)
	// NameTakenOnDay reports whether a live category on the day already
	// uses the name, compared case-insensitively. excludeID skips the row
	// being renamed.
	NameTakenOnDay(dbc dbctx.Context, dayID uuid.UUID, name string, excludeID uuid.UUID) (bool, error)
	// NameOccupiedUnscoped reports whether any row, live or tombstoned,
	// holds the exact name on the day. The storage-level unique index
	// spans deleted rows, so a match here would fail the insert.
	NameOccupiedUnscoped(dbc dbctx.Context, dayID uuid.UUID, name string, excludeID uuid.UUID) (bool, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	SoftDeleteByID(dbc dbctx.Context, id uuid.UUID) error
	FullDeleteByID(dbc dbctx.Context, id uuid.UUID) error
}

type categoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	return &categoryRepo{db: db, log: baseLog.With("repo", "CategoryRepo")}
}

func (r *categoryRepo) dbx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func (r *categoryRepo) Create(dbc dbctx.Context, row *types.Category) error {
	if row == nil {
		return nil
	}
	return r.dbx(dbc).WithContext(dbc.Ctx).Create(row).Error
}

func (r *categoryRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Category, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out types.Category
	err := r.dbx(dbc).WithContext(dbc.Ctx).Where("id = ?", id).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *categoryRepo) ListByDayID(dbc dbctx.Context, dayID uuid.UUID) ([]*types.Category, error) {
	out := []*types.Category{}
	if dayID == uuid.Nil {
		return out, nil
	}
	if err := r.dbx(dbc).WithContext(dbc.Ctx).
		Where("day_id = ?", dayID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *categoryRepo) NameTakenOnDay(dbc dbctx.Context, dayID uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
	if dayID == uuid.Nil {
		return false, nil
	}
	q := r.dbx(dbc).WithContext(dbc.Ctx).
		Model(&types.Category{}).
		Where("day_id = ? AND LOWER(name) = LOWER(?)", dayID, name)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *categoryRepo) NameOccupiedUnscoped(dbc dbctx.Context, dayID uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
	if dayID == uuid.Nil {
		return false, nil
	}
	q := r.dbx(dbc).WithContext(dbc.Ctx).
		Unscoped().
		Model(&types.Category{}).
		Where("day_id = ? AND name = ?", dayID, name)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *categoryRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	if id == uuid.Nil {
		return nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now().UTC()
	}
	return r.dbx(dbc).WithContext(dbc.Ctx).
		Model(&types.Category{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *categoryRepo) SoftDeleteByID(dbc dbctx.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return nil
	}
	return r.dbx(dbc).WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&types.Category{}).Error
}

func (r *categoryRepo) FullDeleteByID(dbc dbctx.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return nil
	}
	return r.dbx(dbc).WithContext(dbc.Ctx).
		Unscoped().
		Where("id = ?", id).
		Delete(&types.Category{}).Error
}
