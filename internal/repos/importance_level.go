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

type ImportanceLevelRepo interface {
	Create(dbc dbctx.Context, row *types.ImportanceLevel) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.ImportanceLevel, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.ImportanceLevel, error)
	GetByLabel(dbc dbctx.Context, label string) (*types.ImportanceLevel, error)
	List(dbc dbctx.Context) ([]*types.ImportanceLevel, error)
	// MaxScore returns the highest score across all levels, or 0 when no
	// levels exist. Always read fresh; every max_score in the system is
	// derived from this value.
	MaxScore(dbc dbctx.Context) (int, error)
	LabelTaken(dbc dbctx.Context, label string, excludeID uuid.UUID) (bool, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	FullDeleteByID(dbc dbctx.Context, id uuid.UUID) error
}

type importanceLevelRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewImportanceLevelRepo(db *gorm.DB, baseLog *logger.Logger) ImportanceLevelRepo {
	return &importanceLevelRepo{db: db, log: baseLog.With("repo", "ImportanceLevelRepo")}
}

func (r *importanceLevelRepo) dbx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func (r *importanceLevelRepo) Create(dbc dbctx.Context, row *types.ImportanceLevel) error {
	if row == nil {
		return nil
	}
	return r.dbx(dbc).WithContext(dbc.Ctx).Create(row).Error
}

func (r *importanceLevelRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.ImportanceLevel, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out types.ImportanceLevel
	err := r.dbx(dbc).WithContext(dbc.Ctx).Where("id = ?", id).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *importanceLevelRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.ImportanceLevel, error) {
	out := []*types.ImportanceLevel{}
	if len(ids) == 0 {
		return out, nil
	}
	if err := r.dbx(dbc).WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *importanceLevelRepo) GetByLabel(dbc dbctx.Context, label string) (*types.ImportanceLevel, error) {
	var out types.ImportanceLevel
	err := r.dbx(dbc).WithContext(dbc.Ctx).Where("LOWER(label) = LOWER(?)", label).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *importanceLevelRepo) List(dbc dbctx.Context) ([]*types.ImportanceLevel, error) {
	out := []*types.ImportanceLevel{}
	if err := r.dbx(dbc).WithContext(dbc.Ctx).
		Order("score ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *importanceLevelRepo) MaxScore(dbc dbctx.Context) (int, error) {
	var max int
	if err := r.dbx(dbc).WithContext(dbc.Ctx).
		Model(&types.ImportanceLevel{}).
		Select("COALESCE(MAX(score), 0)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return max, nil
}

func (r *importanceLevelRepo) LabelTaken(dbc dbctx.Context, label string, excludeID uuid.UUID) (bool, error) {
	q := r.dbx(dbc).WithContext(dbc.Ctx).
		Model(&types.ImportanceLevel{}).
		Where("LOWER(label) = LOWER(?)", label)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *importanceLevelRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&types.ImportanceLevel{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *importanceLevelRepo) FullDeleteByID(dbc dbctx.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return nil
	}
	return r.dbx(dbc).WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&types.ImportanceLevel{}).Error
}
