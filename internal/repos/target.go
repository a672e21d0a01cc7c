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

type TargetRepo interface {
	Create(dbc dbctx.Context, row *types.Target) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Target, error)
	ListByCategoryID(dbc dbctx.Context, categoryID uuid.UUID) ([]*types.Target, error)
	ListByCategoryIDs(dbc dbctx.Context, categoryIDs []uuid.UUID) ([]*types.Target, error)
	CountByImportanceID(dbc dbctx.Context, importanceID uuid.UUID) (int64, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	SoftDeleteByID(dbc dbctx.Context, id uuid.UUID) error
	// SoftDeleteByCategoryID tombstones every live target under the
	// category in one statement. Category soft-delete cascades to targets
	// at the application layer; the database only cascades hard deletes.
	SoftDeleteByCategoryID(dbc dbctx.Context, categoryID uuid.UUID) error
	FullDeleteByID(dbc dbctx.Context, id uuid.UUID) error
}

type targetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTargetRepo(db *gorm.DB, baseLog *logger.Logger) TargetRepo {
	return &targetRepo{db: db, log: baseLog.With("repo", "TargetRepo")}
}

func (r *targetRepo) dbx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func (r *targetRepo) Create(dbc dbctx.Context, row *types.Target) error {
	if row == nil {
		return nil
	}
	return r.dbx(dbc).WithContext(dbc.Ctx).Create(row).Error
}

func (r *targetRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Target, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out types.Target
	err := r.dbx(dbc).WithContext(dbc.Ctx).Where("id = ?", id).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *targetRepo) ListByCategoryID(dbc dbctx.Context, categoryID uuid.UUID) ([]*types.Target, error) {
	out := []*types.Target{}
	if categoryID == uuid.Nil {
		return out, nil
	}
	if err := r.dbx(dbc).WithContext(dbc.Ctx).
		Where("category_id = ?", categoryID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *targetRepo) ListByCategoryIDs(dbc dbctx.Context, categoryIDs []uuid.UUID) ([]*types.Target, error) {
	out := []*types.Target{}
	if len(categoryIDs) == 0 {
		return out, nil
	}
	if err := r.dbx(dbc).WithContext(dbc.Ctx).
		Where("category_id IN ?", categoryIDs).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// CountByImportanceID counts live targets referencing the importance level.
// A positive count blocks level deletion.
func (r *targetRepo) CountByImportanceID(dbc dbctx.Context, importanceID uuid.UUID) (int64, error) {
	if importanceID == uuid.Nil {
		return 0, nil
	}
	var n int64
	if err := r.dbx(dbc).WithContext(dbc.Ctx).
		Model(&types.Target{}).
		Where("importance_id = ?", importanceID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *targetRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&types.Target{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *targetRepo) SoftDeleteByID(dbc dbctx.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return nil
	}
	return r.dbx(dbc).WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&types.Target{}).Error
}

func (r *targetRepo) SoftDeleteByCategoryID(dbc dbctx.Context, categoryID uuid.UUID) error {
	if categoryID == uuid.Nil {
		return nil
	}
	return r.dbx(dbc).WithContext(dbc.Ctx).
		Where("category_id = ?", categoryID).
		Delete(&types.Target{}).Error
}

func (r *targetRepo) FullDeleteByID(dbc dbctx.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return nil
	}
	return r.dbx(dbc).WithContext(dbc.Ctx).
		Unscoped().
		Where("id = ?", id).
		Delete(&types.Target{}).Error
}
