package repos

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/betterday-backend/internal/platform/dbctx"
	"github.com/yungbote/betterday-backend/internal/platform/logger"
	"github.com/yungbote/betterday-backend/internal/types"
)

type DayRepo interface {
	Create(dbc dbctx.Context, row *types.Day) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Day, error)
	GetByDate(dbc dbctx.Context, date datatypes.Date) (*types.Day, error)
	// GetByDateUnscoped also matches soft-deleted rows. The date column is
	// unique over all rows, so a tombstoned day still owns its slot.
	GetByDateUnscoped(dbc dbctx.Context, date datatypes.Date) (*types.Day, error)
	// GetLatestBefore returns the most recent live day strictly earlier
	// than date, or nil when the given date is the earliest.
	GetLatestBefore(dbc dbctx.Context, date datatypes.Date) (*types.Day, error)
	ListAll(dbc dbctx.Context) ([]*types.Day, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	Restore(dbc dbctx.Context, id uuid.UUID) error
	SoftDeleteByID(dbc dbctx.Context, id uuid.UUID) error
}

type dayRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDayRepo(db *gorm.DB, baseLog *logger.Logger) DayRepo {
	return &dayRepo{db: db, log: baseLog.With("repo", "DayRepo")}
}

func (r *dayRepo) dbx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func (r *dayRepo) Create(dbc dbctx.Context, row *types.Day) error {
	if row == nil {
		return nil
	}
	return r.dbx(dbc).WithContext(dbc.Ctx).Create(row).Error
}

func (r *dayRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Day, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out types.Day
	err := r.dbx(dbc).WithContext(dbc.Ctx).Where("id = ?", id).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *dayRepo) GetByDate(dbc dbctx.Context, date datatypes.Date) (*types.Day, error) {
	var out types.Day
	err := r.dbx(dbc).WithContext(dbc.Ctx).Where("date = ?", date).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *dayRepo) GetByDateUnscoped(dbc dbctx.Context, date datatypes.Date) (*types.Day, error) {
	var out types.Day
	err := r.dbx(dbc).WithContext(dbc.Ctx).Unscoped().Where("date = ?", date).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *dayRepo) GetLatestBefore(dbc dbctx.Context, date datatypes.Date) (*types.Day, error) {
	var out types.Day
	err := r.dbx(dbc).WithContext(dbc.Ctx).
		Where("date < ?", date).
		Order("date DESC").
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *dayRepo) ListAll(dbc dbctx.Context) ([]*types.Day, error) {
	out := []*types.Day{}
	if err := r.dbx(dbc).WithContext(dbc.Ctx).
		Order("date ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *dayRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&types.Day{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *dayRepo) Restore(dbc dbctx.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return nil
	}
	return r.dbx(dbc).WithContext(dbc.Ctx).
		Unscoped().
		Model(&types.Day{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"deleted_at": nil,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *dayRepo) SoftDeleteByID(dbc dbctx.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return nil
	}
	return r.dbx(dbc).WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&types.Day{}).Error
}
