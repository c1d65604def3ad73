package reportstore

import (
	"fmt"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbmodels "perf-track-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Report) (id string, err error)
	GetByID(id string) (rec *dbmodels.Report, err error)
	GetByUserAndPeriod(userID, period string) (rec *dbmodels.Report, err error)
	GetLatestByUser(userID string) (rec *dbmodels.Report, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) (found bool, err error)
	List() (list []dbmodels.Report, err error)
	ListByUserAndYear(userID string, year int) (list []dbmodels.Report, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Report) (id string, err error) {
	err = i.db.
		Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Report, error) {
	rec := dbmodels.Report{}
	err := i.db.
		Model(&dbmodels.Report{}).
		Where("id = ?", id).
		Preload(clause.Associations).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetByUserAndPeriod(userID, period string) (*dbmodels.Report, error) {
	rec := dbmodels.Report{}
	err := i.db.
		Model(&dbmodels.Report{}).
		Where("user_id = ?", userID).
		Where("period = ?", period).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// GetLatestByUser picks the newest report, period first so backfilled rows
// do not win over the actual latest month.
func (i impl) GetLatestByUser(userID string) (*dbmodels.Report, error) {
	rec := dbmodels.Report{}
	err := i.db.
		Model(&dbmodels.Report{}).
		Where("user_id = ?", userID).
		Order("period desc").
		Order("created_at desc").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Report{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (i impl) Delete(id string) (found bool, err error) {
	tx := i.db.
		Where("id = ?", id).
		Delete(&dbmodels.Report{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected != 0, nil
}

func (i impl) List() (list []dbmodels.Report, err error) {
	list = []dbmodels.Report{}
	err = i.db.
		Model(&dbmodels.Report{}).
		Preload(clause.Associations).
		Order("period desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByUserAndYear(userID string, year int) (list []dbmodels.Report, err error) {
	list = []dbmodels.Report{}
	err = i.db.
		Model(&dbmodels.Report{}).
		Where("user_id = ?", userID).
		Where("period like ?", formatYearPrefix(year)).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func formatYearPrefix(year int) string {
	return fmt.Sprintf("%04d-%%", year)
}
