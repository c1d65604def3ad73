package jobstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"perf-track-backend/models"
	dbmodels "perf-track-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Job) (id string, err error)
	GetByID(id string) (rec *dbmodels.Job, err error)
	Update(id string, updMap map[string]interface{}) (found bool, err error)
	ClearAssignee(userID, exceptJobID string) error
	Delete(id string) (found bool, err error)
	List() (list []dbmodels.Job, err error)
	CountByDraft() (draft, other int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Job) (id string, err error) {
	err = i.db.
		Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Job, error) {
	rec := dbmodels.Job{}
	err := i.db.
		Model(&dbmodels.Job{}).
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

func (i impl) Update(id string, updMap map[string]interface{}) (found bool, err error) {
	if len(updMap) == 0 {
		return true, nil
	}
	tx := i.db.
		Model(&dbmodels.Job{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected != 0, nil
}

// ClearAssignee severs any other job still claiming the user, at most one
// job may hold a given assignee.
func (i impl) ClearAssignee(userID, exceptJobID string) error {
	return i.db.
		Model(&dbmodels.Job{}).
		Where("assigned_to = ?", userID).
		Where("id <> ?", exceptJobID).
		Update("assigned_to", nil).
		Error
}

func (i impl) Delete(id string) (found bool, err error) {
	tx := i.db.
		Where("id = ?", id).
		Delete(&dbmodels.Job{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected != 0, nil
}

func (i impl) List() (list []dbmodels.Job, err error) {
	list = []dbmodels.Job{}
	err = i.db.
		Model(&dbmodels.Job{}).
		Preload(clause.Associations).
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) CountByDraft() (draft, other int64, err error) {
	err = i.db.
		Model(&dbmodels.Job{}).
		Where("status = ?", models.JobStatusDraft).
		Count(&draft).
		Error
	if err != nil {
		return 0, 0, err
	}
	err = i.db.
		Model(&dbmodels.Job{}).
		Where("status <> ?", models.JobStatusDraft).
		Count(&other).
		Error
	if err != nil {
		return 0, 0, err
	}
	return draft, other, nil
}
