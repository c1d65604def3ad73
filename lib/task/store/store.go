package taskstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"perf-track-backend/models"
	dbmodels "perf-track-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Task) (id string, err error)
	GetByID(id string) (rec *dbmodels.Task, err error)
	GetByUserAndID(userID, id string) (rec *dbmodels.Task, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) (found bool, err error)
	List() (list []dbmodels.Task, err error)
	ListByUser(userID string) (list []dbmodels.Task, err error)
	ListByOwners(ownerIDs []string, createdFrom, createdTo *time.Time) (list []dbmodels.Task, err error)
	CountByStatus(userID string) (counts map[models.TaskStatus]int, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Task) (id string, err error) {
	err = i.db.
		Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Task, error) {
	rec := dbmodels.Task{}
	err := i.db.
		Model(&dbmodels.Task{}).
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

func (i impl) GetByUserAndID(userID, id string) (*dbmodels.Task, error) {
	rec := dbmodels.Task{}
	err := i.db.
		Model(&dbmodels.Task{}).
		Where("id = ?", id).
		Where("user_id = ?", userID).
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Task{}).
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
		Delete(&dbmodels.Task{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected != 0, nil
}

func (i impl) List() (list []dbmodels.Task, err error) {
	list = []dbmodels.Task{}
	err = i.db.
		Model(&dbmodels.Task{}).
		Preload(clause.Associations).
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByUser(userID string) (list []dbmodels.Task, err error) {
	list = []dbmodels.Task{}
	err = i.db.
		Model(&dbmodels.Task{}).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByOwners(ownerIDs []string, createdFrom, createdTo *time.Time) (list []dbmodels.Task, err error) {
	list = []dbmodels.Task{}
	if len(ownerIDs) == 0 {
		return list, nil
	}
	tx := i.db.
		Model(&dbmodels.Task{}).
		Where("user_id in ?", ownerIDs)
	if createdFrom != nil {
		tx = tx.Where("created_at >= ?", *createdFrom)
	}
	if createdTo != nil {
		tx = tx.Where("created_at < ?", *createdTo)
	}
	err = tx.
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) CountByStatus(userID string) (map[models.TaskStatus]int, error) {
	type statusCount struct {
		TaskStatus models.TaskStatus
		Total      int
	}
	rows := []statusCount{}
	err := i.db.
		Model(&dbmodels.Task{}).
		Select("task_status, count(*) as total").
		Where("user_id = ?", userID).
		Group("task_status").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	counts := make(map[models.TaskStatus]int, len(rows))
	for _, row := range rows {
		counts[row.TaskStatus] = row.Total
	}
	return counts, nil
}
