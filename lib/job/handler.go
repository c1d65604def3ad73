package jobhandler

import (
	"gorm.io/gorm"

	"perf-track-backend/db"
	jobstore "perf-track-backend/lib/job/store"
	usersstore "perf-track-backend/lib/users/store"
	"perf-track-backend/lib/utils/apperr"
	"perf-track-backend/models"
	jobapimodels "perf-track-backend/models/api/job"
	dbmodels "perf-track-backend/models/db"
)

type Provider interface {
	Create(data jobapimodels.JobData) (id string, err error)
	Update(id string, patch jobapimodels.JobPatch) (item jobapimodels.JobView, err error)
	Delete(id string) error
	GetByID(id string) (item jobapimodels.JobView, err error)
	List() (list []jobapimodels.JobView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:     jobstore.NewInstance(db.DB),
		userStore: usersstore.NewInstance(db.DB),
		inTx: func(fn func(tx *gorm.DB) error) error {
			return db.DB.Transaction(fn)
		},
		storesFor: func(tx *gorm.DB) (jobstore.Provider, usersstore.Provider) {
			return jobstore.NewInstance(tx), usersstore.NewInstance(tx)
		},
	}
}

type impl struct {
	store     jobstore.Provider
	userStore usersstore.Provider
	// inTx runs fn inside a transaction, storesFor binds stores to it.
	// Reassignment touches both the job and user records and has to be
	// all-or-nothing.
	inTx      func(fn func(tx *gorm.DB) error) error
	storesFor func(tx *gorm.DB) (jobstore.Provider, usersstore.Provider)
}

func (i impl) Create(data jobapimodels.JobData) (id string, err error) {
	if err = data.Validate(); err != nil {
		return "", err
	}
	rec := dbmodels.Job{
		Title:       data.Title,
		Description: data.Description,
		Status:      models.JobStatusDraft,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", apperr.WrapDependency(err, "failed to create job")
	}
	return id, nil
}

// Update patches the job and keeps both sides of the assignment relation in
// step: every user still pointing at this job is detached, then the new
// assignee (if any) is attached. Any failure rolls the whole thing back.
func (i impl) Update(id string, patch jobapimodels.JobPatch) (item jobapimodels.JobView, err error) {
	if err = patch.Validate(); err != nil {
		return item, err
	}
	err = i.inTx(func(tx *gorm.DB) error {
		jobStore, userStore := i.storesFor(tx)

		updMap := map[string]interface{}{}
		if patch.Title != nil {
			updMap["title"] = *patch.Title
		}
		if patch.Description != nil {
			updMap["description"] = *patch.Description
		}
		if patch.Deadline != nil {
			updMap["deadline"] = *patch.Deadline
		}
		if patch.Status != nil {
			updMap["status"] = models.JobStatus(*patch.Status)
		}
		if patch.AssignedTo != nil {
			if *patch.AssignedTo == "" {
				updMap["assigned_to"] = nil
			} else {
				updMap["assigned_to"] = *patch.AssignedTo
			}
		}
		if len(updMap) == 0 {
			// still verify the job exists so a no-op patch reports NotFound
			rec, err := jobStore.GetByID(id)
			if err != nil {
				return apperr.WrapDependency(err, "failed to load job")
			}
			if rec == nil {
				return apperr.NewNotFound("job not found")
			}
			return nil
		}
		found, err := jobStore.Update(id, updMap)
		if err != nil {
			return apperr.WrapDependency(err, "failed to update job")
		}
		if !found {
			return apperr.NewNotFound("job not found")
		}
		if err = userStore.ClearJob(id); err != nil {
			return apperr.WrapDependency(err, "failed to detach previous assignee")
		}
		if patch.AssignedTo != nil && *patch.AssignedTo != "" {
			found, err = userStore.SetJob(*patch.AssignedTo, &id)
			if err != nil {
				return apperr.WrapDependency(err, "failed to attach assignee")
			}
			if !found {
				return apperr.NewNotFound("assignee not found")
			}
			if err = jobStore.ClearAssignee(*patch.AssignedTo, id); err != nil {
				return apperr.WrapDependency(err, "failed to release previous job of assignee")
			}
		}
		return nil
	})
	if err != nil {
		return item, err
	}
	return i.GetByID(id)
}

// Delete removes the job and detaches its users in one transaction.
func (i impl) Delete(id string) error {
	return i.inTx(func(tx *gorm.DB) error {
		jobStore, userStore := i.storesFor(tx)
		if err := userStore.ClearJob(id); err != nil {
			return apperr.WrapDependency(err, "failed to detach assignees")
		}
		found, err := jobStore.Delete(id)
		if err != nil {
			return apperr.WrapDependency(err, "failed to delete job")
		}
		if !found {
			return apperr.NewNotFound("job not found")
		}
		return nil
	})
}

func (i impl) GetByID(id string) (item jobapimodels.JobView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return item, apperr.WrapDependency(err, "failed to load job")
	}
	if rec == nil {
		return item, apperr.NewNotFound("job not found")
	}
	return rec.ToModel(), nil
}

func (i impl) List() (list []jobapimodels.JobView, err error) {
	recs, err := i.store.List()
	if err != nil {
		return nil, apperr.WrapDependency(err, "failed to list jobs")
	}
	list = make([]jobapimodels.JobView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, rec.ToModel())
	}
	return list, nil
}
