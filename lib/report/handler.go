package reporthandler

import (
	"perf-track-backend/db"
	reportstore "perf-track-backend/lib/report/store"
	usersstore "perf-track-backend/lib/users/store"
	"perf-track-backend/lib/utils/apperr"
	"perf-track-backend/models"
	reportapimodels "perf-track-backend/models/api/report"
	dbmodels "perf-track-backend/models/db"
)

type Provider interface {
	Create(data reportapimodels.ReportData) (id string, err error)
	Update(id string, patch reportapimodels.ReportPatch) (item reportapimodels.ReportView, err error)
	Delete(id string) error
	GetByID(id string) (item reportapimodels.ReportView, err error)
	List() (list []reportapimodels.ReportView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:     reportstore.NewInstance(db.DB),
		userStore: usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	store     reportstore.Provider
	userStore usersstore.Provider
}

func (i impl) Create(data reportapimodels.ReportData) (id string, err error) {
	if err = data.Validate(); err != nil {
		return "", err
	}
	owner, err := i.userStore.GetByID(data.UserID)
	if err != nil {
		return "", apperr.WrapDependency(err, "failed to load report owner")
	}
	if owner == nil {
		return "", apperr.NewNotFound("report owner not found")
	}
	existing, err := i.store.GetByUserAndPeriod(data.UserID, data.Period)
	if err != nil {
		return "", apperr.WrapDependency(err, "failed to check report uniqueness")
	}
	if existing != nil {
		return "", apperr.NewConflict("a report for this user and period already exists")
	}
	status := models.ReportStatus(data.Status)
	if status == "" {
		status = models.ReportStatusAwaitingReview
	}
	rec := dbmodels.Report{
		UserID: data.UserID,
		Period: data.Period,
		Score:  data.Score,
		Status: status,
		Review: data.Review,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", apperr.WrapDependency(err, "failed to create report")
	}
	return id, nil
}

func (i impl) Update(id string, patch reportapimodels.ReportPatch) (item reportapimodels.ReportView, err error) {
	if err = patch.Validate(); err != nil {
		return item, err
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return item, apperr.WrapDependency(err, "failed to load report")
	}
	if rec == nil {
		return item, apperr.NewNotFound("report not found")
	}
	updMap := map[string]interface{}{}
	if patch.Score != nil {
		updMap["score"] = *patch.Score
	}
	if patch.Status != nil {
		updMap["status"] = models.ReportStatus(*patch.Status)
	}
	if patch.Review != nil {
		updMap["review"] = *patch.Review
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		return item, apperr.WrapDependency(err, "failed to update report")
	}
	updated, err := i.store.GetByID(id)
	if err != nil {
		return item, apperr.WrapDependency(err, "failed to load updated report")
	}
	if updated == nil {
		return item, apperr.NewNotFound("report not found")
	}
	return updated.ToModel(), nil
}

func (i impl) Delete(id string) error {
	found, err := i.store.Delete(id)
	if err != nil {
		return apperr.WrapDependency(err, "failed to delete report")
	}
	if !found {
		return apperr.NewNotFound("report not found")
	}
	return nil
}

func (i impl) GetByID(id string) (item reportapimodels.ReportView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return item, apperr.WrapDependency(err, "failed to load report")
	}
	if rec == nil {
		return item, apperr.NewNotFound("report not found")
	}
	return rec.ToModel(), nil
}

func (i impl) List() (list []reportapimodels.ReportView, err error) {
	recs, err := i.store.List()
	if err != nil {
		return nil, apperr.WrapDependency(err, "failed to list reports")
	}
	list = make([]reportapimodels.ReportView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, rec.ToModel())
	}
	return list, nil
}
