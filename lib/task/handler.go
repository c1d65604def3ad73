package taskhandler

import (
	"context"
	"encoding/json"

	log "github.com/sirupsen/logrus"

	"perf-track-backend/db"
	filestorage "perf-track-backend/lib/file-storage"
	jobstore "perf-track-backend/lib/job/store"
	taskstore "perf-track-backend/lib/task/store"
	usersstore "perf-track-backend/lib/users/store"
	"perf-track-backend/lib/utils/apperr"
	initchecker "perf-track-backend/lib/utils/init-checker"
	"perf-track-backend/models"
	taskapimodels "perf-track-backend/models/api/task"
	dbmodels "perf-track-backend/models/db"
)

type Provider interface {
	Create(data taskapimodels.TaskData) (id string, err error)
	Update(id string, patch taskapimodels.TaskPatch) (item taskapimodels.TaskView, err error)
	AttachEvidence(ctx context.Context, id, fileName string, file []byte) (item taskapimodels.TaskView, err error)
	GetEvidence(ctx context.Context, id string) (file []byte, err error)
	SetBiasCheck(id string, result json.RawMessage) error
	Delete(id string) error
	GetByID(id string) (item taskapimodels.TaskView, err error)
	GetByUserAndID(userID, id string) (item taskapimodels.TaskView, err error)
	List(filter taskapimodels.TaskFilter) (list []taskapimodels.TaskView, err error)
	ListByUser(userID string) (list []taskapimodels.TaskView, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:       taskstore.NewInstance(db.DB),
		userStore:   usersstore.NewInstance(db.DB),
		jobStore:    jobstore.NewInstance(db.DB),
		fileStorage: filestorage.Instance,
	}
	initchecker.CheckInit(
		"fileStorage", instance.fileStorage,
	)
	Instance = instance
}

type impl struct {
	store       taskstore.Provider
	userStore   usersstore.Provider
	jobStore    jobstore.Provider
	fileStorage filestorage.Provider
}

func (i impl) Create(data taskapimodels.TaskData) (id string, err error) {
	if err = data.Validate(); err != nil {
		return "", err
	}
	owner, err := i.userStore.GetByID(data.UserID)
	if err != nil {
		return "", apperr.WrapDependency(err, "failed to load task owner")
	}
	if owner == nil {
		return "", apperr.NewNotFound("task owner not found")
	}
	rec := dbmodels.Task{
		UserID:      data.UserID,
		Title:       data.Title,
		Description: data.Description,
		KPIs:        toDBKPIs(data.KPIs),
		Score:       0,
		Evidence:    "",
		StartDate:   data.StartDate,
		EndDate:     data.EndDate,
		TaskStatus:  models.TaskStatusDraft,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", apperr.WrapDependency(err, "failed to create task")
	}
	return id, nil
}

func (i impl) Update(id string, patch taskapimodels.TaskPatch) (item taskapimodels.TaskView, err error) {
	if err = patch.Validate(); err != nil {
		return item, err
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return item, apperr.WrapDependency(err, "failed to load task")
	}
	if rec == nil {
		return item, apperr.NewNotFound("task not found")
	}
	updMap := map[string]interface{}{}
	if patch.UserID != nil {
		owner, err := i.userStore.GetByID(*patch.UserID)
		if err != nil {
			return item, apperr.WrapDependency(err, "failed to load task owner")
		}
		if owner == nil {
			return item, apperr.NewNotFound("task owner not found")
		}
		updMap["user_id"] = *patch.UserID
	}
	if patch.Title != nil {
		updMap["title"] = *patch.Title
	}
	if patch.Description != nil {
		updMap["description"] = *patch.Description
	}
	if patch.KPIs != nil {
		updMap["kpis"] = toDBKPIs(patch.KPIs)
	}
	if patch.Score != nil {
		updMap["score"] = *patch.Score
	}
	if patch.StartDate != nil {
		updMap["start_date"] = *patch.StartDate
	}
	if patch.EndDate != nil {
		updMap["end_date"] = *patch.EndDate
	}
	if patch.SupervisorComment != nil {
		updMap["supervisor_comment"] = *patch.SupervisorComment
	}
	if patch.TaskStatus != nil {
		next := models.TaskStatus(*patch.TaskStatus)
		if !rec.TaskStatus.CanTransitionTo(next) {
			return item, apperr.NewValidation("illegal status transition from " + string(rec.TaskStatus) + " to " + string(next))
		}
		updMap["task_status"] = next
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		return item, apperr.WrapDependency(err, "failed to update task")
	}
	updated, err := i.store.GetByID(id)
	if err != nil {
		return item, apperr.WrapDependency(err, "failed to load updated task")
	}
	if updated == nil {
		return item, apperr.NewNotFound("task not found")
	}
	return updated.ToModel(), nil
}

func (i impl) AttachEvidence(ctx context.Context, id, fileName string, file []byte) (item taskapimodels.TaskView, err error) {
	if len(file) == 0 {
		return item, apperr.NewValidation("evidence file is required")
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return item, apperr.WrapDependency(err, "failed to load task")
	}
	if rec == nil {
		return item, apperr.NewNotFound("task not found")
	}
	// replacing evidence drops the previous object best-effort, an orphaned
	// file must not fail the update
	if rec.Evidence != "" {
		if delErr := i.fileStorage.DeleteEvidence(ctx, rec.Evidence); delErr != nil {
			log.WithField("task_id", id).WithError(delErr).Warn("failed to delete replaced evidence file")
		}
	}
	fileKey, err := i.fileStorage.UploadEvidence(ctx, id, fileName, file)
	if err != nil {
		return item, apperr.WrapDependency(err, "failed to store evidence file")
	}
	err = i.store.Update(id, map[string]interface{}{"evidence": fileKey})
	if err != nil {
		return item, apperr.WrapDependency(err, "failed to update task evidence")
	}
	rec.Evidence = fileKey
	view := rec.ToModel()
	view.EvidencePath = i.fileStorage.EvidencePath(id)
	return view, nil
}

func (i impl) GetEvidence(ctx context.Context, id string) ([]byte, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, apperr.WrapDependency(err, "failed to load task")
	}
	if rec == nil {
		return nil, apperr.NewNotFound("task not found")
	}
	if rec.Evidence == "" {
		return nil, apperr.NewNotFound("task has no evidence attached")
	}
	file, err := i.fileStorage.GetEvidence(ctx, rec.Evidence)
	if err != nil {
		return nil, apperr.WrapDependency(err, "failed to fetch evidence file")
	}
	return file, nil
}

// SetBiasCheck persists the raw result of the external bias classification.
// The blob is never interpreted here.
func (i impl) SetBiasCheck(id string, result json.RawMessage) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return apperr.WrapDependency(err, "failed to load task")
	}
	if rec == nil {
		return apperr.NewNotFound("task not found")
	}
	err = i.store.Update(id, map[string]interface{}{"bias_check": dbmodels.BiasCheckResult(result)})
	if err != nil {
		return apperr.WrapDependency(err, "failed to store bias check result")
	}
	return nil
}

func (i impl) Delete(id string) error {
	found, err := i.store.Delete(id)
	if err != nil {
		return apperr.WrapDependency(err, "failed to delete task")
	}
	if !found {
		return apperr.NewNotFound("task not found")
	}
	return nil
}

func (i impl) GetByID(id string) (item taskapimodels.TaskView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return item, apperr.WrapDependency(err, "failed to load task")
	}
	if rec == nil {
		return item, apperr.NewNotFound("task not found")
	}
	return rec.ToModel(), nil
}

func (i impl) GetByUserAndID(userID, id string) (item taskapimodels.TaskView, err error) {
	rec, err := i.store.GetByUserAndID(userID, id)
	if err != nil {
		return item, apperr.WrapDependency(err, "failed to load task")
	}
	if rec == nil {
		return item, apperr.NewNotFound("task not found")
	}
	return rec.ToModel(), nil
}

// List returns all tasks, optionally narrowed to the owners of a job. The
// job filter resolves the job's current assignee set first.
func (i impl) List(filter taskapimodels.TaskFilter) (list []taskapimodels.TaskView, err error) {
	if filter.UserID != "" {
		return i.ListByUser(filter.UserID)
	}
	var recs []dbmodels.Task
	if filter.JobID != "" {
		members, err := i.userStore.ListByJob(filter.JobID)
		if err != nil {
			return nil, apperr.WrapDependency(err, "failed to resolve job members")
		}
		if len(members) == 0 {
			// distinguish an unknown job from a job with no assignee
			job, err := i.jobStore.GetByID(filter.JobID)
			if err != nil {
				return nil, apperr.WrapDependency(err, "failed to load job")
			}
			if job == nil {
				return nil, apperr.NewNotFound("job not found")
			}
			return []taskapimodels.TaskView{}, nil
		}
		ownerIDs := make([]string, 0, len(members))
		for _, member := range members {
			ownerIDs = append(ownerIDs, member.ID)
		}
		recs, err = i.store.ListByOwners(ownerIDs, nil, nil)
		if err != nil {
			return nil, apperr.WrapDependency(err, "failed to list tasks")
		}
	} else {
		recs, err = i.store.List()
		if err != nil {
			return nil, apperr.WrapDependency(err, "failed to list tasks")
		}
	}
	return toViews(recs), nil
}

func (i impl) ListByUser(userID string) (list []taskapimodels.TaskView, err error) {
	recs, err := i.store.ListByUser(userID)
	if err != nil {
		return nil, apperr.WrapDependency(err, "failed to list tasks")
	}
	return toViews(recs), nil
}

func toViews(recs []dbmodels.Task) []taskapimodels.TaskView {
	list := make([]taskapimodels.TaskView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, rec.ToModel())
	}
	return list
}

func toDBKPIs(kpis []taskapimodels.KPI) dbmodels.TaskKPIs {
	result := make(dbmodels.TaskKPIs, 0, len(kpis))
	for _, kpi := range kpis {
		result = append(result, dbmodels.TaskKPI{
			KPITitle:     kpi.KPITitle,
			TargetAmount: kpi.TargetAmount,
			Operator:     models.KPIOperator(kpi.Operator),
		})
	}
	return result
}
