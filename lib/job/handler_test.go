package jobhandler

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	jobstore "perf-track-backend/lib/job/store"
	usersstore "perf-track-backend/lib/users/store"
	"perf-track-backend/lib/utils/apperr"
	"perf-track-backend/models"
	jobapimodels "perf-track-backend/models/api/job"
	dbmodels "perf-track-backend/models/db"
)

type fakeJobStore struct {
	seq  int
	jobs map[string]*dbmodels.Job
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{jobs: map[string]*dbmodels.Job{}}
}

func (f *fakeJobStore) Create(rec dbmodels.Job) (string, error) {
	f.seq++
	rec.ID = fmt.Sprintf("job-%d", f.seq)
	f.jobs[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeJobStore) GetByID(id string) (*dbmodels.Job, error) {
	rec, exist := f.jobs[id]
	if !exist {
		return nil, nil
	}
	clone := *rec
	return &clone, nil
}

func (f *fakeJobStore) Update(id string, updMap map[string]interface{}) (bool, error) {
	rec, exist := f.jobs[id]
	if !exist {
		return false, nil
	}
	for key, value := range updMap {
		switch key {
		case "title":
			rec.Title = value.(string)
		case "description":
			rec.Description = value.(string)
		case "deadline":
			deadline := value.(time.Time)
			rec.Deadline = &deadline
		case "status":
			rec.Status = value.(models.JobStatus)
		case "assigned_to":
			if value == nil {
				rec.AssignedTo = nil
			} else {
				userID := value.(string)
				rec.AssignedTo = &userID
			}
		}
	}
	return true, nil
}

func (f *fakeJobStore) ClearAssignee(userID, exceptJobID string) error {
	for _, rec := range f.jobs {
		if rec.ID != exceptJobID && rec.AssignedTo != nil && *rec.AssignedTo == userID {
			rec.AssignedTo = nil
		}
	}
	return nil
}

func (f *fakeJobStore) Delete(id string) (bool, error) {
	if _, exist := f.jobs[id]; !exist {
		return false, nil
	}
	delete(f.jobs, id)
	return true, nil
}

func (f *fakeJobStore) List() ([]dbmodels.Job, error) {
	list := make([]dbmodels.Job, 0, len(f.jobs))
	for _, rec := range f.jobs {
		list = append(list, *rec)
	}
	return list, nil
}

func (f *fakeJobStore) CountByDraft() (int64, int64, error) {
	var draft, other int64
	for _, rec := range f.jobs {
		if rec.Status == models.JobStatusDraft {
			draft++
		} else {
			other++
		}
	}
	return draft, other, nil
}

func (f *fakeJobStore) snapshot() map[string]*dbmodels.Job {
	copied := make(map[string]*dbmodels.Job, len(f.jobs))
	for id, rec := range f.jobs {
		clone := *rec
		copied[id] = &clone
	}
	return copied
}

type fakeUserStore struct {
	seq   int
	users map[string]*dbmodels.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*dbmodels.User{}}
}

func (f *fakeUserStore) Create(rec dbmodels.User) (string, error) {
	f.seq++
	rec.ID = fmt.Sprintf("user-%d", f.seq)
	f.users[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeUserStore) GetByID(id string) (*dbmodels.User, error) {
	rec, exist := f.users[id]
	if !exist {
		return nil, nil
	}
	clone := *rec
	return &clone, nil
}

func (f *fakeUserStore) FindByEmail(email string) (*dbmodels.User, error) {
	for _, rec := range f.users {
		if rec.Email == email {
			clone := *rec
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) Update(id string, updMap map[string]interface{}) error {
	if _, exist := f.users[id]; !exist {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (f *fakeUserStore) List() ([]dbmodels.User, error) {
	list := make([]dbmodels.User, 0, len(f.users))
	for _, rec := range f.users {
		list = append(list, *rec)
	}
	return list, nil
}

func (f *fakeUserStore) ListByRole(role models.UserRole) ([]dbmodels.User, error) {
	list := []dbmodels.User{}
	for _, rec := range f.users {
		if rec.Role == role {
			list = append(list, *rec)
		}
	}
	return list, nil
}

func (f *fakeUserStore) ListByJob(jobID string) ([]dbmodels.User, error) {
	list := []dbmodels.User{}
	for _, rec := range f.users {
		if rec.JobID != nil && *rec.JobID == jobID {
			list = append(list, *rec)
		}
	}
	return list, nil
}

func (f *fakeUserStore) ClearJob(jobID string) error {
	for _, rec := range f.users {
		if rec.JobID != nil && *rec.JobID == jobID {
			rec.JobID = nil
		}
	}
	return nil
}

func (f *fakeUserStore) SetJob(userID string, jobID *string) (bool, error) {
	rec, exist := f.users[userID]
	if !exist {
		return false, nil
	}
	rec.JobID = jobID
	return true, nil
}

func (f *fakeUserStore) ExistByEmail(email string) (bool, error) {
	rec, err := f.FindByEmail(email)
	return rec != nil, err
}

func (f *fakeUserStore) snapshot() map[string]*dbmodels.User {
	copied := make(map[string]*dbmodels.User, len(f.users))
	for id, rec := range f.users {
		clone := *rec
		copied[id] = &clone
	}
	return copied
}

// newTestHandler wires the handler to in-memory stores. The fake transaction
// snapshots both stores up front and restores them when fn fails, matching
// the rollback behavior of the real one.
func newTestHandler(jobs *fakeJobStore, users *fakeUserStore) impl {
	return impl{
		store:     jobs,
		userStore: users,
		inTx: func(fn func(tx *gorm.DB) error) error {
			jobsBefore := jobs.snapshot()
			usersBefore := users.snapshot()
			if err := fn(nil); err != nil {
				jobs.jobs = jobsBefore
				users.users = usersBefore
				return err
			}
			return nil
		},
		storesFor: func(tx *gorm.DB) (jobstore.Provider, usersstore.Provider) {
			return jobs, users
		},
	}
}

func strPtr(value string) *string {
	return &value
}

func TestJobHandler(t *testing.T) {
	t.Run(`created job starts unassigned in draft`, func(t *testing.T) {
		jobs := newFakeJobStore()
		users := newFakeUserStore()
		handler := newTestHandler(jobs, users)

		id, err := handler.Create(jobapimodels.JobData{Title: "Backend engineer", Description: "API work"})
		require.Nil(t, err)

		rec := jobs.jobs[id]
		require.Equal(t, models.JobStatusDraft, rec.Status)
		require.Nil(t, rec.AssignedTo)
	})

	t.Run(`create requires title and description`, func(t *testing.T) {
		handler := newTestHandler(newFakeJobStore(), newFakeUserStore())

		_, err := handler.Create(jobapimodels.JobData{Description: "no title"})
		require.True(t, apperr.IsValidation(err))

		_, err = handler.Create(jobapimodels.JobData{Title: "no description"})
		require.True(t, apperr.IsValidation(err))
	})

	t.Run(`assignment updates the job and the user together`, func(t *testing.T) {
		jobs := newFakeJobStore()
		users := newFakeUserStore()
		handler := newTestHandler(jobs, users)

		jobID, _ := jobs.Create(dbmodels.Job{Title: "Backend engineer", Status: models.JobStatusDraft})
		userID, _ := users.Create(dbmodels.User{FirstName: "Dana", Role: models.StaffRole})

		item, err := handler.Update(jobID, jobapimodels.JobPatch{AssignedTo: strPtr(userID)})
		require.Nil(t, err)
		require.Equal(t, userID, item.AssignedTo)
		require.NotNil(t, users.users[userID].JobID)
		require.Equal(t, jobID, *users.users[userID].JobID)
	})

	t.Run(`reassigning a user releases their previous job`, func(t *testing.T) {
		jobs := newFakeJobStore()
		users := newFakeUserStore()
		handler := newTestHandler(jobs, users)

		userID, _ := users.Create(dbmodels.User{FirstName: "Dana", Role: models.StaffRole})
		jobA, _ := jobs.Create(dbmodels.Job{Title: "Job A", Status: models.JobStatusOngoing, AssignedTo: &userID})
		users.users[userID].JobID = &jobA
		jobB, _ := jobs.Create(dbmodels.Job{Title: "Job B", Status: models.JobStatusDraft})

		_, err := handler.Update(jobB, jobapimodels.JobPatch{AssignedTo: strPtr(userID)})
		require.Nil(t, err)

		require.Nil(t, jobs.jobs[jobA].AssignedTo)
		require.NotNil(t, jobs.jobs[jobB].AssignedTo)
		require.Equal(t, userID, *jobs.jobs[jobB].AssignedTo)
		require.Equal(t, jobB, *users.users[userID].JobID)
	})

	t.Run(`assignment to an unknown user rolls everything back`, func(t *testing.T) {
		jobs := newFakeJobStore()
		users := newFakeUserStore()
		handler := newTestHandler(jobs, users)

		userID, _ := users.Create(dbmodels.User{FirstName: "Dana", Role: models.StaffRole})
		jobID, _ := jobs.Create(dbmodels.Job{Title: "Job A", Status: models.JobStatusOngoing, AssignedTo: &userID})
		users.users[userID].JobID = &jobID

		_, err := handler.Update(jobID, jobapimodels.JobPatch{
			Title:      strPtr("Renamed"),
			AssignedTo: strPtr("missing-user"),
		})
		require.True(t, apperr.IsNotFound(err))

		rec := jobs.jobs[jobID]
		require.Equal(t, "Job A", rec.Title)
		require.NotNil(t, rec.AssignedTo)
		require.Equal(t, userID, *rec.AssignedTo)
		require.NotNil(t, users.users[userID].JobID)
		require.Equal(t, jobID, *users.users[userID].JobID)
	})

	t.Run(`empty assigned_to severs the assignment`, func(t *testing.T) {
		jobs := newFakeJobStore()
		users := newFakeUserStore()
		handler := newTestHandler(jobs, users)

		userID, _ := users.Create(dbmodels.User{FirstName: "Dana", Role: models.StaffRole})
		jobID, _ := jobs.Create(dbmodels.Job{Title: "Job A", Status: models.JobStatusOngoing, AssignedTo: &userID})
		users.users[userID].JobID = &jobID

		item, err := handler.Update(jobID, jobapimodels.JobPatch{AssignedTo: strPtr("")})
		require.Nil(t, err)
		require.Equal(t, "", item.AssignedTo)
		require.Nil(t, jobs.jobs[jobID].AssignedTo)
		require.Nil(t, users.users[userID].JobID)
	})

	t.Run(`patch with unknown status is rejected`, func(t *testing.T) {
		jobs := newFakeJobStore()
		handler := newTestHandler(jobs, newFakeUserStore())
		jobID, _ := jobs.Create(dbmodels.Job{Title: "Job A", Status: models.JobStatusDraft})

		_, err := handler.Update(jobID, jobapimodels.JobPatch{Status: strPtr("PAUSED")})
		require.True(t, apperr.IsValidation(err))
	})

	t.Run(`empty patch on unknown job reports not found`, func(t *testing.T) {
		handler := newTestHandler(newFakeJobStore(), newFakeUserStore())

		_, err := handler.Update("missing", jobapimodels.JobPatch{})
		require.True(t, apperr.IsNotFound(err))
	})

	t.Run(`delete releases the assignee`, func(t *testing.T) {
		jobs := newFakeJobStore()
		users := newFakeUserStore()
		handler := newTestHandler(jobs, users)

		userID, _ := users.Create(dbmodels.User{FirstName: "Dana", Role: models.StaffRole})
		jobID, _ := jobs.Create(dbmodels.Job{Title: "Job A", Status: models.JobStatusOngoing, AssignedTo: &userID})
		users.users[userID].JobID = &jobID

		require.Nil(t, handler.Delete(jobID))
		require.Nil(t, users.users[userID].JobID)
		require.NotContains(t, jobs.jobs, jobID)
	})

	t.Run(`delete of unknown job reports not found`, func(t *testing.T) {
		handler := newTestHandler(newFakeJobStore(), newFakeUserStore())
		err := handler.Delete("missing")
		require.True(t, apperr.IsNotFound(err))
	})
}
