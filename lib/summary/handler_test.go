package summary

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	jobstore "perf-track-backend/lib/job/store"
	reportstore "perf-track-backend/lib/report/store"
	taskstore "perf-track-backend/lib/task/store"
	usersstore "perf-track-backend/lib/users/store"
	"perf-track-backend/lib/utils/apperr"
	"perf-track-backend/models"
	reportapimodels "perf-track-backend/models/api/report"
	dbmodels "perf-track-backend/models/db"
)

// The fakes embed the store interfaces and override only what the summary
// reads, anything else would panic and flag an unexpected call.

type fakeReportStore struct {
	reportstore.Provider
	reports []dbmodels.Report
}

func (f *fakeReportStore) GetByUserAndPeriod(userID, period string) (*dbmodels.Report, error) {
	for _, rec := range f.reports {
		if rec.UserID == userID && rec.Period == period {
			clone := rec
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeReportStore) GetLatestByUser(userID string) (*dbmodels.Report, error) {
	var latest *dbmodels.Report
	for idx := range f.reports {
		rec := &f.reports[idx]
		if rec.UserID != userID {
			continue
		}
		if latest == nil ||
			rec.Period > latest.Period ||
			(rec.Period == latest.Period && rec.CreatedAt.After(latest.CreatedAt)) {
			latest = rec
		}
	}
	if latest == nil {
		return nil, nil
	}
	clone := *latest
	return &clone, nil
}

func (f *fakeReportStore) ListByUserAndYear(userID string, year int) ([]dbmodels.Report, error) {
	list := []dbmodels.Report{}
	for _, rec := range f.reports {
		if rec.UserID == userID && strings.HasPrefix(rec.Period, fmt.Sprintf("%04d-", year)) {
			list = append(list, rec)
		}
	}
	return list, nil
}

type fakeTaskStore struct {
	taskstore.Provider
	tasks []dbmodels.Task
}

func (f *fakeTaskStore) ListByUser(userID string) ([]dbmodels.Task, error) {
	list := []dbmodels.Task{}
	for _, rec := range f.tasks {
		if rec.UserID == userID {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (f *fakeTaskStore) ListByOwners(ownerIDs []string, createdFrom, createdTo *time.Time) ([]dbmodels.Task, error) {
	owners := map[string]bool{}
	for _, id := range ownerIDs {
		owners[id] = true
	}
	list := []dbmodels.Task{}
	for _, rec := range f.tasks {
		if !owners[rec.UserID] {
			continue
		}
		if createdFrom != nil && rec.CreatedAt.Before(*createdFrom) {
			continue
		}
		if createdTo != nil && !rec.CreatedAt.Before(*createdTo) {
			continue
		}
		list = append(list, rec)
	}
	return list, nil
}

func (f *fakeTaskStore) CountByStatus(userID string) (map[models.TaskStatus]int, error) {
	counts := map[models.TaskStatus]int{}
	for _, rec := range f.tasks {
		if rec.UserID == userID {
			counts[rec.TaskStatus]++
		}
	}
	return counts, nil
}

type fakeUserStore struct {
	usersstore.Provider
	users []dbmodels.User
}

func (f *fakeUserStore) GetByID(id string) (*dbmodels.User, error) {
	for _, rec := range f.users {
		if rec.ID == id {
			clone := rec
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) List() ([]dbmodels.User, error) {
	return f.users, nil
}

func (f *fakeUserStore) ListByRole(role models.UserRole) ([]dbmodels.User, error) {
	list := []dbmodels.User{}
	for _, rec := range f.users {
		if rec.Role == role {
			list = append(list, rec)
		}
	}
	return list, nil
}

type fakeJobStore struct {
	jobstore.Provider
	draft int64
	other int64
}

func (f *fakeJobStore) CountByDraft() (int64, int64, error) {
	return f.draft, f.other, nil
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func report(userID, period string, score int) dbmodels.Report {
	return dbmodels.Report{
		BaseModel: dbmodels.BaseModel{ID: userID + "-" + period, CreatedAt: fixedNow()},
		UserID:    userID,
		Period:    period,
		Score:     score,
		Status:    models.ReportStatusDone,
	}
}

func task(userID string, status models.TaskStatus) dbmodels.Task {
	return dbmodels.Task{
		UserID:     userID,
		Title:      "task",
		TaskStatus: status,
	}
}

func TestScoreMath(t *testing.T) {
	t.Run(`average of an empty year is zero`, func(t *testing.T) {
		require.Equal(t, 0.0, scoreAverage(nil))
	})

	t.Run(`average check`, func(t *testing.T) {
		reports := []dbmodels.Report{
			report("u1", "2025-01", 80),
			report("u1", "2025-02", 90),
		}
		require.Equal(t, 85.0, scoreAverage(reports))
	})

	t.Run(`growth from 70 to 85 is 21.4 percent`, func(t *testing.T) {
		require.Equal(t, 21.4, growthRate(85, 70))
	})

	t.Run(`zero last year falls back to a denominator of 1`, func(t *testing.T) {
		require.Equal(t, 8500.0, growthRate(85, 0))
	})

	t.Run(`negative growth check`, func(t *testing.T) {
		require.Equal(t, -17.6, growthRate(70, 85))
	})
}

func TestBuildSupervisorSummary(t *testing.T) {
	t.Run(`statuses land in their buckets`, func(t *testing.T) {
		tasks := []dbmodels.Task{
			task("u1", models.TaskStatusCompleted),
			task("u1", models.TaskStatusCompleted),
			task("u1", models.TaskStatusInProgress),
			task("u2", models.TaskStatusAwaitingReview),
			task("u2", models.TaskStatusAwaitingApproval),
			task("u2", models.TaskStatusDraft),
			task("u2", ""),
		}
		result := buildSupervisorSummary(2, tasks)
		require.Equal(t, 7, result.TaskCount)
		require.Equal(t, 2, result.StaffCount)
		require.Equal(t, 2, result.Achieved)
		require.Equal(t, 1, result.OnProcess)
		require.Equal(t, 1, result.AwaitingReview)
		require.Equal(t, 1, result.AwaitingApproval)
		require.Equal(t, 2, result.NotYetStarted)
		require.Equal(t, 3.5, result.AvgTasksPerStaff)
	})

	t.Run(`rejection and revision statuses count in no bucket`, func(t *testing.T) {
		tasks := []dbmodels.Task{
			task("u1", models.TaskStatusSubmissionRejected),
			task("u1", models.TaskStatusApprovalRejected),
			task("u1", models.TaskStatusRevisionInProgress),
			task("u1", models.TaskStatusRevisionSubmitted),
		}
		result := buildSupervisorSummary(1, tasks)
		require.Equal(t, 4, result.TaskCount)
		bucketSum := result.Achieved + result.OnProcess + result.AwaitingReview +
			result.AwaitingApproval + result.NotYetStarted
		require.Equal(t, 0, bucketSum)
	})

	t.Run(`no staff keeps the average defined`, func(t *testing.T) {
		result := buildSupervisorSummary(0, []dbmodels.Task{task("u1", models.TaskStatusCompleted)})
		require.Equal(t, 1.0, result.AvgTasksPerStaff)
	})
}

func TestFilterByContractWindow(t *testing.T) {
	start := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC)
	users := []dbmodels.User{
		{BaseModel: dbmodels.BaseModel{ID: "inside"}, ContractStart: &start, ContractEnd: &end},
		{BaseModel: dbmodels.BaseModel{ID: "open-ended"}},
	}

	t.Run(`no window keeps everyone`, func(t *testing.T) {
		require.Len(t, filterByContractWindow(users, nil, nil), 2)
	})

	t.Run(`window drops users without contract dates`, func(t *testing.T) {
		from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
		filtered := filterByContractWindow(users, &from, &to)
		require.Len(t, filtered, 1)
		require.Equal(t, "inside", filtered[0].ID)
	})

	t.Run(`window excludes contracts starting too early`, func(t *testing.T) {
		from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
		require.Empty(t, filterByContractWindow(users, &from, nil))
	})
}

func TestStaffSummary(t *testing.T) {
	newHandler := func(reports *fakeReportStore, tasks *fakeTaskStore, users *fakeUserStore) impl {
		return impl{
			reportStore: reports,
			taskStore:   tasks,
			userStore:   users,
			jobStore:    &fakeJobStore{},
			now:         fixedNow,
		}
	}

	t.Run(`year averages and growth rate`, func(t *testing.T) {
		reports := &fakeReportStore{reports: []dbmodels.Report{
			report("u1", "2025-01", 80),
			report("u1", "2025-02", 90),
			report("u1", "2024-11", 70),
		}}
		tasks := &fakeTaskStore{tasks: []dbmodels.Task{
			task("u1", models.TaskStatusCompleted),
			task("u1", models.TaskStatusInProgress),
		}}
		users := &fakeUserStore{users: []dbmodels.User{
			{BaseModel: dbmodels.BaseModel{ID: "u1"}, Role: models.StaffRole},
		}}
		handler := newHandler(reports, tasks, users)

		result, err := handler.StaffSummary("u1", "")
		require.Nil(t, err)
		require.Equal(t, 85.0, result.ThisYearAvg)
		require.Equal(t, 70.0, result.LastYearAvg)
		require.Equal(t, 21.4, result.GrowthRate)
		require.Equal(t, 1, result.TasksByState[string(models.TaskStatusCompleted)])
		require.Equal(t, 1, result.TasksByState[string(models.TaskStatusInProgress)])
		require.Len(t, result.History, 2)
	})

	t.Run(`without a period the latest report wins`, func(t *testing.T) {
		reports := &fakeReportStore{reports: []dbmodels.Report{
			report("u1", "2025-01", 80),
			report("u1", "2025-02", 90),
		}}
		handler := newHandler(reports, &fakeTaskStore{}, &fakeUserStore{users: []dbmodels.User{
			{BaseModel: dbmodels.BaseModel{ID: "u1"}, Role: models.StaffRole},
		}})

		result, err := handler.StaffSummary("u1", "")
		require.Nil(t, err)
		require.NotNil(t, result.Report)
		require.Equal(t, "2025-02", result.Report.Period)
	})

	t.Run(`explicit period picks that report`, func(t *testing.T) {
		reports := &fakeReportStore{reports: []dbmodels.Report{
			report("u1", "2025-01", 80),
			report("u1", "2025-02", 90),
		}}
		handler := newHandler(reports, &fakeTaskStore{}, &fakeUserStore{users: []dbmodels.User{
			{BaseModel: dbmodels.BaseModel{ID: "u1"}, Role: models.StaffRole},
		}})

		result, err := handler.StaffSummary("u1", "2025-01")
		require.Nil(t, err)
		require.NotNil(t, result.Report)
		require.Equal(t, 80, result.Report.Score)
	})

	t.Run(`unknown user reports not found`, func(t *testing.T) {
		handler := newHandler(&fakeReportStore{}, &fakeTaskStore{}, &fakeUserStore{})
		_, err := handler.StaffSummary("missing", "")
		require.True(t, apperr.IsNotFound(err))
	})

	t.Run(`malformed period is rejected`, func(t *testing.T) {
		handler := newHandler(&fakeReportStore{}, &fakeTaskStore{}, &fakeUserStore{})
		_, err := handler.StaffSummary("u1", "01-2025")
		require.True(t, apperr.IsValidation(err))
	})
}

func TestSupervisorSummary(t *testing.T) {
	t.Run(`only staff tasks are counted`, func(t *testing.T) {
		users := &fakeUserStore{users: []dbmodels.User{
			{BaseModel: dbmodels.BaseModel{ID: "staff-1"}, Role: models.StaffRole},
			{BaseModel: dbmodels.BaseModel{ID: "boss-1"}, Role: models.SupervisorRole},
		}}
		tasks := &fakeTaskStore{tasks: []dbmodels.Task{
			task("staff-1", models.TaskStatusCompleted),
			task("boss-1", models.TaskStatusCompleted),
		}}
		handler := impl{
			taskStore: tasks,
			userStore: users,
			now:       fixedNow,
		}

		result, err := handler.SupervisorSummary(reportapimodels.SummaryFilter{})
		require.Nil(t, err)
		require.Equal(t, 1, result.TaskCount)
		require.Equal(t, 1, result.StaffCount)
		require.Equal(t, 1, result.Achieved)
	})

	t.Run(`period narrows by creation month`, func(t *testing.T) {
		inJune := task("staff-1", models.TaskStatusCompleted)
		inJune.CreatedAt = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
		inMay := task("staff-1", models.TaskStatusCompleted)
		inMay.CreatedAt = time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

		handler := impl{
			taskStore: &fakeTaskStore{tasks: []dbmodels.Task{inJune, inMay}},
			userStore: &fakeUserStore{users: []dbmodels.User{
				{BaseModel: dbmodels.BaseModel{ID: "staff-1"}, Role: models.StaffRole},
			}},
			now: fixedNow,
		}

		result, err := handler.SupervisorSummary(reportapimodels.SummaryFilter{Period: "2025-06"})
		require.Nil(t, err)
		require.Equal(t, 1, result.TaskCount)
	})
}

func TestAdminSummary(t *testing.T) {
	jobID := "job-1"
	handler := impl{
		userStore: &fakeUserStore{users: []dbmodels.User{
			{BaseModel: dbmodels.BaseModel{ID: "u1"}, Role: models.StaffRole, JobID: &jobID},
			{BaseModel: dbmodels.BaseModel{ID: "u2"}, Role: models.StaffRole},
			{BaseModel: dbmodels.BaseModel{ID: "u3"}, Role: models.SupervisorRole},
			{BaseModel: dbmodels.BaseModel{ID: "u4"}, Role: models.AdminRole},
		}},
		jobStore: &fakeJobStore{draft: 2, other: 3},
		now:      fixedNow,
	}

	result, err := handler.AdminSummary()
	require.Nil(t, err)
	require.Equal(t, 2, result.UsersByRole[string(models.StaffRole)])
	require.Equal(t, 1, result.UsersByRole[string(models.SupervisorRole)])
	require.Equal(t, 1, result.UsersByRole[string(models.AdminRole)])
	require.Equal(t, 1, result.UnassignedStaff)
	require.Equal(t, 2, result.DraftJobs)
	require.Equal(t, 3, result.ActiveJobs)
}
