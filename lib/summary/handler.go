package summary

import (
	"bytes"
	"time"

	"perf-track-backend/db"
	xlsexport "perf-track-backend/lib/export/xls"
	jobstore "perf-track-backend/lib/job/store"
	reportstore "perf-track-backend/lib/report/store"
	taskstore "perf-track-backend/lib/task/store"
	usersstore "perf-track-backend/lib/users/store"
	"perf-track-backend/lib/utils/apperr"
	"perf-track-backend/lib/utils/helpers"
	initchecker "perf-track-backend/lib/utils/init-checker"
	"perf-track-backend/models"
	reportapimodels "perf-track-backend/models/api/report"
	dbmodels "perf-track-backend/models/db"
)

type Provider interface {
	StaffSummary(userID, period string) (result reportapimodels.StaffSummary, err error)
	SupervisorSummary(filter reportapimodels.SummaryFilter) (result reportapimodels.SupervisorSummary, err error)
	SupervisorSummaryToXls(filter reportapimodels.SummaryFilter) (*bytes.Buffer, error)
	AdminSummary() (result reportapimodels.AdminSummary, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		reportStore: reportstore.NewInstance(db.DB),
		taskStore:   taskstore.NewInstance(db.DB),
		userStore:   usersstore.NewInstance(db.DB),
		jobStore:    jobstore.NewInstance(db.DB),
		xlsExport:   xlsexport.Instance,
		now:         time.Now,
	}
	initchecker.CheckInit(
		"xlsExport", instance.xlsExport,
	)
	Instance = instance
}

type impl struct {
	reportStore reportstore.Provider
	taskStore   taskstore.Provider
	userStore   usersstore.Provider
	jobStore    jobstore.Provider
	xlsExport   xlsexport.Provider
	now         func() time.Time
}

// StaffSummary builds the personal dashboard: the selected report, score
// averages for this and last calendar year, the growth rate between them and
// a recap of the user's tasks.
func (i impl) StaffSummary(userID, period string) (result reportapimodels.StaffSummary, err error) {
	if period != "" && !helpers.IsValidPeriod(period) {
		return result, apperr.NewValidation("period must be formatted YYYY-MM")
	}
	user, err := i.userStore.GetByID(userID)
	if err != nil {
		return result, apperr.WrapDependency(err, "failed to load user")
	}
	if user == nil {
		return result, apperr.NewNotFound("user not found")
	}

	var report *dbmodels.Report
	if period != "" {
		report, err = i.reportStore.GetByUserAndPeriod(userID, period)
	} else {
		report, err = i.reportStore.GetLatestByUser(userID)
	}
	if err != nil {
		return result, apperr.WrapDependency(err, "failed to load report")
	}
	if report != nil {
		view := report.ToModel()
		result.Report = &view
	}

	thisYear := i.now().Year()
	thisYearReports, err := i.reportStore.ListByUserAndYear(userID, thisYear)
	if err != nil {
		return result, apperr.WrapDependency(err, "failed to load reports for the current year")
	}
	lastYearReports, err := i.reportStore.ListByUserAndYear(userID, thisYear-1)
	if err != nil {
		return result, apperr.WrapDependency(err, "failed to load reports for the previous year")
	}
	result.ThisYearAvg = scoreAverage(thisYearReports)
	result.LastYearAvg = scoreAverage(lastYearReports)
	result.GrowthRate = growthRate(result.ThisYearAvg, result.LastYearAvg)

	counts, err := i.taskStore.CountByStatus(userID)
	if err != nil {
		return result, apperr.WrapDependency(err, "failed to count tasks")
	}
	result.TasksByState = make(map[string]int, len(counts))
	for status, count := range counts {
		result.TasksByState[string(status)] = count
	}

	tasks, err := i.taskStore.ListByUser(userID)
	if err != nil {
		return result, apperr.WrapDependency(err, "failed to load task history")
	}
	result.History = make([]reportapimodels.TaskHistoryEntry, 0, len(tasks))
	for _, task := range tasks {
		result.History = append(result.History, reportapimodels.TaskHistoryEntry{
			Title:    task.Title,
			Status:   string(task.TaskStatus),
			Evidence: task.Evidence,
		})
	}
	return result, nil
}

func (i impl) SupervisorSummary(filter reportapimodels.SummaryFilter) (result reportapimodels.SupervisorSummary, err error) {
	if err = filter.Validate(); err != nil {
		return result, err
	}
	staff, err := i.userStore.ListByRole(models.StaffRole)
	if err != nil {
		return result, apperr.WrapDependency(err, "failed to list staff users")
	}
	staff = filterByContractWindow(staff, filter.ContractFrom, filter.ContractTo)

	ownerIDs := make([]string, 0, len(staff))
	for _, user := range staff {
		ownerIDs = append(ownerIDs, user.ID)
	}

	var createdFrom, createdTo *time.Time
	if filter.Period != "" {
		from, to, err := helpers.PeriodBounds(filter.Period)
		if err != nil {
			return result, apperr.NewValidation("period must be formatted YYYY-MM")
		}
		createdFrom, createdTo = &from, &to
	}

	tasks, err := i.taskStore.ListByOwners(ownerIDs, createdFrom, createdTo)
	if err != nil {
		return result, apperr.WrapDependency(err, "failed to list staff tasks")
	}
	return buildSupervisorSummary(len(staff), tasks), nil
}

func (i impl) SupervisorSummaryToXls(filter reportapimodels.SummaryFilter) (*bytes.Buffer, error) {
	data, err := i.SupervisorSummary(filter)
	if err != nil {
		return nil, err
	}
	return i.xlsExport.ExportSupervisorSummary(data)
}

func (i impl) AdminSummary() (result reportapimodels.AdminSummary, err error) {
	users, err := i.userStore.List()
	if err != nil {
		return result, apperr.WrapDependency(err, "failed to list users")
	}
	result.UsersByRole = map[string]int{}
	for _, user := range users {
		result.UsersByRole[string(user.Role)]++
		if user.Role == models.StaffRole && user.JobID == nil {
			result.UnassignedStaff++
		}
	}
	draft, other, err := i.jobStore.CountByDraft()
	if err != nil {
		return result, apperr.WrapDependency(err, "failed to count jobs")
	}
	result.DraftJobs = int(draft)
	result.ActiveJobs = int(other)
	return result, nil
}

// scoreAverage keeps the source's zero-guard: an empty year averages to 0
// through a denominator floor of 1 rather than being undefined.
func scoreAverage(reports []dbmodels.Report) float64 {
	sum := 0
	for _, report := range reports {
		sum += report.Score
	}
	denominator := len(reports)
	if denominator == 0 {
		denominator = 1
	}
	return float64(sum) / float64(denominator)
}

// growthRate substitutes 1 for a zero denominator, the same approximation
// the score averages use. Rounded to one decimal place.
func growthRate(thisYearAvg, lastYearAvg float64) float64 {
	denominator := lastYearAvg
	if denominator < 1 {
		denominator = 1
	}
	return helpers.Round1((thisYearAvg - lastYearAvg) / denominator * 100)
}

// buildSupervisorSummary fills the five status buckets. Rejection and
// revision statuses land in no bucket at all.
func buildSupervisorSummary(staffCount int, tasks []dbmodels.Task) reportapimodels.SupervisorSummary {
	result := reportapimodels.SupervisorSummary{
		TaskCount:  len(tasks),
		StaffCount: staffCount,
	}
	for _, task := range tasks {
		switch task.TaskStatus {
		case models.TaskStatusCompleted:
			result.Achieved++
		case models.TaskStatusInProgress:
			result.OnProcess++
		case models.TaskStatusAwaitingReview:
			result.AwaitingReview++
		case models.TaskStatusAwaitingApproval:
			result.AwaitingApproval++
		case models.TaskStatusDraft, "":
			result.NotYetStarted++
		}
	}
	denominator := staffCount
	if denominator == 0 {
		denominator = 1
	}
	result.AvgTasksPerStaff = helpers.Round1(float64(len(tasks)) / float64(denominator))
	return result
}

func filterByContractWindow(users []dbmodels.User, from, to *time.Time) []dbmodels.User {
	if from == nil && to == nil {
		return users
	}
	filtered := make([]dbmodels.User, 0, len(users))
	for _, user := range users {
		if from != nil && (user.ContractStart == nil || user.ContractStart.Before(*from)) {
			continue
		}
		if to != nil && (user.ContractEnd == nil || user.ContractEnd.After(*to)) {
			continue
		}
		filtered = append(filtered, user)
	}
	return filtered
}
