package reportapimodels

import (
	"time"

	"perf-track-backend/lib/utils/apperr"
	"perf-track-backend/lib/utils/helpers"
	"perf-track-backend/models"
)

type ReportData struct {
	UserID string `json:"user_id"`
	Period string `json:"period"` // YYYY-MM
	Score  int    `json:"score"`
	Status string `json:"status"`
	Review string `json:"review"`
}

func (r ReportData) Validate() error {
	if r.UserID == "" {
		return apperr.NewValidation("user_id is required")
	}
	if !helpers.IsValidPeriod(r.Period) {
		return apperr.NewValidation("period must be formatted YYYY-MM")
	}
	if r.Status != "" && !models.ReportStatus(r.Status).IsValid() {
		return apperr.NewValidation("status is not a recognized report status")
	}
	return nil
}

type ReportPatch struct {
	Score  *int    `json:"score"`
	Status *string `json:"status"`
	Review *string `json:"review"`
}

func (r ReportPatch) Validate() error {
	if r.Status != nil && !models.ReportStatus(*r.Status).IsValid() {
		return apperr.NewValidation("status is not a recognized report status")
	}
	return nil
}

type ReportView struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	OwnerName  string    `json:"owner_name,omitempty"`
	Period     string    `json:"period"`
	Score      int       `json:"score"`
	Status     string    `json:"status"`
	StatusName string    `json:"status_name"`
	Review     string    `json:"review,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// StaffSummary is the per-user recap used on the staff dashboard.
type StaffSummary struct {
	Report       *ReportView        `json:"report,omitempty"`
	ThisYearAvg  float64            `json:"this_year_avg"`
	LastYearAvg  float64            `json:"last_year_avg"`
	GrowthRate   float64            `json:"growth_rate"`
	TasksByState map[string]int     `json:"tasks_by_status"`
	History      []TaskHistoryEntry `json:"history"`
}

type TaskHistoryEntry struct {
	Title    string `json:"title"`
	Status   string `json:"status"`
	Evidence string `json:"evidence,omitempty"`
}

// SupervisorSummary is the team recap. Rejection and revision statuses are
// deliberately outside the five buckets.
type SupervisorSummary struct {
	TaskCount        int     `json:"task_count"`
	StaffCount       int     `json:"staff_count"`
	AvgTasksPerStaff float64 `json:"avg_tasks_per_staff"`
	Achieved         int     `json:"achieved"`
	OnProcess        int     `json:"on_process"`
	AwaitingReview   int     `json:"awaiting_review"`
	AwaitingApproval int     `json:"awaiting_approval"`
	NotYetStarted    int     `json:"not_yet_started"`
}

type AdminSummary struct {
	UsersByRole     map[string]int `json:"users_by_role"`
	ActiveJobs      int            `json:"active_jobs"`
	DraftJobs       int            `json:"draft_jobs"`
	UnassignedStaff int            `json:"unassigned_staff"`
}

type SummaryFilter struct {
	Period       string     `json:"period"` // YYYY-MM
	ContractFrom *time.Time `json:"contract_from"`
	ContractTo   *time.Time `json:"contract_to"`
}

func (r SummaryFilter) Validate() error {
	if r.Period != "" && !helpers.IsValidPeriod(r.Period) {
		return apperr.NewValidation("period must be formatted YYYY-MM")
	}
	return nil
}
