package taskapimodels

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"perf-track-backend/lib/utils/apperr"
	"perf-track-backend/models"
)

type KPI struct {
	KPITitle     string `json:"kpi_title"`
	TargetAmount int    `json:"target_amount"`
	Operator     string `json:"operator"` // lessThan/greaterThan
}

func (r KPI) Validate() error {
	if r.KPITitle == "" {
		return apperr.NewValidation("kpi_title is required")
	}
	if r.TargetAmount == 0 {
		return apperr.NewValidation("target_amount is required")
	}
	if !models.KPIOperator(r.Operator).IsValid() {
		return apperr.NewValidation("operator must be lessThan or greaterThan")
	}
	return nil
}

type TaskData struct {
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	KPIs        []KPI      `json:"kpis"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

func (r TaskData) Validate() error {
	if r.UserID == "" {
		return apperr.NewValidation("user_id is required")
	}
	if r.Title == "" {
		return apperr.NewValidation("title is required")
	}
	if r.Description == "" {
		return apperr.NewValidation("description is required")
	}
	for _, kpi := range r.KPIs {
		if err := kpi.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// TaskPatch carries a partial update, nil fields are left untouched.
type TaskPatch struct {
	UserID            *string    `json:"user_id"`
	Title             *string    `json:"title"`
	Description       *string    `json:"description"`
	KPIs              []KPI      `json:"kpis"`
	Score             *int       `json:"score"`
	StartDate         *time.Time `json:"start_date"`
	EndDate           *time.Time `json:"end_date"`
	TaskStatus        *string    `json:"task_status"`
	SupervisorComment *string    `json:"supervisor_comment"`
}

func (r TaskPatch) Validate() error {
	if r.UserID != nil {
		if _, err := uuid.Parse(*r.UserID); err != nil {
			return apperr.NewValidation("user_id is not a valid identifier")
		}
	}
	if r.TaskStatus != nil && !models.TaskStatus(*r.TaskStatus).IsValid() {
		return apperr.NewValidation("task_status is not a recognized status")
	}
	for _, kpi := range r.KPIs {
		if err := kpi.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type TaskFilter struct {
	JobID  string `json:"job_id"`
	UserID string `json:"user_id"`
}

type TaskView struct {
	ID                string          `json:"id"`
	UserID            string          `json:"user_id"`
	OwnerName         string          `json:"owner_name,omitempty"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	KPIs              []KPI           `json:"kpis"`
	Score             int             `json:"score"`
	Evidence          string          `json:"evidence"`
	EvidencePath      string          `json:"evidence_path,omitempty"`
	StartDate         *time.Time      `json:"start_date,omitempty"`
	EndDate           *time.Time      `json:"end_date,omitempty"`
	TaskStatus        string          `json:"task_status"`
	StatusName        string          `json:"status_name"`
	SupervisorComment string          `json:"supervisor_comment,omitempty"`
	BiasCheck         json.RawMessage `json:"bias_check,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}
