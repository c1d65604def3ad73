package jobapimodels

import (
	"time"

	"perf-track-backend/lib/utils/apperr"
	"perf-track-backend/models"
)

type JobData struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (r JobData) Validate() error {
	if r.Title == "" {
		return apperr.NewValidation("title is required")
	}
	if r.Description == "" {
		return apperr.NewValidation("description is required")
	}
	return nil
}

// JobPatch carries a partial update. AssignedTo set to a user id reassigns
// the job, empty string just severs the current assignment.
type JobPatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	Status      *string    `json:"status"`
	AssignedTo  *string    `json:"assigned_to"`
}

func (r JobPatch) Validate() error {
	if r.Status != nil && !models.JobStatus(*r.Status).IsValid() {
		return apperr.NewValidation("status is not a recognized job status")
	}
	return nil
}

type JobView struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Status       string     `json:"status"`
	StatusName   string     `json:"status_name"`
	AssignedTo   string     `json:"assigned_to,omitempty"`
	AssigneeName string     `json:"assignee_name,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
