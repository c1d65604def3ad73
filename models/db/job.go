package dbmodels

import (
	"time"

	"perf-track-backend/models"
	jobapimodels "perf-track-backend/models/api/job"
)

type Job struct {
	BaseModel
	Title       string `gorm:"type:varchar(255)"`
	Description string
	Deadline    *time.Time
	Status      models.JobStatus `gorm:"type:varchar(50)"`
	AssignedTo  *string          `gorm:"type:varchar(36);index"`
	Assignee    *User            `gorm:"foreignKey:AssignedTo"`
}

func (r Job) ToModel() jobapimodels.JobView {
	view := jobapimodels.JobView{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Deadline:    r.Deadline,
		Status:      string(r.Status),
		StatusName:  r.Status.ToHuman(),
		CreatedAt:   r.CreatedAt,
	}
	if r.AssignedTo != nil {
		view.AssignedTo = *r.AssignedTo
	}
	if r.Assignee != nil {
		view.AssigneeName = r.Assignee.GetFullName()
	}
	return view
}
