package dbmodels

import (
	"fmt"
	"time"

	"perf-track-backend/models"
	userapimodels "perf-track-backend/models/api/user"
)

type User struct {
	BaseModel
	FirstName     string          `gorm:"type:varchar(150)"`
	LastName      string          `gorm:"type:varchar(150)"`
	Email         string          `gorm:"type:varchar(255);uniqueIndex"`
	Password      string          `gorm:"type:varchar(128)"`
	Role          models.UserRole `gorm:"type:varchar(50)"`
	JobID         *string         `gorm:"type:varchar(36);index"`
	ContractStart *time.Time
	ContractEnd   *time.Time
	Verified      bool
}

func (r User) GetFullName() string {
	return fmt.Sprintf("%s %s", r.FirstName, r.LastName)
}

func (r User) ToModel() userapimodels.UserView {
	jobID := ""
	if r.JobID != nil {
		jobID = *r.JobID
	}
	return userapimodels.UserView{
		ID:            r.ID,
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		Email:         r.Email,
		Role:          string(r.Role),
		RoleName:      r.Role.ToHuman(),
		JobID:         jobID,
		ContractStart: r.ContractStart,
		ContractEnd:   r.ContractEnd,
		Verified:      r.Verified,
	}
}
