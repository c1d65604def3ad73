package userapimodels

import (
	"time"

	"perf-track-backend/lib/utils/apperr"
	"perf-track-backend/models"
)

type RegisterData struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (r RegisterData) Validate() error {
	if r.FirstName == "" {
		return apperr.NewValidation("first_name is required")
	}
	if r.Email == "" {
		return apperr.NewValidation("email is required")
	}
	if len(r.Password) < 6 {
		return apperr.NewValidation("password must be at least 6 characters")
	}
	return nil
}

type UserPatch struct {
	FirstName     *string    `json:"first_name"`
	LastName      *string    `json:"last_name"`
	ContractStart *time.Time `json:"contract_start"`
	ContractEnd   *time.Time `json:"contract_end"`
}

type RoleChange struct {
	Role string `json:"role"`
}

func (r RoleChange) Validate() error {
	if !models.UserRole(r.Role).IsValid() {
		return apperr.NewValidation("role must be staff, supervisor or admin")
	}
	return nil
}

type UserView struct {
	ID            string     `json:"id"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Email         string     `json:"email"`
	Role          string     `json:"role"`
	RoleName      string     `json:"role_name"`
	JobID         string     `json:"job_id,omitempty"`
	ContractStart *time.Time `json:"contract_start,omitempty"`
	ContractEnd   *time.Time `json:"contract_end,omitempty"`
	Verified      bool       `json:"verified"`
}
