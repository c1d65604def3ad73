package models

type UserRole string

const (
	StaffRole      UserRole = "staff"
	SupervisorRole UserRole = "supervisor"
	AdminRole      UserRole = "admin"
)

var roleHumanName = map[UserRole]string{
	StaffRole:      "Staff",
	SupervisorRole: "Supervisor",
	AdminRole:      "Administrator",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsValid() bool {
	_, exist := roleHumanName[r]
	return exist
}

func (r UserRole) IsAdmin() bool {
	return r == AdminRole
}

// IsReviewer reports whether the role may review and score tasks.
func (r UserRole) IsReviewer() bool {
	return r == SupervisorRole || r == AdminRole
}
