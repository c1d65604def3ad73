package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"perf-track-backend/models"
	taskapimodels "perf-track-backend/models/api/task"
)

type Task struct {
	BaseModel
	UserID            string            `gorm:"type:varchar(36);index"`
	Owner             *User             `gorm:"foreignKey:UserID"`
	Title             string            `gorm:"type:varchar(255)"`
	Description       string
	KPIs              TaskKPIs          `gorm:"column:kpis;type:jsonb"`
	Score             int
	Evidence          string            `gorm:"type:varchar(512)"`
	StartDate         *time.Time
	EndDate           *time.Time
	TaskStatus        models.TaskStatus `gorm:"type:varchar(50);index"`
	SupervisorComment string
	BiasCheck         BiasCheckResult   `gorm:"type:jsonb"`
}

// TaskKPIs is the ordered KPI list, stored as a single jsonb column.
type TaskKPIs []TaskKPI

type TaskKPI struct {
	KPITitle     string             `json:"kpi_title"`
	TargetAmount int                `json:"target_amount"`
	Operator     models.KPIOperator `json:"operator"`
}

func (j TaskKPIs) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *TaskKPIs) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

// BiasCheckResult is the raw answer of the external bias classification,
// persisted as-is. Its schema is owned by the external service.
type BiasCheckResult json.RawMessage

func (j BiasCheckResult) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

func (j *BiasCheckResult) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	*j = append((*j)[0:0], bytes...)
	return nil
}

func (j BiasCheckResult) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *BiasCheckResult) UnmarshalJSON(data []byte) error {
	*j = append((*j)[0:0], data...)
	return nil
}

func (r Task) ToModel() taskapimodels.TaskView {
	view := taskapimodels.TaskView{
		ID:                r.ID,
		UserID:            r.UserID,
		Title:             r.Title,
		Description:       r.Description,
		Score:             r.Score,
		Evidence:          r.Evidence,
		StartDate:         r.StartDate,
		EndDate:           r.EndDate,
		TaskStatus:        string(r.TaskStatus),
		StatusName:        r.TaskStatus.ToHuman(),
		SupervisorComment: r.SupervisorComment,
		BiasCheck:         json.RawMessage(r.BiasCheck),
		CreatedAt:         r.CreatedAt,
	}
	view.KPIs = make([]taskapimodels.KPI, 0, len(r.KPIs))
	for _, kpi := range r.KPIs {
		view.KPIs = append(view.KPIs, taskapimodels.KPI{
			KPITitle:     kpi.KPITitle,
			TargetAmount: kpi.TargetAmount,
			Operator:     string(kpi.Operator),
		})
	}
	if r.Owner != nil {
		view.OwnerName = r.Owner.GetFullName()
	}
	return view
}
