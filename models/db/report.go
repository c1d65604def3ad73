package dbmodels

import (
	"perf-track-backend/models"
	reportapimodels "perf-track-backend/models/api/report"
)

type Report struct {
	BaseModel
	UserID string `gorm:"type:varchar(36);index:idx_report_user_period,unique"`
	Owner  *User  `gorm:"foreignKey:UserID"`
	// Period is the calendar month the report covers, formatted YYYY-MM.
	Period string `gorm:"type:varchar(7);index:idx_report_user_period,unique"`
	Score  int
	Status models.ReportStatus `gorm:"type:varchar(50)"`
	Review string
}

func (r Report) ToModel() reportapimodels.ReportView {
	view := reportapimodels.ReportView{
		ID:         r.ID,
		UserID:     r.UserID,
		Period:     r.Period,
		Score:      r.Score,
		Status:     string(r.Status),
		StatusName: r.Status.ToHuman(),
		Review:     r.Review,
		CreatedAt:  r.CreatedAt,
	}
	if r.Owner != nil {
		view.OwnerName = r.Owner.GetFullName()
	}
	return view
}
