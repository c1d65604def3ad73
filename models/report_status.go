package models

type ReportStatus string

const (
	ReportStatusAwaitingReview ReportStatus = "awaitingReview"
	ReportStatusDone           ReportStatus = "done"
)

var reportStatusHumanName = map[ReportStatus]string{
	ReportStatusAwaitingReview: "Awaiting review",
	ReportStatusDone:           "Done",
}

func (s ReportStatus) ToHuman() string {
	if human, exist := reportStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s ReportStatus) IsValid() bool {
	_, exist := reportStatusHumanName[s]
	return exist
}
