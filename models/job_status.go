package models

type JobStatus string

const (
	JobStatusDraft       JobStatus = "DRAFT"
	JobStatusUnderReview JobStatus = "UNDER REVIEW"
	JobStatusOngoing     JobStatus = "ONGOING"
	JobStatusFinished    JobStatus = "FINISHED"
)

var jobStatusHumanName = map[JobStatus]string{
	JobStatusDraft:       "Draft",
	JobStatusUnderReview: "Under review",
	JobStatusOngoing:     "Ongoing",
	JobStatusFinished:    "Finished",
}

func (s JobStatus) ToHuman() string {
	if human, exist := jobStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// IsValid only gates the value set, job statuses have no transition graph.
func (s JobStatus) IsValid() bool {
	_, exist := jobStatusHumanName[s]
	return exist
}
