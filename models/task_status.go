package models

type TaskStatus string

const (
	TaskStatusDraft              TaskStatus = "draft"
	TaskStatusInProgress         TaskStatus = "inProgress"
	TaskStatusAwaitingReview     TaskStatus = "submittedAndAwaitingReview"
	TaskStatusSubmissionRejected TaskStatus = "submissionRejected"
	TaskStatusAwaitingApproval   TaskStatus = "submittedAndAwaitingApproval"
	TaskStatusApprovalRejected   TaskStatus = "approvalRejected"
	TaskStatusCompleted          TaskStatus = "completed"
	TaskStatusRevisionInProgress TaskStatus = "revisionInProgress"
	TaskStatusRevisionSubmitted  TaskStatus = "revisionSubmitted"
)

var taskStatusHumanName = map[TaskStatus]string{
	TaskStatusDraft:              "Draft",
	TaskStatusInProgress:         "In progress",
	TaskStatusAwaitingReview:     "Awaiting review",
	TaskStatusSubmissionRejected: "Submission rejected",
	TaskStatusAwaitingApproval:   "Awaiting approval",
	TaskStatusApprovalRejected:   "Approval rejected",
	TaskStatusCompleted:          "Completed",
	TaskStatusRevisionInProgress: "Revision in progress",
	TaskStatusRevisionSubmitted:  "Revision submitted",
}

// taskStatusFlow is the allowed transition set. A task moves
// draft -> inProgress -> awaiting review -> (rejected | awaiting approval)
// -> (rejected | completed), and either rejection re-enters the flow through
// revisionInProgress.
var taskStatusFlow = map[TaskStatus][]TaskStatus{
	TaskStatusDraft:              {TaskStatusInProgress},
	TaskStatusInProgress:         {TaskStatusAwaitingReview},
	TaskStatusAwaitingReview:     {TaskStatusSubmissionRejected, TaskStatusAwaitingApproval},
	TaskStatusSubmissionRejected: {TaskStatusRevisionInProgress},
	TaskStatusAwaitingApproval:   {TaskStatusApprovalRejected, TaskStatusCompleted},
	TaskStatusApprovalRejected:   {TaskStatusRevisionInProgress},
	TaskStatusRevisionInProgress: {TaskStatusRevisionSubmitted, TaskStatusAwaitingReview},
	TaskStatusRevisionSubmitted:  {TaskStatusSubmissionRejected, TaskStatusAwaitingApproval},
	TaskStatusCompleted:          {},
}

func (s TaskStatus) ToHuman() string {
	if human, exist := taskStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s TaskStatus) IsValid() bool {
	_, exist := taskStatusHumanName[s]
	return exist
}

// CanTransitionTo reports whether the move from s to next is legal.
// Writing the current status again is treated as a no-op and allowed.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range taskStatusFlow[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type KPIOperator string

const (
	KPIOperatorLessThan    KPIOperator = "lessThan"
	KPIOperatorGreaterThan KPIOperator = "greaterThan"
)

func (o KPIOperator) IsValid() bool {
	return o == KPIOperatorLessThan || o == KPIOperatorGreaterThan
}
