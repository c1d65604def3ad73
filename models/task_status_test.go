package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTaskStatus(t *testing.T) {
	t.Run(`happy path walks the whole flow`, func(t *testing.T) {
		path := []TaskStatus{
			TaskStatusDraft,
			TaskStatusInProgress,
			TaskStatusAwaitingReview,
			TaskStatusAwaitingApproval,
			TaskStatusCompleted,
		}
		for i := 0; i < len(path)-1; i++ {
			require.True(t, path[i].CanTransitionTo(path[i+1]),
				"%s -> %s should be allowed", path[i], path[i+1])
		}
	})

	t.Run(`rejections re-enter through revision`, func(t *testing.T) {
		require.True(t, TaskStatusAwaitingReview.CanTransitionTo(TaskStatusSubmissionRejected))
		require.True(t, TaskStatusSubmissionRejected.CanTransitionTo(TaskStatusRevisionInProgress))
		require.True(t, TaskStatusAwaitingApproval.CanTransitionTo(TaskStatusApprovalRejected))
		require.True(t, TaskStatusApprovalRejected.CanTransitionTo(TaskStatusRevisionInProgress))
		require.True(t, TaskStatusRevisionInProgress.CanTransitionTo(TaskStatusRevisionSubmitted))
		require.True(t, TaskStatusRevisionSubmitted.CanTransitionTo(TaskStatusAwaitingApproval))
		require.True(t, TaskStatusRevisionSubmitted.CanTransitionTo(TaskStatusSubmissionRejected))
	})

	t.Run(`skipping stages is not allowed`, func(t *testing.T) {
		require.False(t, TaskStatusDraft.CanTransitionTo(TaskStatusCompleted))
		require.False(t, TaskStatusDraft.CanTransitionTo(TaskStatusAwaitingReview))
		require.False(t, TaskStatusInProgress.CanTransitionTo(TaskStatusCompleted))
		require.False(t, TaskStatusAwaitingReview.CanTransitionTo(TaskStatusCompleted))
	})

	t.Run(`completed is terminal`, func(t *testing.T) {
		for status := range taskStatusHumanName {
			if status == TaskStatusCompleted {
				continue
			}
			require.False(t, TaskStatusCompleted.CanTransitionTo(status),
				"completed -> %s should be rejected", status)
		}
	})

	t.Run(`writing the current status is a no-op`, func(t *testing.T) {
		for status := range taskStatusHumanName {
			require.True(t, status.CanTransitionTo(status))
		}
	})

	t.Run(`moving backwards is not allowed`, func(t *testing.T) {
		require.False(t, TaskStatusInProgress.CanTransitionTo(TaskStatusDraft))
		require.False(t, TaskStatusAwaitingReview.CanTransitionTo(TaskStatusInProgress))
		require.False(t, TaskStatusAwaitingApproval.CanTransitionTo(TaskStatusAwaitingReview))
	})

	t.Run(`IsValid recognizes all nine statuses`, func(t *testing.T) {
		require.Len(t, taskStatusHumanName, 9)
		for status := range taskStatusHumanName {
			require.True(t, status.IsValid())
		}
		require.False(t, TaskStatus("unknown").IsValid())
		require.False(t, TaskStatus("").IsValid())
	})
}

func TestKPIOperator(t *testing.T) {
	t.Run(`IsValid check`, func(t *testing.T) {
		require.True(t, KPIOperatorLessThan.IsValid())
		require.True(t, KPIOperatorGreaterThan.IsValid())
		require.False(t, KPIOperator("equals").IsValid())
	})
}
