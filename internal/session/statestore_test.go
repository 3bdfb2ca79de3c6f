package session_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"quickhire-proctor/internal/interview"
	"quickhire-proctor/internal/platform"
	"quickhire-proctor/internal/session"
)

func TestStateStoreRoundtrip(t *testing.T) {
	store := platform.NewMemoryStorage()
	states := session.NewStateStore(store, "code-1")

	saved := &session.InFlightState{
		AttemptID:      "attempt-1",
		Questions:      []interview.Question{{Question: "What is a closure?"}},
		TotalQuestions: 5,
		QuestionIndex:  2,
		Answers: []interview.Answer{
			{Answer: "first", QuestionNumber: 1},
		},
		SkippedQuestions:   []int{1},
		IsFollowUpQuestion: true,
		FollowUpCount:      1,
	}
	saved.CurrentQuestion = &saved.Questions[0]
	states.Save(saved)

	restored := states.Restore()
	require.Equal(t, saved.AttemptID, restored.AttemptID)
	require.Equal(t, saved.QuestionIndex, restored.QuestionIndex)
	require.Equal(t, saved.TotalQuestions, restored.TotalQuestions)
	require.Equal(t, saved.SkippedQuestions, restored.SkippedQuestions)
	require.True(t, restored.IsFollowUpQuestion)
	require.Len(t, restored.Answers, 1)
	require.NotNil(t, restored.CurrentQuestion)
	require.Equal(t, "What is a closure?", restored.CurrentQuestion.Question)
}

func TestStateStoreMissingIsEmpty(t *testing.T) {
	states := session.NewStateStore(platform.NewMemoryStorage(), "code-1")
	restored := states.Restore()
	require.NotNil(t, restored)
	require.Empty(t, restored.Questions)
	require.Nil(t, restored.CurrentQuestion)
}

func TestStateStoreCorruptIsEmpty(t *testing.T) {
	store := platform.NewMemoryStorage()
	store.Set("interviewState_code-1", "{broken json")

	states := session.NewStateStore(store, "code-1")
	restored := states.Restore()
	require.Empty(t, restored.Questions)
}

func TestStateStoreClear(t *testing.T) {
	store := platform.NewMemoryStorage()
	states := session.NewStateStore(store, "code-1")

	states.Save(&session.InFlightState{QuestionIndex: 3})
	states.Clear()
	require.Zero(t, states.Restore().QuestionIndex)
}

func TestStateStoreNamespacedByCode(t *testing.T) {
	store := platform.NewMemoryStorage()
	one := session.NewStateStore(store, "code-1")
	two := session.NewStateStore(store, "code-2")

	one.Save(&session.InFlightState{QuestionIndex: 3})
	require.Zero(t, two.Restore().QuestionIndex)
	require.Equal(t, 3, one.Restore().QuestionIndex)
}
