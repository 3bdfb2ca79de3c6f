package storage_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"quickhire-proctor/internal/interview"
	"quickhire-proctor/internal/proctor"
	"quickhire-proctor/internal/storage"
)

func sampleResult() *storage.InterviewResult {
	return &storage.InterviewResult{
		InterviewID:     "attempt-1",
		CandidateCode:   "candidate-1",
		Timestamp:       time.Now().Format(time.RFC3339),
		FinalEvaluation: "solid performance",
		Answers: []interview.Answer{
			{Answer: "first", QuestionNumber: 1, Evaluation: "good"},
		},
		ActivityLog: []proctor.SuspiciousEvent{
			{Time: time.Now(), Message: "tab switch", Source: proctor.SourceVisibility},
		},
		SuspiciousActivityCount: 1,
		AppSwitchCount:          1,
	}
}

func TestServiceSaveAndLoad(t *testing.T) {
	service := storage.NewService(t.TempDir())

	require.NoError(t, service.SaveResult(sampleResult()))

	loaded, err := service.LoadResult("attempt-1")
	require.NoError(t, err)
	require.Equal(t, "candidate-1", loaded.CandidateCode)
	require.Equal(t, "solid performance", loaded.FinalEvaluation)
	require.Len(t, loaded.Answers, 1)
	require.Len(t, loaded.ActivityLog, 1)
	require.Equal(t, proctor.SourceVisibility, loaded.ActivityLog[0].Source)
}

func TestServiceCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "results")
	service := storage.NewService(dir)
	require.NoError(t, service.SaveResult(sampleResult()))
}

func TestServiceLoadMissing(t *testing.T) {
	service := storage.NewService(t.TempDir())
	_, err := service.LoadResult("missing")
	require.Error(t, err)
}

func TestServiceListResults(t *testing.T) {
	service := storage.NewService(t.TempDir())

	first := sampleResult()
	second := sampleResult()
	second.InterviewID = "attempt-2"
	require.NoError(t, service.SaveResult(first))
	require.NoError(t, service.SaveResult(second))

	ids, err := service.ListResults()
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"attempt-1", "attempt-2"}, ids)
}

func TestServiceListEmptyDirectory(t *testing.T) {
	service := storage.NewService(filepath.Join(t.TempDir(), "missing"))
	ids, err := service.ListResults()
	require.NoError(t, err)
	require.Empty(t, ids)
}
