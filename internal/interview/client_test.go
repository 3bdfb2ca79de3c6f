package interview_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"quickhire-proctor/internal/config"
	"quickhire-proctor/internal/interview"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *interview.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return interview.NewClient(config.BackendConfig{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	})
}

func TestClientStart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/interviews/start", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req interview.StartRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "demo", req.InterviewCode)
		require.Equal(t, []string{"go"}, req.Skills)

		json.NewEncoder(w).Encode(interview.StartResponse{
			Success: true,
			Interview: interview.StartedInterview{
				Questions:      []interview.Question{{Question: "What is a goroutine?"}},
				TotalQuestions: 1,
			},
		})
	})

	resp, err := client.Start(interview.StartRequest{InterviewCode: "demo", Skills: []string{"go"}})
	require.NoError(t, err)
	require.Len(t, resp.Interview.Questions, 1)
	require.Equal(t, 1, resp.Interview.TotalQuestions)
}

func TestClientStartServerRejects(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(interview.StartResponse{Success: false, Error: "invalid code"})
	})

	_, err := client.Start(interview.StartRequest{InterviewCode: "bad"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid code")
}

func TestClientStartHTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	})

	_, err := client.Start(interview.StartRequest{InterviewCode: "demo"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "500")
}

func TestClientEvaluateAnswer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/interviews/evaluate-answer", r.URL.Path)

		var req interview.EvaluateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "my answer", req.Answer)
		require.False(t, req.Skipped)

		json.NewEncoder(w).Encode(interview.EvaluateResponse{
			Evaluation:   "good",
			NextQuestion: &interview.Question{Question: "Next one"},
			IsFollowUp:   true,
		})
	})

	resp, err := client.EvaluateAnswer(interview.EvaluateRequest{
		Answer:        "my answer",
		InterviewCode: "demo",
	})
	require.NoError(t, err)
	require.Equal(t, "good", resp.Evaluation)
	require.NotNil(t, resp.NextQuestion)
	require.True(t, resp.IsFollowUp)
}

func TestClientReportActivity(t *testing.T) {
	var received interview.ActivityReport
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/interviews/report-activity", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	})

	err := client.ReportActivity(interview.ActivityReport{
		InterviewCode:  "demo",
		AppSwitchCount: 2,
		ActivityLevel:  "medium",
	})
	require.NoError(t, err)
	require.Equal(t, "demo", received.InterviewCode)
	require.Equal(t, "medium", received.ActivityLevel)
}

func TestClientEnd(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/interviews/end", r.URL.Path)

		var req interview.EndRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "attempt-1", req.InterviewID)
		require.Len(t, req.SuspiciousActivityLogs, 1)

		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	})

	err := client.End(interview.EndRequest{
		InterviewID:   "attempt-1",
		CandidateCode: "candidate-1",
		SuspiciousActivityLogs: []interview.LogEntry{
			{Time: "2026-01-01T00:00:00Z", Message: "tab switch"},
		},
	})
	require.NoError(t, err)
}

func TestClientEndRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": "unknown interview"})
	})

	err := client.End(interview.EndRequest{InterviewID: "missing"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown interview")
}
