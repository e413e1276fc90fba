package wan

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wanproxy/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeTaskResponse(t *testing.T, body string) taskResponse {
	t.Helper()
	var resp taskResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	return resp
}

func TestTranslateTaskSucceeded(t *testing.T) {
	resp := decodeTaskResponse(t, `{"output":{"task_status":"SUCCEEDED","video_url":"http://x/v.mp4"}}`)

	report := translateTask(resp)

	assert.Equal(t, StatusSucceeded, report.Status)
	assert.Equal(t, "Completed", report.ProgressMsg)
	require.NotNil(t, report.VideoURL)
	assert.Equal(t, "http://x/v.mp4", *report.VideoURL)
}

func TestTranslateTaskFailed(t *testing.T) {
	resp := decodeTaskResponse(t, `{"output":{"task_status":"FAILED","message":"quota exceeded"}}`)

	report := translateTask(resp)

	assert.Equal(t, StatusFailed, report.Status)
	assert.Equal(t, "Failed: quota exceeded", report.ProgressMsg)
	assert.Nil(t, report.VideoURL)
}

func TestTranslateTaskFailedWithoutMessage(t *testing.T) {
	resp := decodeTaskResponse(t, `{"output":{"task_status":"FAILED"}}`)

	report := translateTask(resp)

	assert.Equal(t, "Failed: Unknown error", report.ProgressMsg)
}

func TestTranslateTaskStatusAbsent(t *testing.T) {
	resp := decodeTaskResponse(t, `{"output":{}}`)

	report := translateTask(resp)

	assert.Equal(t, StatusUnknown, report.Status)
	assert.Equal(t, "Processing...", report.ProgressMsg)
	assert.Nil(t, report.VideoURL)
}

func TestTranslateTaskUnrecognizedStatusPassesThrough(t *testing.T) {
	resp := decodeTaskResponse(t, `{"output":{"task_status":"IN_QUEUE"}}`)

	report := translateTask(resp)

	assert.Equal(t, TaskStatus("IN_QUEUE"), report.Status)
	assert.Equal(t, "Processing...", report.ProgressMsg)
}

func TestTranslateTaskUsagePassThrough(t *testing.T) {
	resp := decodeTaskResponse(t, `{"output":{"task_status":"SUCCEEDED","video_url":"http://x/v.mp4"},"usage":{"video_count":1,"video_duration":5}}`)

	report := translateTask(resp)

	assert.JSONEq(t, `{"video_count":1,"video_duration":5}`, string(report.Usage))
}

func TestTranslateTaskUsageDefaultsToEmptyObject(t *testing.T) {
	resp := decodeTaskResponse(t, `{"output":{"task_status":"RUNNING"}}`)

	report := translateTask(resp)

	assert.JSONEq(t, `{}`, string(report.Usage))
}

func TestTaskStatusAgainstFakeUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tasks/task-42", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"output":{"task_status":"SUCCEEDED","video_url":"http://x/v.mp4"},"usage":{"video_count":1}}`))
	}))
	defer srv.Close()

	cfg := &config.Config{
		APIKey:         "sk-test",
		BaseURL:        srv.URL,
		Model:          "wan2.6-t2v",
		SubmitAttempts: 3,
		RetryDelay:     time.Millisecond,
	}
	client := NewClient(cfg, srv.Client())

	report, err := client.TaskStatus(context.Background(), "task-42")
	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, report.Status)
	assert.Equal(t, "Completed", report.ProgressMsg)
	require.NotNil(t, report.VideoURL)
	assert.Equal(t, "http://x/v.mp4", *report.VideoURL)
}
