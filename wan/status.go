package wan

import "encoding/json"

// TaskStatus is the upstream's task state. The constants below are the
// values translation recognizes; any other value the upstream emits is
// passed through verbatim and treated as still in progress.
type TaskStatus string

const (
	StatusUnknown   TaskStatus = "UNKNOWN"
	StatusSucceeded TaskStatus = "SUCCEEDED"
	StatusFailed    TaskStatus = "FAILED"
)

// taskResponse is the upstream GET /tasks/{id} response body.
type taskResponse struct {
	Output struct {
		TaskStatus TaskStatus `json:"task_status"`
		VideoURL   string     `json:"video_url"`
		Message    string     `json:"message"`
	} `json:"output"`
	Usage json.RawMessage `json:"usage"`
}

// StatusReport is the normalized client-facing view of a task. VideoURL
// is set only for a succeeded task; Usage is forwarded from the upstream
// unvalidated.
type StatusReport struct {
	Status      TaskStatus      `json:"status"`
	ProgressMsg string          `json:"progress_msg"`
	VideoURL    *string         `json:"video_url"`
	Usage       json.RawMessage `json:"usage"`
}

func translateTask(resp taskResponse) StatusReport {
	report := StatusReport{
		Status:      resp.Output.TaskStatus,
		ProgressMsg: "Processing...",
		Usage:       resp.Usage,
	}
	if report.Status == "" {
		report.Status = StatusUnknown
	}
	if len(report.Usage) == 0 {
		report.Usage = json.RawMessage("{}")
	}

	switch report.Status {
	case StatusSucceeded:
		report.ProgressMsg = "Completed"
		if resp.Output.VideoURL != "" {
			url := resp.Output.VideoURL
			report.VideoURL = &url
		}
	case StatusFailed:
		msg := resp.Output.Message
		if msg == "" {
			msg = "Unknown error"
		}
		report.ProgressMsg = "Failed: " + msg
	}

	return report
}
