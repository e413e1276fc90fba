package wan

// Defaults applied to fields the caller leaves unset.
const (
	DefaultSize     = "1280*720"
	DefaultDuration = 5
)

// GenerationRequest is the inbound request for a text-to-video task.
// Optional fields use pointers so that an explicitly supplied empty or
// false value stays distinguishable from an absent one.
type GenerationRequest struct {
	Prompt         string  `json:"prompt" binding:"required"`
	NegativePrompt *string `json:"negative_prompt"`
	Size           string  `json:"size"`
	Duration       int     `json:"duration"`
	Audio          *bool   `json:"audio"`
	PromptExtend   *bool   `json:"prompt_extend"`
}

type synthesisInput struct {
	Prompt         string  `json:"prompt"`
	NegativePrompt *string `json:"negative_prompt,omitempty"`
}

type synthesisParameters struct {
	Size         string `json:"size"`
	Duration     int    `json:"duration"`
	PromptExtend bool   `json:"prompt_extend"`
	Audio        bool   `json:"audio"`
}

type synthesisPayload struct {
	Model      string              `json:"model"`
	Input      synthesisInput      `json:"input"`
	Parameters synthesisParameters `json:"parameters"`
}

// buildSynthesisPayload maps a GenerationRequest onto the upstream wire
// shape. A nil NegativePrompt is omitted from the payload entirely; a
// pointer to "" is forwarded as an empty string.
func buildSynthesisPayload(model string, req GenerationRequest) synthesisPayload {
	size := req.Size
	if size == "" {
		size = DefaultSize
	}
	duration := req.Duration
	if duration == 0 {
		duration = DefaultDuration
	}
	audio := true
	if req.Audio != nil {
		audio = *req.Audio
	}
	promptExtend := true
	if req.PromptExtend != nil {
		promptExtend = *req.PromptExtend
	}

	return synthesisPayload{
		Model: model,
		Input: synthesisInput{
			Prompt:         req.Prompt,
			NegativePrompt: req.NegativePrompt,
		},
		Parameters: synthesisParameters{
			Size:         size,
			Duration:     duration,
			PromptExtend: promptExtend,
			Audio:        audio,
		},
	}
}
