package wan

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marshalPayload(t *testing.T, p synthesisPayload) map[string]interface{} {
	t.Helper()
	raw, err := json.Marshal(p)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return decoded
}

func TestBuildSynthesisPayloadAllFields(t *testing.T) {
	neg := "blurry, low quality"
	audio := false
	extend := false
	req := GenerationRequest{
		Prompt:         "a corgi surfing",
		NegativePrompt: &neg,
		Size:           "1920*1080",
		Duration:       10,
		Audio:          &audio,
		PromptExtend:   &extend,
	}

	p := buildSynthesisPayload("wan2.6-t2v", req)
	decoded := marshalPayload(t, p)

	assert.Equal(t, "wan2.6-t2v", decoded["model"])
	input := decoded["input"].(map[string]interface{})
	assert.Equal(t, "a corgi surfing", input["prompt"])
	assert.Equal(t, "blurry, low quality", input["negative_prompt"])
	params := decoded["parameters"].(map[string]interface{})
	assert.Equal(t, "1920*1080", params["size"])
	assert.Equal(t, float64(10), params["duration"])
	assert.Equal(t, false, params["audio"])
	assert.Equal(t, false, params["prompt_extend"])
}

func TestBuildSynthesisPayloadDefaults(t *testing.T) {
	p := buildSynthesisPayload("wan2.6-t2v", GenerationRequest{Prompt: "a cat"})
	decoded := marshalPayload(t, p)

	params := decoded["parameters"].(map[string]interface{})
	assert.Equal(t, "1280*720", params["size"])
	assert.Equal(t, float64(5), params["duration"])
	assert.Equal(t, true, params["audio"])
	assert.Equal(t, true, params["prompt_extend"])
}

func TestBuildSynthesisPayloadAbsentNegativePromptIsOmitted(t *testing.T) {
	p := buildSynthesisPayload("wan2.6-t2v", GenerationRequest{Prompt: "a cat"})
	decoded := marshalPayload(t, p)

	input := decoded["input"].(map[string]interface{})
	_, present := input["negative_prompt"]
	assert.False(t, present, "absent negative_prompt must not appear in the payload")
}

func TestBuildSynthesisPayloadEmptyNegativePromptIsKept(t *testing.T) {
	empty := ""
	p := buildSynthesisPayload("wan2.6-t2v", GenerationRequest{Prompt: "a cat", NegativePrompt: &empty})
	decoded := marshalPayload(t, p)

	input := decoded["input"].(map[string]interface{})
	val, present := input["negative_prompt"]
	assert.True(t, present, "explicit empty negative_prompt must be forwarded")
	assert.Equal(t, "", val)
}
