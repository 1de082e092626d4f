package core

import (
	"errors"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calween/opsdeck/internal/models"
)

func TestStateMessageConversion(t *testing.T) {
	state := NewChatState()
	state.AddProgramMessage("welcome")
	state.StartProcessingWithUserMessage("status of edge-01?")
	state.AddAssistantMessageWithToolCalls("", []openai.ToolCall{{
		ID:   "call-1",
		Type: openai.ToolTypeFunction,
		Function: openai.FunctionCall{
			Name:      "get_node_status",
			Arguments: `{"node_id":"edge-01"}`,
		},
	}})
	state.AddToolResultMessage("call-1", "get_node_status", "Node edge-01: status=online")
	state.AddAssistantMessageWithToolCalls("edge-01 is online.", nil)

	messages := state.GetMessages()
	require.Len(t, messages, 5)

	assert.Equal(t, models.Program, messages[0].Type)
	assert.Equal(t, models.User, messages[1].Type)
	assert.Equal(t, models.ToolCall, messages[2].Type)
	assert.Equal(t, "get_node_status", messages[2].ToolName)
	assert.Equal(t, models.ToolResult, messages[3].Type)
	assert.Equal(t, "get_node_status", messages[3].ToolName, "tool result should resolve its name from the call")
	assert.Equal(t, models.Assistant, messages[4].Type)
}

func TestStateProcessingLifecycle(t *testing.T) {
	state := NewChatState()
	assert.False(t, state.IsProcessing())

	state.StartProcessingWithUserMessage("hi")
	assert.True(t, state.IsProcessing())

	state.FinishProcessing()
	assert.False(t, state.IsProcessing())
	assert.NoError(t, state.GetLastError())
}

func TestStateErrorClearsProcessing(t *testing.T) {
	state := NewChatState()
	state.StartProcessingWithUserMessage("hi")

	state.FinishProcessingWithError(errors.New("boom"))
	assert.False(t, state.IsProcessing(), "input must be re-enabled after an error")
	assert.EqualError(t, state.GetLastError(), "boom")
}

func TestStatePendingToolCallBatch(t *testing.T) {
	state := NewChatState()
	state.AddPendingToolCall("a")
	state.AddPendingToolCall("b")
	assert.True(t, state.HasPendingToolCalls())

	assert.False(t, state.CompletePendingToolCall("a"), "batch not yet complete")
	assert.True(t, state.CompletePendingToolCall("b"), "batch complete after last call")
	assert.False(t, state.HasPendingToolCalls())
}

func TestStateRecursionCap(t *testing.T) {
	state := NewChatState()

	for i := 0; i < state.maxRecursionDepth; i++ {
		assert.True(t, state.CanRecurse())
		state.IncrementRecursion()
	}
	assert.False(t, state.CanRecurse())

	state.ResetRecursion()
	assert.True(t, state.CanRecurse())
}
