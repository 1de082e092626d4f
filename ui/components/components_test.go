package components

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/calween/opsdeck/internal/models"
)

func TestRenderMessagesIncludesAllTypes(t *testing.T) {
	out := RenderMessages([]models.Message{
		{Content: "-- OPSDECK --", Type: models.Program},
		{Content: "status of edge-01?", Type: models.User},
		{Content: `{"node_id":"edge-01"}`, Type: models.ToolCall, ToolName: "get_node_status", ToolArgs: `{"node_id":"edge-01"}`},
		{Content: "Node edge-01: status=online", Type: models.ToolResult, ToolName: "get_node_status"},
		{Content: "edge-01 is online.", Type: models.Assistant},
	})

	assert.Contains(t, out, "OPSDECK")
	assert.Contains(t, out, "You: status of edge-01?")
	assert.Contains(t, out, "get_node_status")
	assert.Contains(t, out, "status=online")
	assert.Contains(t, out, "edge-01 is online.")
}

func TestRenderConfirmationShowsPackageAndNode(t *testing.T) {
	out := RenderConfirmation(&models.ConfirmationRequest{
		ID:      "req-1",
		Action:  "Deploy agent-v2.5.0 to edge-01",
		Package: "agent-v2.5.0",
		NodeID:  "edge-01",
	})

	assert.Contains(t, out, "agent-v2.5.0")
	assert.Contains(t, out, "edge-01")
	assert.Contains(t, out, "[y] confirm")
}

func TestRenderConfirmationEmptyWhenIdle(t *testing.T) {
	assert.Empty(t, RenderConfirmation(nil))
}

func TestRenderMarkdownBullets(t *testing.T) {
	out := RenderMarkdown("# Fleet\n- edge-01 online\n- edge-02 degraded")

	assert.Contains(t, out, "Fleet")
	assert.Contains(t, out, "• edge-01 online")
	assert.Contains(t, out, "• edge-02 degraded")
}
