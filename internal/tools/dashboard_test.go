package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeStatusKnownNode(t *testing.T) {
	tool := &NodeStatusTool{}

	result, err := tool.Execute(context.Background(), map[string]interface{}{"node_id": "edge-01"})
	require.NoError(t, err)

	status, ok := result.(string)
	require.True(t, ok)
	assert.Contains(t, status, "edge-01")
	assert.Contains(t, status, "online")
	assert.Contains(t, status, "v2.4.1")
	assert.Contains(t, status, "0.42")
}

func TestNodeStatusUnknownNode(t *testing.T) {
	tool := &NodeStatusTool{}

	result, err := tool.Execute(context.Background(), map[string]interface{}{"node_id": "edge-99"})
	require.NoError(t, err)
	assert.Contains(t, result.(string), "not found")
	assert.Contains(t, result.(string), "edge-99")
}

func TestNodeStatusMissingID(t *testing.T) {
	tool := &NodeStatusTool{}

	_, err := tool.Execute(context.Background(), map[string]interface{}{})
	assert.Error(t, err)
}

func TestRecentLogsLimit(t *testing.T) {
	tool := &RecentLogsTool{}

	for _, limit := range []int{1, 3, 100} {
		result, err := tool.Execute(context.Background(), map[string]interface{}{"limit": float64(limit)})
		require.NoError(t, err)

		lines := strings.Split(result.(string), "\n")
		assert.LessOrEqual(t, len(lines), limit)
		for _, line := range lines {
			assert.True(t, strings.HasPrefix(line, "• "), "line %q should be bulleted", line)
		}
	}
}

func TestRecentLogsDefaultLimit(t *testing.T) {
	tool := &RecentLogsTool{}

	result, err := tool.Execute(context.Background(), map[string]interface{}{})
	require.NoError(t, err)
	assert.Len(t, strings.Split(result.(string), "\n"), 5)
}

func TestRecentLogsZeroLimit(t *testing.T) {
	tool := &RecentLogsTool{}

	result, err := tool.Execute(context.Background(), map[string]interface{}{"limit": float64(0)})
	require.NoError(t, err)
	assert.Equal(t, "No log entries available", result)
}

func TestRecentLogsNegativeLimit(t *testing.T) {
	tool := &RecentLogsTool{}

	_, err := tool.Execute(context.Background(), map[string]interface{}{"limit": float64(-1)})
	assert.Error(t, err)
}

func TestComplianceScoreIsConstant(t *testing.T) {
	tool := &ComplianceScoreTool{}

	first, err := tool.Execute(context.Background(), map[string]interface{}{})
	require.NoError(t, err)
	second, err := tool.Execute(context.Background(), map[string]interface{}{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first.(string), "94")
}

type stubConfirmator struct {
	approve  bool
	lastSeen ConfirmationRequest
	calls    int
}

func (s *stubConfirmator) RequestConfirmation(req ConfirmationRequest) bool {
	s.lastSeen = req
	s.calls++
	return s.approve
}

func TestDeployConfirmed(t *testing.T) {
	tool := &DeployTool{}
	confirmator := &stubConfirmator{approve: true}
	tool.SetConfirmator(confirmator)

	result, err := tool.Execute(context.Background(), map[string]interface{}{
		"package": "agent-v2.5.0",
		"node_id": "edge-01",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, confirmator.calls)
	assert.Equal(t, "agent-v2.5.0", confirmator.lastSeen.Package)
	assert.Equal(t, "edge-01", confirmator.lastSeen.NodeID)
	assert.Contains(t, result.(string), "confirmed and started")
	assert.Contains(t, result.(string), "agent-v2.5.0")
	assert.Contains(t, result.(string), "edge-01")
}

func TestDeployCancelled(t *testing.T) {
	tool := &DeployTool{}
	tool.SetConfirmator(&stubConfirmator{approve: false})

	result, err := tool.Execute(context.Background(), map[string]interface{}{
		"package": "agent-v2.5.0",
		"node_id": "edge-02",
	})
	require.NoError(t, err)
	assert.Contains(t, result.(string), "cancelled by the user")
}

func TestDeployWithoutConfirmator(t *testing.T) {
	tool := &DeployTool{}

	_, err := tool.Execute(context.Background(), map[string]interface{}{
		"package": "agent-v2.5.0",
		"node_id": "edge-01",
	})
	assert.Error(t, err)
}

func TestDeployMissingParams(t *testing.T) {
	tool := &DeployTool{}
	tool.SetConfirmator(&stubConfirmator{approve: true})

	_, err := tool.Execute(context.Background(), map[string]interface{}{"package": "agent-v2.5.0"})
	assert.Error(t, err)
}
