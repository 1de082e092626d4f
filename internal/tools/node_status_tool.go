package tools

import (
	"context"
	"fmt"
)

// NodeStatusTool looks up the status of a single fleet node
type NodeStatusTool struct{}

func (n *NodeStatusTool) Name() string {
	return "get_node_status"
}

func (n *NodeStatusTool) Description() string {
	return "Get the current status, version, and load of a fleet node by its identifier"
}

func (n *NodeStatusTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"node_id": map[string]interface{}{
			"type":        "string",
			"description": "Node identifier, e.g. 'edge-01' or 'core-01'",
		},
	}
}

func (n *NodeStatusTool) RequiredParameters() []string {
	return []string{"node_id"}
}

type nodeStatusParams struct {
	NodeID string `json:"node_id"`
}

func (n *NodeStatusTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	var params nodeStatusParams
	if err := decodeArgs(args, &params); err != nil {
		return nil, err
	}

	if params.NodeID == "" {
		return nil, fmt.Errorf("node_id parameter must be a non-empty string")
	}

	node, exists := fleetNodes[params.NodeID]
	if !exists {
		return fmt.Sprintf("Node '%s' not found in fleet inventory", params.NodeID), nil
	}

	return fmt.Sprintf("Node %s: status=%s, version=%s, load=%.2f",
		params.NodeID, node.Status, node.Version, node.Load), nil
}
