package tools

import (
	"context"
	"fmt"
)

// DeployTool stages a deployment that must be confirmed by the user before it
// completes. Without a confirmator it refuses to run.
type DeployTool struct {
	confirmator Confirmator
}

func (d *DeployTool) Name() string {
	return "start_deployment"
}

func (d *DeployTool) Description() string {
	return "Start deploying a package to a fleet node. The user must explicitly confirm before the deployment proceeds."
}

func (d *DeployTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"package": map[string]interface{}{
			"type":        "string",
			"description": "Name and version of the package to deploy, e.g. 'agent-v2.5.0'",
		},
		"node_id": map[string]interface{}{
			"type":        "string",
			"description": "Identifier of the node to deploy to",
		},
	}
}

func (d *DeployTool) RequiredParameters() []string {
	return []string{"package", "node_id"}
}

func (d *DeployTool) SetConfirmator(confirmator Confirmator) {
	d.confirmator = confirmator
}

type deployParams struct {
	Package string `json:"package"`
	NodeID  string `json:"node_id"`
}

func (d *DeployTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	var params deployParams
	if err := decodeArgs(args, &params); err != nil {
		return nil, err
	}

	if params.Package == "" || params.NodeID == "" {
		return nil, fmt.Errorf("package and node_id parameters must be non-empty strings")
	}

	if d.confirmator == nil {
		return nil, fmt.Errorf("deployment requires user confirmation but no confirmator is configured")
	}

	approved := d.confirmator.RequestConfirmation(ConfirmationRequest{
		Action:  fmt.Sprintf("Deploy %s to %s", params.Package, params.NodeID),
		Package: params.Package,
		NodeID:  params.NodeID,
	})

	if !approved {
		return fmt.Sprintf("Deployment of %s to %s was cancelled by the user", params.Package, params.NodeID), nil
	}

	return fmt.Sprintf("Deployment of %s to %s confirmed and started", params.Package, params.NodeID), nil
}
