package tools

import (
	"context"
	"fmt"
)

// ComplianceScoreTool reports the fleet-wide compliance score
type ComplianceScoreTool struct{}

func (c *ComplianceScoreTool) Name() string {
	return "get_compliance_score"
}

func (c *ComplianceScoreTool) Description() string {
	return "Get the current fleet-wide compliance score from the last audit"
}

func (c *ComplianceScoreTool) Parameters() map[string]interface{} {
	return map[string]interface{}{}
}

func (c *ComplianceScoreTool) RequiredParameters() []string {
	return []string{}
}

func (c *ComplianceScoreTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	return fmt.Sprintf("Fleet compliance score: %d/100", complianceScore), nil
}
