package tools

// RegisterBuiltinTools registers the dashboard tool set to a registry
func RegisterBuiltinTools(registry *Registry) {
	registry.Register(&NodeStatusTool{})
	registry.Register(&RecentLogsTool{})
	registry.Register(&ComplianceScoreTool{})
	registry.Register(&DeployTool{})
}
