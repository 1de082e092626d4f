package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Tool is one callable dashboard operation exposed to the model.
type Tool interface {
	Name() string
	Description() string
	Parameters() map[string]interface{} // JSON schema properties
	RequiredParameters() []string
	Execute(ctx context.Context, args map[string]interface{}) (interface{}, error)
}

// ToolCall represents a tool call request from the model
type ToolCall struct {
	ID   string                 `json:"id"`
	Name string                 `json:"name"`
	Args map[string]interface{} `json:"arguments"`
}

// ToolResult represents the result of a tool execution
type ToolResult struct {
	CallID string      `json:"call_id"`
	Name   string      `json:"name"`
	Result interface{} `json:"result"`
	Error  string      `json:"error,omitempty"`
}

// ToolSpec is the SDK-agnostic description of a tool handed to the model.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
	Required    []string
}

// Registry holds the closed set of operations the model may invoke.
type Registry struct {
	tools map[string]Tool
	mu    sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

func (r *Registry) Register(tool Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[tool.Name()] = tool
}

func (r *Registry) GetTool(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, exists := r.tools[name]
	return tool, exists
}

func (r *Registry) ListTools() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		tools = append(tools, tool)
	}
	return tools
}

// Specs returns the declarations for every registered tool.
func (r *Registry) Specs() []ToolSpec {
	tools := r.ListTools()
	specs := make([]ToolSpec, len(tools))

	for i, tool := range tools {
		specs[i] = ToolSpec{
			Name:        tool.Name(),
			Description: tool.Description(),
			Parameters:  tool.Parameters(),
			Required:    tool.RequiredParameters(),
		}
	}

	return specs
}

// SetConfirmator wires the confirmator into every tool that stages
// user-confirmed actions.
func (r *Registry) SetConfirmator(confirmator Confirmator) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, tool := range r.tools {
		if aware, ok := tool.(ConfirmationAware); ok {
			aware.SetConfirmator(confirmator)
		}
	}
}

// ExecuteAsync executes a tool call in its own goroutine and delivers the
// result on resultChan, which is closed afterwards.
func (r *Registry) ExecuteAsync(ctx context.Context, call ToolCall, resultChan chan<- ToolResult) {
	go func() {
		defer close(resultChan)

		tool, exists := r.GetTool(call.Name)
		if !exists {
			resultChan <- ToolResult{
				CallID: call.ID,
				Name:   call.Name,
				Error:  fmt.Sprintf("tool '%s' not found", call.Name),
			}
			return
		}

		result, err := tool.Execute(ctx, call.Args)
		toolResult := ToolResult{
			CallID: call.ID,
			Name:   call.Name,
			Result: result,
		}

		if err != nil {
			toolResult.Error = err.Error()
		}

		resultChan <- toolResult
	}()
}

// decodeArgs converts a JSON argument record into a typed parameter struct,
// replacing name-keyed dynamic lookups with per-tool typed handlers.
func decodeArgs(args map[string]interface{}, out interface{}) error {
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("failed to encode arguments: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}
