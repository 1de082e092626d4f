package models

type MessageType int

const (
	User MessageType = iota
	Assistant
	Program
	ToolCall
	ToolResult
)

type Message struct {
	Content string
	Type    MessageType
	// Set for ToolCall and ToolResult messages
	ToolCallID string
	ToolName   string
	ToolArgs   string // JSON string, ToolCall only
}
