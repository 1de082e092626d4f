package core

import (
	"sync"

	"github.com/sashabaranov/go-openai"

	"github.com/calween/opsdeck/internal/models"
)

// ChatState owns the conversation history. The openai message slice is the
// single source of truth; UI messages are derived from it on demand.
type ChatState struct {
	mu              sync.RWMutex
	chatHistory     []openai.ChatCompletionMessage
	programMessages []models.Message // welcome/status lines shown before the conversation
	isProcessing    bool
	lastError       error

	pendingToolCalls  map[string]bool
	recursionDepth    int
	maxRecursionDepth int
}

func NewChatState() *ChatState {
	return &ChatState{
		chatHistory:       make([]openai.ChatCompletionMessage, 0),
		programMessages:   make([]models.Message, 0),
		pendingToolCalls:  make(map[string]bool),
		maxRecursionDepth: 5, // Prevent infinite tool-call loops
	}
}

func (cs *ChatState) GetChatHistory() []openai.ChatCompletionMessage {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	result := make([]openai.ChatCompletionMessage, len(cs.chatHistory))
	copy(result, cs.chatHistory)
	return result
}

// GetMessages converts program messages plus the openai history into the UI
// message list.
func (cs *ChatState) GetMessages() []models.Message {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	var result []models.Message
	result = append(result, cs.programMessages...)

	for _, openaiMsg := range cs.chatHistory {
		switch openaiMsg.Role {
		case openai.ChatMessageRoleUser:
			result = append(result, models.Message{
				Content: openaiMsg.Content,
				Type:    models.User,
			})
		case openai.ChatMessageRoleAssistant:
			if openaiMsg.Content != "" {
				result = append(result, models.Message{
					Content: openaiMsg.Content,
					Type:    models.Assistant,
				})
			}
			for _, toolCall := range openaiMsg.ToolCalls {
				result = append(result, models.Message{
					Content:    toolCall.Function.Arguments,
					Type:       models.ToolCall,
					ToolCallID: toolCall.ID,
					ToolName:   toolCall.Function.Name,
					ToolArgs:   toolCall.Function.Arguments,
				})
			}
		case openai.ChatMessageRoleTool:
			result = append(result, models.Message{
				Content:    openaiMsg.Content,
				Type:       models.ToolResult,
				ToolCallID: openaiMsg.ToolCallID,
				ToolName:   toolNameForCall(cs.chatHistory, openaiMsg.ToolCallID),
			})
		}
	}

	return result
}

// toolNameForCall finds the tool name for a given tool call ID
func toolNameForCall(history []openai.ChatCompletionMessage, toolCallID string) string {
	for _, msg := range history {
		if msg.Role != openai.ChatMessageRoleAssistant {
			continue
		}
		for _, toolCall := range msg.ToolCalls {
			if toolCall.ID == toolCallID {
				return toolCall.Function.Name
			}
		}
	}
	return "unknown"
}

func (cs *ChatState) IsProcessing() bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.isProcessing
}

func (cs *ChatState) GetLastError() error {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.lastError
}

// AddProgramMessage adds a program message (welcome text, notices)
func (cs *ChatState) AddProgramMessage(content string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.programMessages = append(cs.programMessages, models.Message{
		Content: content,
		Type:    models.Program,
	})
}

// StartProcessingWithUserMessage atomically flips into processing and records
// the user's message.
func (cs *ChatState) StartProcessingWithUserMessage(content string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.isProcessing = true
	cs.lastError = nil
	cs.chatHistory = append(cs.chatHistory, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: content,
	})
}

// FinishProcessingWithError stops processing and records the error. Input is
// always re-enabled after a failure.
func (cs *ChatState) FinishProcessingWithError(err error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.isProcessing = false
	cs.lastError = err
}

func (cs *ChatState) FinishProcessing() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.isProcessing = false
	cs.lastError = nil
}

// AddAssistantMessageWithToolCalls appends an assistant turn, including any
// tool calls it requested.
func (cs *ChatState) AddAssistantMessageWithToolCalls(content string, toolCalls []openai.ToolCall) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.chatHistory = append(cs.chatHistory, openai.ChatCompletionMessage{
		Role:      openai.ChatMessageRoleAssistant,
		Content:   content,
		ToolCalls: toolCalls,
	})
}

// AddToolResultMessage appends one tool result turn for the given call.
func (cs *ChatState) AddToolResultMessage(callID, toolName, result string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.chatHistory = append(cs.chatHistory, openai.ChatCompletionMessage{
		Role:       openai.ChatMessageRoleTool,
		Content:    result,
		ToolCallID: callID,
	})
}

func (cs *ChatState) AddPendingToolCall(callID string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.pendingToolCalls[callID] = true
}

// CompletePendingToolCall marks a call done and reports whether the whole
// batch has completed.
func (cs *ChatState) CompletePendingToolCall(callID string) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	delete(cs.pendingToolCalls, callID)
	return len(cs.pendingToolCalls) == 0
}

func (cs *ChatState) HasPendingToolCalls() bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.pendingToolCalls) > 0
}

func (cs *ChatState) CanRecurse() bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.recursionDepth < cs.maxRecursionDepth
}

func (cs *ChatState) IncrementRecursion() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.recursionDepth++
}

func (cs *ChatState) ResetRecursion() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.recursionDepth = 0
}
