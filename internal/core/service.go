package core

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"

	"github.com/calween/opsdeck/internal/config"
	"github.com/calween/opsdeck/internal/eventbus"
	"github.com/calween/opsdeck/internal/tools"
)

const systemPrompt = `You are the opsdeck assistant for a fleet operations dashboard.
You can look up node status, fetch recent logs, report the compliance score,
and start deployments. Deployments always require explicit user confirmation.
Answer concisely and use the tools when the user asks about the fleet.`

// requestTimeout bounds each completion call so a hung request cannot leave
// the UI disabled forever.
const requestTimeout = 60 * time.Second

type completionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ChatService drives the conversation with the model and dispatches the tool
// calls it requests.
type ChatService struct {
	client          completionClient
	config          *config.Config
	state           *ChatState
	eventBus        *eventbus.EventBus
	toolRegistry    *tools.Registry
	ctx             context.Context
	cancel          context.CancelFunc
	lastSentCount   int                  // How many messages have been pushed to the UI
	pushMutex       sync.Mutex           // Guards lastSentCount across tool goroutines
	pendingConfirms map[string]chan bool // Confirmation requests awaiting a response
	confirmMutex    sync.RWMutex
}

// NewChatService creates a ChatService regardless of config validity, so a
// missing credential is reported in the chat pane instead of crashing startup.
func NewChatService(cfg *config.Config, eb *eventbus.EventBus) (*ChatService, error) {
	var client completionClient

	if cfg.IsValid() {
		clientConfig := openai.DefaultConfig(cfg.GetAPIKey())
		if cfg.GetBaseURL() != "" {
			clientConfig.BaseURL = cfg.GetBaseURL()
		}
		client = openai.NewClientWithConfig(clientConfig)
	}

	state := NewChatState()
	ctx, cancel := context.WithCancel(context.Background())

	toolRegistry := tools.NewRegistry()
	tools.RegisterBuiltinTools(toolRegistry)

	service := &ChatService{
		client:          client, // nil when no credential is configured
		config:          cfg,
		state:           state,
		eventBus:        eb,
		toolRegistry:    toolRegistry,
		ctx:             ctx,
		cancel:          cancel,
		pendingConfirms: make(map[string]chan bool),
	}

	toolRegistry.SetConfirmator(service)

	service.addWelcomeMessages(cfg)

	return service, nil
}

// Start runs the core event loop in a goroutine
func (cs *ChatService) Start() {
	cs.pushStateToUI()
	go cs.eventLoop()
}

func (cs *ChatService) Stop() {
	cs.cancel()
}

func (cs *ChatService) eventLoop() {
	for {
		select {
		case <-cs.ctx.Done():
			return
		case event, ok := <-cs.eventBus.UIToCore():
			if !ok {
				return
			}
			cs.handleUIEvent(event)
		}
	}
}

func (cs *ChatService) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.SendMessageEvent:
		// A message landing mid-batch would split an assistant tool_calls turn
		// from its results and poison every later request
		if cs.state.IsProcessing() {
			log.Warn().Msg("dropping message received while a dispatch cycle is in flight")
			return
		}
		cs.processMessage(e.Message)
	case eventbus.ConfirmationResponseEvent:
		cs.handleConfirmationResponse(e)
	}
}

func (cs *ChatService) processMessage(userMessage string) {
	cs.state.StartProcessingWithUserMessage(userMessage)
	cs.state.ResetRecursion()
	cs.pushStateToUI()

	cs.continueConversation()
}

// continueConversation performs one completion call and, if the reply requests
// tool calls, dispatches them; it is re-entered after each completed batch
// until the reply is plain text.
func (cs *ChatService) continueConversation() {
	if cs.client == nil {
		cs.state.FinishProcessingWithError(fmt.Errorf("no API credential configured"))
		cs.pushStateToUI()
		return
	}

	if !cs.state.CanRecurse() {
		cs.state.FinishProcessingWithError(fmt.Errorf("maximum tool call recursion depth reached"))
		cs.pushStateToUI()
		return
	}
	cs.state.IncrementRecursion()

	messages := append(
		[]openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleSystem, Content: systemPrompt}},
		cs.state.GetChatHistory()...,
	)

	req := openai.ChatCompletionRequest{
		Model:    cs.config.GetModel(),
		Messages: messages,
		Tools:    cs.openaiTools(),
	}

	reqCtx, cancel := context.WithTimeout(cs.ctx, requestTimeout)
	defer cancel()

	resp, err := cs.client.CreateChatCompletion(reqCtx, req)
	if err != nil {
		log.Error().Err(err).Msg("chat completion failed")
		cs.state.FinishProcessingWithError(fmt.Errorf("chat completion failed: %w", err))
		cs.state.ResetRecursion()
		cs.pushStateToUI()
		return
	}

	if len(resp.Choices) == 0 {
		cs.state.FinishProcessing()
		cs.state.ResetRecursion()
		cs.pushStateToUI()
		return
	}

	message := resp.Choices[0].Message

	if message.Content != "" || len(message.ToolCalls) > 0 {
		cs.state.AddAssistantMessageWithToolCalls(message.Content, message.ToolCalls)
		cs.pushStateToUI()
	}

	if len(message.ToolCalls) > 0 {
		cs.handleToolCalls(message.ToolCalls)
	} else {
		cs.state.FinishProcessing()
		cs.state.ResetRecursion()
		cs.pushStateToUI()
	}
}

func (cs *ChatService) pushStateToUI() {
	cs.pushMutex.Lock()
	defer cs.pushMutex.Unlock()

	allMessages := cs.state.GetMessages()
	isProcessing := cs.state.IsProcessing()
	lastError := cs.state.GetLastError()

	// Only send messages the UI hasn't seen yet
	newMessages := allMessages[cs.lastSentCount:]
	cs.lastSentCount = len(allMessages)

	if err := cs.eventBus.SendToUI(eventbus.StateUpdateEvent{
		Messages:     newMessages,
		IsProcessing: isProcessing,
		Error:        lastError,
	}); err != nil {
		log.Warn().Err(err).Msg("failed to push state to UI")
	}
}

func (cs *ChatService) IsReady() bool {
	return cs.config.IsValid()
}

func (cs *ChatService) addWelcomeMessages(cfg *config.Config) {
	cs.state.AddProgramMessage("-- OPSDECK --")

	if cfg.IsValid() {
		cs.state.AddProgramMessage(fmt.Sprintf("Active Profile: %s [OK]", cfg.ActiveProfile))
		cs.state.AddProgramMessage("Ask about node status, logs, compliance, or deployments")
	} else {
		cs.state.AddProgramMessage(fmt.Sprintf("Active Profile: %s [NOT CONFIGURED]", cfg.ActiveProfile))
		cs.state.AddProgramMessage("No API credential found. Configure one to start chatting:")
		cs.state.AddProgramMessage("• Run: opsdeck profile add <name>")
		cs.state.AddProgramMessage(fmt.Sprintf("• Or set: %s", config.EnvAPIKey))
	}

	cs.state.AddProgramMessage("Controls: Ctrl+C to exit")
	cs.state.AddProgramMessage("")
}

// openaiTools converts registry specs into the SDK's tool declarations
func (cs *ChatService) openaiTools() []openai.Tool {
	specs := cs.toolRegistry.Specs()
	openaiTools := make([]openai.Tool, len(specs))

	for i, spec := range specs {
		openaiTools[i] = openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        spec.Name,
				Description: spec.Description,
				Parameters: map[string]interface{}{
					"type":       "object",
					"properties": spec.Parameters,
					"required":   spec.Required,
				},
			},
		}
	}

	return openaiTools
}

// handleToolCalls executes every call of the batch; the conversation resumes
// only once all results are recorded.
func (cs *ChatService) handleToolCalls(toolCalls []openai.ToolCall) {
	for _, call := range toolCalls {
		cs.state.AddPendingToolCall(call.ID)
	}

	for _, call := range toolCalls {
		cs.pushStateToUI() // show the tool call before its result arrives

		args, err := parseToolArguments(call.Function.Arguments)
		if err != nil {
			cs.state.AddToolResultMessage(call.ID, call.Function.Name, fmt.Sprintf("Error parsing arguments: %v", err))
			allComplete := cs.state.CompletePendingToolCall(call.ID)
			cs.pushStateToUI()
			if allComplete {
				cs.continueConversation()
			}
			continue
		}

		toolCall := tools.ToolCall{
			ID:   call.ID,
			Name: call.Function.Name,
			Args: args,
		}

		resultChan := make(chan tools.ToolResult, 1)
		cs.toolRegistry.ExecuteAsync(cs.ctx, toolCall, resultChan)

		go cs.handleToolResult(resultChan)
	}
}

func (cs *ChatService) handleToolResult(resultChan <-chan tools.ToolResult) {
	result := <-resultChan

	var resultContent string
	if result.Error != "" {
		resultContent = fmt.Sprintf("Error: %s", result.Error)
	} else {
		resultContent = fmt.Sprintf("%v", result.Result)
	}

	log.Debug().Str("tool", result.Name).Str("call_id", result.CallID).Msg("tool call completed")

	cs.state.AddToolResultMessage(result.CallID, result.Name, resultContent)
	cs.pushStateToUI()

	if cs.state.CompletePendingToolCall(result.CallID) {
		cs.continueConversation()
	}
}

// requestUserConfirmation parks a response channel under a fresh id, asks the
// UI to show the dialog, and blocks until the user decides or the service
// shuts down.
func (cs *ChatService) requestUserConfirmation(req tools.ConfirmationRequest) bool {
	id := uuid.NewString()

	responseChan := make(chan bool, 1)

	cs.confirmMutex.Lock()
	cs.pendingConfirms[id] = responseChan
	cs.confirmMutex.Unlock()

	cleanup := func() {
		cs.confirmMutex.Lock()
		delete(cs.pendingConfirms, id)
		cs.confirmMutex.Unlock()
	}

	event := eventbus.ConfirmationRequestEvent{
		ID:      id,
		Action:  req.Action,
		Package: req.Package,
		NodeID:  req.NodeID,
	}

	if err := cs.eventBus.SendToUI(event); err != nil {
		log.Error().Err(err).Msg("failed to send confirmation request to UI")
		cleanup()
		return false
	}

	select {
	case approved := <-responseChan:
		cleanup()
		return approved
	case <-cs.ctx.Done():
		cleanup()
		return false
	}
}

func (cs *ChatService) handleConfirmationResponse(response eventbus.ConfirmationResponseEvent) {
	cs.confirmMutex.RLock()
	responseChan, exists := cs.pendingConfirms[response.ID]
	cs.confirmMutex.RUnlock()

	if !exists {
		return
	}

	select {
	case responseChan <- response.Approved:
	default:
		// Already answered, ignore duplicates
	}
}

// RequestConfirmation implements the tools.Confirmator interface
func (cs *ChatService) RequestConfirmation(req tools.ConfirmationRequest) bool {
	return cs.requestUserConfirmation(req)
}

// parseToolArguments decodes the JSON argument record of a tool call
func parseToolArguments(raw string) (map[string]interface{}, error) {
	if raw == "" {
		return map[string]interface{}{}, nil
	}
	var args map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, err
	}
	if args == nil {
		args = map[string]interface{}{}
	}
	return args, nil
}
