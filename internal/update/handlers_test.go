package update

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calween/opsdeck/internal/eventbus"
	"github.com/calween/opsdeck/internal/models"
)

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func pendingDeployment() *models.ConfirmationRequest {
	return &models.ConfirmationRequest{
		ID:      "req-1",
		Action:  "Deploy agent-v2.5.0 to edge-01",
		Package: "agent-v2.5.0",
		NodeID:  "edge-01",
	}
}

func receiveUIEvent(t *testing.T, eb *eventbus.EventBus) eventbus.UIEvent {
	t.Helper()
	select {
	case event := <-eb.UIToCore():
		return event
	default:
		t.Fatal("expected an event on the UI to core channel")
		return nil
	}
}

func TestEnterSendsMessage(t *testing.T) {
	eb := eventbus.NewEventBus()
	appModel := &models.AppModel{Input: "status of edge-01"}

	HandleKeyMsgWithEventBus(appModel, keyMsg("enter"), eb, true)

	event := receiveUIEvent(t, eb)
	sendEvent, ok := event.(eventbus.SendMessageEvent)
	require.True(t, ok)
	assert.Equal(t, "status of edge-01", sendEvent.Message)
	assert.Empty(t, appModel.Input)
}

func TestEnterWhenNotReady(t *testing.T) {
	eb := eventbus.NewEventBus()
	appModel := &models.AppModel{Input: "hello"}

	HandleKeyMsgWithEventBus(appModel, keyMsg("enter"), eb, false)

	assert.Empty(t, appModel.Input)
	assert.Equal(t, "Chat service not available", appModel.Status)
	select {
	case <-eb.UIToCore():
		t.Fatal("no event should have been sent")
	default:
	}
}

func TestEnterIgnoredWhileLoading(t *testing.T) {
	eb := eventbus.NewEventBus()
	appModel := &models.AppModel{Input: "second message", Loading: true}

	HandleKeyMsgWithEventBus(appModel, keyMsg("enter"), eb, true)

	assert.Equal(t, "second message", appModel.Input, "draft must survive a blocked submit")
	select {
	case <-eb.UIToCore():
		t.Fatal("no message may be sent while a dispatch cycle is in flight")
	default:
	}
}

func TestTypingAndBackspace(t *testing.T) {
	eb := eventbus.NewEventBus()
	appModel := &models.AppModel{}

	HandleKeyMsgWithEventBus(appModel, keyMsg("h"), eb, true)
	HandleKeyMsgWithEventBus(appModel, keyMsg("i"), eb, true)
	assert.Equal(t, "hi", appModel.Input)

	HandleKeyMsgWithEventBus(appModel, keyMsg("backspace"), eb, true)
	assert.Equal(t, "h", appModel.Input)
}

func TestConfirmationApproveKey(t *testing.T) {
	eb := eventbus.NewEventBus()
	appModel := &models.AppModel{PendingConfirmation: pendingDeployment()}

	HandleKeyMsgWithEventBus(appModel, keyMsg("y"), eb, true)

	event := receiveUIEvent(t, eb)
	response, ok := event.(eventbus.ConfirmationResponseEvent)
	require.True(t, ok)
	assert.Equal(t, "req-1", response.ID)
	assert.True(t, response.Approved)

	assert.Nil(t, appModel.PendingConfirmation, "pending state must clear on confirm")
	assert.Contains(t, appModel.Status, "confirmed")
	assert.Contains(t, appModel.Status, "agent-v2.5.0")
	assert.Contains(t, appModel.Status, "edge-01")
}

func TestConfirmationCancelKeys(t *testing.T) {
	for _, key := range []string{"n", "esc"} {
		eb := eventbus.NewEventBus()
		appModel := &models.AppModel{PendingConfirmation: pendingDeployment()}

		HandleKeyMsgWithEventBus(appModel, keyMsg(key), eb, true)

		event := receiveUIEvent(t, eb)
		response, ok := event.(eventbus.ConfirmationResponseEvent)
		require.True(t, ok, "key %q", key)
		assert.False(t, response.Approved)

		assert.Nil(t, appModel.PendingConfirmation, "pending state must clear on cancel via %q", key)
		assert.Contains(t, appModel.Status, "cancelled")
	}
}

func TestConfirmationIgnoresOtherKeys(t *testing.T) {
	eb := eventbus.NewEventBus()
	appModel := &models.AppModel{PendingConfirmation: pendingDeployment()}

	HandleKeyMsgWithEventBus(appModel, keyMsg("x"), eb, true)

	assert.NotNil(t, appModel.PendingConfirmation, "unrelated keys leave the dialog up")
	select {
	case <-eb.UIToCore():
		t.Fatal("no event should have been sent")
	default:
	}
}

func TestCoreStateUpdateAppendsMessages(t *testing.T) {
	appModel := &models.AppModel{
		Messages: []models.Message{{Content: "first", Type: models.User}},
	}

	HandleCoreEvent(appModel, CoreEventMsg{Event: eventbus.StateUpdateEvent{
		Messages:     []models.Message{{Content: "second", Type: models.Assistant}},
		IsProcessing: true,
	}})

	require.Len(t, appModel.Messages, 2)
	assert.Equal(t, "second", appModel.Messages[1].Content)
	assert.True(t, appModel.Loading)
	assert.Equal(t, "Processing", appModel.Status)
}

func TestCoreStateUpdateWithError(t *testing.T) {
	appModel := &models.AppModel{Loading: true}

	HandleCoreEvent(appModel, CoreEventMsg{Event: eventbus.StateUpdateEvent{
		IsProcessing: false,
		Error:        errors.New("chat completion failed"),
	}})

	assert.False(t, appModel.Loading, "input must be re-enabled after an error")
	assert.Contains(t, appModel.Status, "chat completion failed")
}

func TestCoreConfirmationRequestStagesDialog(t *testing.T) {
	appModel := &models.AppModel{}

	HandleCoreEvent(appModel, CoreEventMsg{Event: eventbus.ConfirmationRequestEvent{
		ID:      "req-2",
		Action:  "Deploy agent-v2.5.0 to edge-02",
		Package: "agent-v2.5.0",
		NodeID:  "edge-02",
	}})

	require.NotNil(t, appModel.PendingConfirmation)
	assert.Equal(t, "req-2", appModel.PendingConfirmation.ID)
	assert.Equal(t, "edge-02", appModel.PendingConfirmation.NodeID)
	assert.Equal(t, "Awaiting confirmation", appModel.Status)
}
