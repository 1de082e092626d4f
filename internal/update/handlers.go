package update

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/calween/opsdeck/internal/eventbus"
	"github.com/calween/opsdeck/internal/models"
)

// HandleKeyMsgWithEventBus handles keyboard input using the event bus
func HandleKeyMsgWithEventBus(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus, chatReady bool) tea.Cmd {
	// While a confirmation dialog is up, keys answer the dialog
	if appModel.PendingConfirmation != nil {
		return handleConfirmationKey(appModel, keyMsg, eb)
	}

	switch keyMsg.String() {
	case "ctrl+c":
		return tea.Quit
	case "enter":
		// Input is disabled while a dispatch cycle is in flight; keep the draft
		if appModel.Loading {
			return nil
		}
		if strings.TrimSpace(appModel.Input) != "" && chatReady {
			if err := eb.SendToCore(eventbus.SendMessageEvent{Message: appModel.Input}); err != nil {
				appModel.Status = "Error sending message: " + err.Error()
				return nil
			}

			appModel.Input = ""
			return nil
		} else if strings.TrimSpace(appModel.Input) != "" {
			appModel.Input = ""
			appModel.Status = "Chat service not available"
		}
	case "backspace":
		if len(appModel.Input) > 0 {
			appModel.Input = appModel.Input[:len(appModel.Input)-1]
		}
	default:
		if len(keyMsg.String()) == 1 {
			appModel.Input += keyMsg.String()
		}
	}
	return nil
}

// handleConfirmationKey resolves the pending confirmation. Confirm and cancel
// both return to idle; only the status message differs.
func handleConfirmationKey(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	pending := appModel.PendingConfirmation

	switch keyMsg.String() {
	case "y", "enter":
		respondToConfirmation(appModel, eb, pending, true)
		appModel.Status = "Deployment of " + pending.Package + " to " + pending.NodeID + " confirmed"
	case "n", "esc":
		respondToConfirmation(appModel, eb, pending, false)
		appModel.Status = "Deployment of " + pending.Package + " to " + pending.NodeID + " cancelled"
	case "ctrl+c":
		return tea.Quit
	}
	return nil
}

func respondToConfirmation(appModel *models.AppModel, eb *eventbus.EventBus, pending *models.ConfirmationRequest, approved bool) {
	if err := eb.SendToCore(eventbus.ConfirmationResponseEvent{ID: pending.ID, Approved: approved}); err != nil {
		appModel.Status = "Error sending confirmation: " + err.Error()
	}
	appModel.PendingConfirmation = nil
}

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// HandleCoreEvent processes events from the core
func HandleCoreEvent(appModel *models.AppModel, coreEventMsg CoreEventMsg) tea.Cmd {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.StateUpdateEvent:
		// Core only sends messages the UI hasn't seen yet
		appModel.Messages = append(appModel.Messages, event.Messages...)
		appModel.Loading = event.IsProcessing

		if event.Error != nil {
			appModel.Status = "Error: " + event.Error.Error()
		} else if event.IsProcessing {
			appModel.Status = "Processing"
		} else {
			appModel.Status = "Ready"
		}
	case eventbus.ConfirmationRequestEvent:
		appModel.PendingConfirmation = &models.ConfirmationRequest{
			ID:      event.ID,
			Action:  event.Action,
			Package: event.Package,
			NodeID:  event.NodeID,
		}
		appModel.Status = "Awaiting confirmation"
	}

	return nil
}

type TickMsg time.Time

func TickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func HandleWindowSizeMsg(appModel *models.AppModel, sizeMsg tea.WindowSizeMsg) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height
}

func HandleTickMsg(appModel *models.AppModel) tea.Cmd {
	// Loading dots animation
	if appModel.Loading {
		appModel.LoadingDots = (appModel.LoadingDots + 1) % 4
	}
	return TickCmd()
}
