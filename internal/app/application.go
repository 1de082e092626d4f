package app

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/calween/opsdeck/internal/config"
	"github.com/calween/opsdeck/internal/core"
	"github.com/calween/opsdeck/internal/dispatcher"
	"github.com/calween/opsdeck/internal/eventbus"
	"github.com/calween/opsdeck/internal/logging"
	"github.com/calween/opsdeck/internal/models"
)

// Application manages the complete application lifecycle
type Application struct {
	config     *config.Config
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	service    *core.ChatService
	model      *AppModel
	logCloser  io.Closer
}

type AppModel struct {
	appModel   models.AppModel
	dispatcher *dispatcher.EventDispatcher
}

func NewApplication() (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var logCloser io.Closer
	if dir, err := config.ConfigDir(); err == nil {
		// Logging is best effort; the app runs fine without the file
		logCloser, _ = logging.Setup(dir, cfg.GetLogLevel())
	}

	eb := eventbus.NewEventBus()
	eb.SetErrorCallback(func(busErr eventbus.BusError) {
		log.Warn().Str("operation", busErr.Operation).Err(busErr.Err).Msg("event bus delivery failed")
	})

	disp := dispatcher.NewEventDispatcher(eb)

	// Always created: an unconfigured credential is reported in the chat pane
	chatService, err := core.NewChatService(cfg, eb)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize chat service: %w", err)
	}

	model := &AppModel{
		appModel:   createInitialAppModel(chatService),
		dispatcher: disp,
	}

	return &Application{
		config:     cfg,
		eventBus:   eb,
		dispatcher: disp,
		service:    chatService,
		model:      model,
		logCloser:  logCloser,
	}, nil
}

func (app *Application) Start() error {
	app.service.Start()

	p := tea.NewProgram(app.model)
	_, err := p.Run()

	return err
}

func (app *Application) Stop() {
	app.service.Stop()
	app.dispatcher.Stop()
	app.eventBus.Close()
	if app.logCloser != nil {
		app.logCloser.Close()
	}
}

func createInitialAppModel(chatService *core.ChatService) models.AppModel {
	// Messages arrive from core; the UI starts empty
	return models.AppModel{
		Messages:         make([]models.Message, 0),
		Status:           "Ready",
		ChatServiceReady: chatService.IsReady(),
	}
}
