package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gorilla/mux"
	"github.com/hound-bot/hound/cmd/bot/config"
	"github.com/hound-bot/hound/cmd/bot/monitoring"
	"github.com/hound-bot/hound/pkg/dataaccess"
	"github.com/hound-bot/hound/pkg/logging"
	"github.com/hound-bot/hound/pkg/request"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// PathIndex is the path for the status page.
	PathIndex = "/"

	// PathHealth is the path for the health check.
	PathHealth = "/api/health"

	// PathMetrics is the path for metrics.
	PathMetrics = "/metrics"

	// PathTranscription is the path for fetching an archived transcript.
	PathTranscription = "/transcription/{id:[0-9]+}"
)

// IApp is the interface for the application, as seen by the interaction and
// message processors.
type IApp interface {
	// Log returns the logger.
	Log() *slog.Logger

	// Session returns the discord session.
	Session() *discordgo.Session

	// Guilds returns the guild configuration store.
	Guilds() dataaccess.GuildDal

	// Tickets returns the ticket store.
	Tickets() dataaccess.TicketDal

	// Logs returns the ticket log store.
	Logs() dataaccess.LogDal
}

type App struct {
	// is the logger.
	*slog.Logger

	// r is the router for the application.
	r *mux.Router

	// svr is the server for the application.
	svr *http.Server

	// s is the discord session. It is nil when the bot subsystem failed to
	// start; the HTTP facade keeps serving regardless.
	s *discordgo.Session

	// started is the time the application came up, for the uptime reported by
	// the health endpoint.
	started time.Time

	guilds  dataaccess.GuildDal
	tickets dataaccess.TicketDal
	logs    dataaccess.LogDal
}

// NewApp creates a new instance of App.
func NewApp(l *slog.Logger, r *mux.Router) *App {
	return &App{
		Logger: l,
		r:      r,
	}
}

func (a *App) Run() error {
	a.started = time.Now().UTC()

	a.guilds = dataaccess.NewGuildDal(a.Logger)
	a.tickets = dataaccess.NewTicketDal(a.Logger)
	a.logs = dataaccess.NewLogDal(a.Logger, config.LogRetention)

	// Register bot. A bad credential only takes down the bot subsystem; the
	// HTTP facade below serves either way.
	if err := a.RegisterBot(); err != nil {
		a.Error("Bot startup aborted, continuing with HTTP only", slog.String(logging.KeyError, err.Error()))
	}

	a.generateServer()
	a.setupRoutes()
	a.runServer()

	// Register listener for shutdown signal.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)

	// Process shutdown signal.
	for sig := range c {
		a.Info("Received shutdown signal", slog.String("signal", sig.String()))
		if err := a.ShutdownHook(); err != nil {
			a.Error("Error shutting down application", slog.String(logging.KeyError, err.Error()))
		}
		os.Exit(0)
	}
	return nil
}

func (a *App) ShutdownHook() error {
	// Reset the total number of guilds to 0.
	monitoring.TotalDiscordGuilds.Set(0)

	if a.s != nil {
		// Close the connection to Discord.
		if err := a.s.Close(); err != nil {
			return fmt.Errorf("error closing connection to Discord: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.svr.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	return nil
}

func (a *App) RegisterBot() error {
	// Default the number of guilds to 0.
	monitoring.TotalDiscordGuilds.Set(0)

	if len(config.BotToken) < config.MinTokenLength {
		return errors.New("bot token missing or implausibly short")
	}

	dg, err := discordgo.New("Bot " + config.BotToken)
	if err != nil {
		return fmt.Errorf("error creating Discord session: %w", err)
	}

	dg.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMessages |
		discordgo.IntentMessageContent |
		discordgo.IntentGuildMembers

	a.s = dg

	a.s.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		a.Info(fmt.Sprintf("Logged in as %s#%s", r.User.Username, r.User.Discriminator))
	})

	if err := a.RegisterDiscordHandlers(); err != nil {
		return fmt.Errorf("error registering discord handlers: %w", err)
	}

	// Open websocket.
	if err := a.s.Open(); err != nil {
		a.s = nil
		return fmt.Errorf("error opening connection to Discord: %w", err)
	}

	a.Info("Bot is now running.")
	return nil
}

func (a *App) RegisterDiscordHandlers() error {
	// Bot joined guild.
	a.s.AddHandler(guildJoinedHandler(a))

	// Bot left guild.
	a.s.AddHandler(guildLeaveHandler(a))

	// Interaction create handler.
	a.s.AddHandler(interactionHandler(a,
		// Button processors
		map[string]commandProcessor{
			OpenTicketButtonID:   openTicket,
			ClaimTicketButtonID:  claimTicket,
			CloseTicketButtonID:  closeTicket,
			RenameTicketButtonID: renameTicketButton,
		},
		// Modal processors
		map[string]commandProcessor{
			RenameTicketModalID: renameTicketModal,
		}))

	// Admin text commands.
	a.s.AddHandler(messageHandler(a, map[string]messageProcessor{
		SetupCmd:      setupCommand,
		SupportCmd:    supportCommand,
		LogChannelCmd: logChannelCommand,
	}))
	return nil
}

func (a *App) setupRoutes() {
	// PathIndex is the static status page.
	a.r.HandleFunc(PathIndex, middlewareHttp(a, a.statusPage())).Methods(http.MethodGet)

	// PathMetrics is the path for metrics.
	a.r.HandleFunc(PathMetrics, promhttp.Handler().ServeHTTP).Methods(http.MethodGet)

	// PathHealth is the path for health check.
	a.r.HandleFunc(PathHealth, middlewareHttp(a, a.healthCheck())).Methods(http.MethodGet)

	// PathTranscription serves archived ticket transcripts.
	a.r.HandleFunc(PathTranscription, middlewareHttp(a, rateLimited(a, a.getTranscription()))).Methods(http.MethodGet)

	// NotFoundHandler is the handler for 404.
	a.r.NotFoundHandler = request.NotFoundHandler(a.Logger)

	// MethodNotAllowedHandler is the handler for 405.
	a.r.MethodNotAllowedHandler = request.MethodNotAllowedHandler(a.Logger)
}

func (a *App) generateServer() {
	a.svr = &http.Server{
		Addr:    ":" + config.Port,
		Handler: a.r,
	}
}

func (a *App) runServer() {
	go func() {
		a.Info("Starting server", slog.String("addr", a.svr.Addr))
		if err := a.svr.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Error("Error starting server", slog.String(logging.KeyError, err.Error()))
			a.Warn("HTTP facade will not be available")
		}
	}()
}

func (a *App) Log() *slog.Logger {
	return a.Logger
}

func (a *App) Session() *discordgo.Session {
	return a.s
}

func (a *App) Guilds() dataaccess.GuildDal {
	return a.guilds
}

func (a *App) Tickets() dataaccess.TicketDal {
	return a.tickets
}

func (a *App) Logs() dataaccess.LogDal {
	return a.logs
}
