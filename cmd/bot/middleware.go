package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gorilla/mux"
	"github.com/hound-bot/hound/cmd/bot/monitoring"
	"github.com/hound-bot/hound/pkg/logging"
	"github.com/hound-bot/hound/pkg/request"
	"golang.org/x/time/rate"
)

// commandProcessor is the processor for a button or modal interaction.
type commandProcessor func(a IApp, i *discordgo.InteractionCreate) error

// messageProcessor is the processor for an admin text command.
type messageProcessor func(a IApp, m *discordgo.MessageCreate) error

type Controller func(w http.ResponseWriter, r *http.Request)

func middlewareHttp(a IApp, handler Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().UTC()
		cw := request.NewClientWriter(w)

		// Recover from any panics that occur in the handler.
		defer func() {
			if rec := recover(); rec != nil {
				a.Log().Error("Panic in handler",
					slog.String(logging.KeyError, fmt.Sprintf("%v", rec)),
					slog.String("stack", string(debug.Stack())),
				)
				cw.WriteHeader(http.StatusInternalServerError)
				if err := json.NewEncoder(cw).Encode(request.NewMessage("Internal server error")); err != nil {
					a.Log().Error("Error encoding response", slog.String(logging.KeyError, err.Error()))
				}
			}
		}()

		var path string
		route := mux.CurrentRoute(r)
		if route != nil { // The route may be nil if the request is not routed.
			var err error
			path, err = route.GetPathTemplate()
			if err != nil {
				// An error here is only returned if the route does not define a path.
				a.Log().Error("Error getting path template", slog.String(logging.KeyError, err.Error()))
				path = r.URL.Path // If the route does not define a path, use the URL path.
			}
		} else {
			path = r.URL.Path // If the route is nil, use the URL path.
		}

		defer func() {
			// Run the deferred function after the request has been handled, as the status code will not be available until then.
			monitoring.HttpTotalRequests.WithLabelValues(path, r.Method, fmt.Sprintf("%d", cw.StatusCode())).Inc()
			monitoring.HttpRequestDuration.WithLabelValues(path, r.Method, fmt.Sprintf("%d", cw.StatusCode())).Observe(time.Since(now).Seconds())
		}()

		handler(cw, r)
	}
}

// transcriptionLimiter throttles the transcript route; it serves arbitrary
// stored payloads and is the only surface worth protecting.
var transcriptionLimiter = rate.NewLimiter(rate.Limit(5), 10)

func rateLimited(a IApp, handler Controller) Controller {
	return func(w http.ResponseWriter, r *http.Request) {
		if !transcriptionLimiter.Allow() {
			w.WriteHeader(http.StatusTooManyRequests)
			if err := json.NewEncoder(w).Encode(request.NewMessage("Too many requests")); err != nil {
				a.Log().Error("Error encoding response", slog.String(logging.KeyError, err.Error()))
			}
			return
		}
		handler(w, r)
	}
}

// interactionHandler dispatches button and modal interactions to their
// processors. One malformed interaction must never take down the event loop,
// so processor errors are logged and answered with an ephemeral apology, and
// panics are recovered.
func interactionHandler(a IApp, buttons, modals map[string]commandProcessor) func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		defer func() {
			if rec := recover(); rec != nil {
				a.Log().Error("Panic in interaction handler",
					slog.String(logging.KeyError, fmt.Sprintf("%v", rec)),
					slog.String("stack", string(debug.Stack())),
				)
			}
		}()

		var (
			customID   string
			processors map[string]commandProcessor
		)
		switch i.Type {
		case discordgo.InteractionMessageComponent:
			customID = i.MessageComponentData().CustomID
			processors = buttons
		case discordgo.InteractionModalSubmit:
			customID = i.ModalSubmitData().CustomID
			processors = modals
		default:
			return
		}

		processor, ok := processors[customID]
		if !ok {
			a.Log().Debug("No processor for interaction", slog.String("custom_id", customID))
			return
		}

		now := time.Now().UTC()
		monitoring.TotalInteractions.WithLabelValues(customID).Inc()
		err := processor(a, i)
		monitoring.InteractionDuration.WithLabelValues(customID).Observe(time.Since(now).Seconds())
		if err != nil {
			a.Log().Error(fmt.Sprintf("Error processing interaction %s", customID),
				slog.String(logging.KeyError, err.Error()))

			if err := respondEphemeral(a, i, ErrUserErrorProcessing); err != nil {
				a.Log().Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
			}
		}
	}
}

// messageHandler dispatches admin text commands. The issuer must hold the
// administrator permission in the guild; everything else is silently ignored.
func messageHandler(a IApp, commands map[string]messageProcessor) func(s *discordgo.Session, m *discordgo.MessageCreate) {
	return func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		defer func() {
			if rec := recover(); rec != nil {
				a.Log().Error("Panic in message handler",
					slog.String(logging.KeyError, fmt.Sprintf("%v", rec)),
					slog.String("stack", string(debug.Stack())),
				)
			}
		}()

		if m.Author == nil || m.Author.Bot || m.GuildID == "" {
			return
		}

		fields := strings.Fields(m.Content)
		if len(fields) == 0 {
			return
		}

		processor, ok := commands[fields[0]]
		if !ok {
			return
		}

		perms, err := a.Session().UserChannelPermissions(m.Author.ID, m.ChannelID)
		if err != nil {
			a.Log().Error("Error getting member permissions",
				slog.String(logging.KeyError, err.Error()),
				slog.String(logging.KeyUser, m.Author.ID))
			return
		}
		if perms&discordgo.PermissionAdministrator == 0 {
			return
		}

		if err := processor(a, m); err != nil {
			a.Log().Error(fmt.Sprintf("Error processing command %s", fields[0]),
				slog.String(logging.KeyError, err.Error()))
		}
	}
}
