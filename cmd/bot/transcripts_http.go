package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/hound-bot/hound/pkg/logging"
	"github.com/hound-bot/hound/pkg/request"
)

// statusPage serves the static status page.
func (a *App) statusPage() Controller {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<h1>Bot Online!</h1>"))
	}
}

// getTranscription serves the stored transcript for a log ID, or a not-found
// response when no such log exists.
func (a *App) getTranscription() Controller {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			// Unreachable with the route's numeric pattern, but belt and braces.
			request.NotFoundHandler(a.Logger).ServeHTTP(w, r)
			return
		}

		transcription, err := a.logs.GetTranscription(r.Context(), id)
		if err != nil {
			a.Error("Error getting transcription", slog.String(logging.KeyError, err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			if err := json.NewEncoder(w).Encode(request.NewMessage("Internal server error")); err != nil {
				a.Error("Error encoding response", slog.String(logging.KeyError, err.Error()))
			}
			return
		}
		if transcription == "" {
			w.WriteHeader(http.StatusNotFound)
			if err := json.NewEncoder(w).Encode(request.NewMessage("Não encontrado")); err != nil {
				a.Error("Error encoding response", slog.String(logging.KeyError, err.Error()))
			}
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(transcription))
	}
}
