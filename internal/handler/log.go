package handler

import (
	"io"

	"github.com/labstack/echo/v4"

	"github.com/ahm0xc/somossa-bot/internal/embed"
	"github.com/ahm0xc/somossa-bot/internal/event"
	"github.com/ahm0xc/somossa-bot/internal/metrics"
	"github.com/ahm0xc/somossa-bot/internal/response"
)

// HandleLog relays a posted log event into the error channel (POST /log).
func (r *Relay) HandleLog(c echo.Context) error {
	ch, cause := r.resolve(r.ErrorChannelID)
	if ch == nil {
		metrics.EventsRelayed.WithLabelValues("log", metrics.OutcomeChannelUnavailable).Inc()
		return response.InternalError(c, cause)
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return response.BadRequest(c, "could not read request body")
	}
	ev, err := event.ParseLog(body)
	if err != nil {
		metrics.EventsRelayed.WithLabelValues("log", metrics.OutcomeValidationFailed).Inc()
		return response.BadRequest(c, err.Error())
	}

	if err := r.send(ch, embed.ForLog(ev)); err != nil {
		r.Log.Error().Err(err).Str("app", ev.AppName).Msg("log event delivery failed")
		metrics.EventsRelayed.WithLabelValues("log", metrics.OutcomeSendFailed).Inc()
		return response.InternalError(c, "failed to deliver message")
	}

	r.Log.Info().Str("app", ev.AppName).Str("type", ev.Type).Msg("log event relayed")
	metrics.EventsRelayed.WithLabelValues("log", metrics.OutcomeOK).Inc()
	return response.OK(c)
}
