package handler

import (
	"io"

	"github.com/labstack/echo/v4"

	"github.com/ahm0xc/somossa-bot/internal/embed"
	"github.com/ahm0xc/somossa-bot/internal/event"
	"github.com/ahm0xc/somossa-bot/internal/metrics"
	"github.com/ahm0xc/somossa-bot/internal/response"
)

// HandleFeedback relays a posted feedback event into the feedback
// channel (POST /feedback).
func (r *Relay) HandleFeedback(c echo.Context) error {
	ch, cause := r.resolve(r.FeedbackChannelID)
	if ch == nil {
		metrics.EventsRelayed.WithLabelValues("feedback", metrics.OutcomeChannelUnavailable).Inc()
		return response.InternalError(c, cause)
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return response.BadRequest(c, "could not read request body")
	}
	fb, err := event.ParseFeedback(body)
	if err != nil {
		metrics.EventsRelayed.WithLabelValues("feedback", metrics.OutcomeValidationFailed).Inc()
		return response.BadRequest(c, err.Error())
	}

	if err := r.send(ch, embed.ForFeedback(fb)); err != nil {
		r.Log.Error().Err(err).Str("app", fb.AppName).Msg("feedback delivery failed")
		metrics.EventsRelayed.WithLabelValues("feedback", metrics.OutcomeSendFailed).Inc()
		return response.InternalError(c, "failed to deliver message")
	}

	r.Log.Info().Str("app", fb.AppName).Msg("feedback relayed")
	metrics.EventsRelayed.WithLabelValues("feedback", metrics.OutcomeOK).Inc()
	return response.OK(c)
}
