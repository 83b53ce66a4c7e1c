// Package handler contains the per-endpoint dispatchers. Each request
// runs the same linear pipeline: resolve the destination channel,
// validate the body, format an embed, send it once. Every failure mode
// is converted to the uniform JSON envelope here; nothing propagates
// past the HTTP layer.
package handler

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/ahm0xc/somossa-bot/internal/discord"
	"github.com/ahm0xc/somossa-bot/internal/metrics"
)

// Gateway is the narrow view of the Discord client a dispatcher needs.
type Gateway interface {
	Ready() bool
	Resolve(channelID string) discord.Resolution
}

// Relay dispatches validated events into fixed Discord channels.
type Relay struct {
	Gateway           Gateway
	ErrorChannelID    string
	FeedbackChannelID string
	SendTimeout       time.Duration
	Log               zerolog.Logger
}

// resolve classifies the destination channel. Both failure causes are
// operator misconfiguration, so they are logged at error level; the
// caller only sees which one it was in the response message.
func (r *Relay) resolve(channelID string) (discord.Postable, string) {
	res := r.Gateway.Resolve(channelID)
	switch res.Kind {
	case discord.ChannelNotFound:
		r.Log.Error().Str("channel_id", channelID).Msg("destination channel not found")
		return nil, "channel not found"
	case discord.ChannelWrongKind:
		r.Log.Error().Str("channel_id", channelID).Msg("destination channel is not a text channel")
		return nil, "channel is not a text channel"
	}
	return res.Channel, ""
}

// send delivers one embed, bounded by SendTimeout. The context is
// detached from the request so a client disconnect does not cancel a
// dispatch that already started.
func (r *Relay) send(ch discord.Postable, emb *discordgo.MessageEmbed) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.SendTimeout)
	defer cancel()

	start := time.Now()
	err := ch.SendEmbed(ctx, emb)
	metrics.SendDuration.Observe(time.Since(start).Seconds())
	return err
}
