// Package discord wraps the single long-lived gateway session. The
// client is constructed once at startup and is read-only afterwards;
// request handlers only look up channels and post messages through it.
package discord

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// ResolutionKind classifies the outcome of a channel lookup.
type ResolutionKind int

const (
	ChannelFound ResolutionKind = iota
	ChannelNotFound
	ChannelWrongKind
)

// Resolution is the result of resolving a destination channel.
// Channel is non-nil only when Kind is ChannelFound.
type Resolution struct {
	Kind    ResolutionKind
	Channel Postable
}

// Postable is a channel handle that accepts embed messages.
type Postable interface {
	SendEmbed(ctx context.Context, embed *discordgo.MessageEmbed) error
}

// Client owns the gateway session and its channel cache.
type Client struct {
	session *discordgo.Session
	log     zerolog.Logger
	ready   atomic.Bool
}

// New builds a client for the given bot token. The session is not
// connected until Open is called.
func New(token string, log zerolog.Logger) (*Client, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	c := &Client{session: s, log: log}
	s.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		c.ready.Store(true)
		c.log.Info().Str("user", r.User.Username).Msg("discord gateway ready")
	})
	s.AddHandler(func(_ *discordgo.Session, _ *discordgo.Disconnect) {
		c.ready.Store(false)
		c.log.Warn().Msg("discord gateway disconnected")
	})
	s.AddHandler(func(_ *discordgo.Session, _ *discordgo.Resumed) {
		c.ready.Store(true)
	})
	return c, nil
}

// Open connects to the gateway. Reconnects after that are handled by
// the session itself.
func (c *Client) Open() error { return c.session.Open() }

// Close tears the session down.
func (c *Client) Close() error { return c.session.Close() }

// Ready reports whether the gateway session is currently connected.
func (c *Client) Ready() bool { return c.ready.Load() }

// Resolve looks the channel up in the session state cache and
// classifies it. Only guild text channels accept relayed messages;
// anything else is the wrong kind.
func (c *Client) Resolve(channelID string) Resolution {
	ch, err := c.session.State.Channel(channelID)
	if err != nil {
		return Resolution{Kind: ChannelNotFound}
	}
	if ch.Type != discordgo.ChannelTypeGuildText {
		return Resolution{Kind: ChannelWrongKind}
	}
	return Resolution{Kind: ChannelFound, Channel: &textChannel{session: c.session, id: ch.ID}}
}

type textChannel struct {
	session *discordgo.Session
	id      string
}

func (t *textChannel) SendEmbed(ctx context.Context, embed *discordgo.MessageEmbed) error {
	_, err := t.session.ChannelMessageSendEmbed(t.id, embed, discordgo.WithContext(ctx))
	return err
}
