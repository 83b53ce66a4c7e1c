// Package embed turns normalized events into Discord rich embeds. All
// functions are pure; the field order they produce is deterministic.
package embed

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/ahm0xc/somossa-bot/internal/event"
)

const (
	colorError    = 0xFF0000
	colorWarning  = 0xFFAA00
	colorInfo     = 0x0099FF
	colorFeedback = 0x4CAF50
)

// maxBlockLen bounds free-text blocks (stack traces, metadata dumps)
// before they are wrapped in a code block. Discord caps field values at
// 1024 characters including the fence.
const maxBlockLen = 1000

// ForLog builds the embed posted to the error channel.
func ForLog(e *event.Log) *discordgo.MessageEmbed {
	var color int
	var emoji string
	switch e.Type {
	case event.TypeError:
		color, emoji = colorError, "🔴"
	case event.TypeWarning:
		color, emoji = colorWarning, "🟠"
	default:
		color, emoji = colorInfo, "🔵"
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Type", Value: e.Type, Inline: true},
		{Name: "Timestamp", Value: fmt.Sprintf("<t:%d:F>", e.Timestamp.Unix()), Inline: true},
	}
	if e.Stack != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "Stack Trace", Value: codeBlock("", e.Stack),
		})
	}
	if len(e.Metadata) > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "Metadata", Value: codeBlock("json", prettyJSON(e.Metadata)),
		})
	}
	if e.URL != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "URL", Value: e.URL,
		})
	}

	return &discordgo.MessageEmbed{
		Color:       color,
		Title:       emoji + " " + e.AppName,
		Description: e.Message,
		Fields:      fields,
		Timestamp:   e.Timestamp.UTC().Format(time.RFC3339),
	}
}

// ForFeedback builds the embed posted to the feedback channel. One star
// glyph per rating point; no glyphs when no rating was given.
func ForFeedback(f *event.Feedback) *discordgo.MessageEmbed {
	title := "📝 New Feedback from **" + f.AppName + "**"
	if stars := strings.Repeat("⭐", int(f.Rating)); stars != "" {
		title += " " + stars
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Application", Value: "**" + f.AppName + "**", Inline: true},
	}
	if f.Name != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Name", Value: f.Name, Inline: true})
	}
	if f.Email != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Email", Value: f.Email, Inline: true})
	}
	if f.Source != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Source", Value: f.Source, Inline: true})
	}
	if len(f.Metadata) > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "Metadata", Value: codeBlock("json", prettyJSON(f.Metadata)),
		})
	}

	return &discordgo.MessageEmbed{
		Color:       colorFeedback,
		Title:       title,
		Description: f.Message,
		Fields:      fields,
		Timestamp:   f.Timestamp.UTC().Format(time.RFC3339),
	}
}

// codeBlock wraps body in a fenced code block, silently truncating it
// to maxBlockLen first.
func codeBlock(lang, body string) string {
	if len(body) > maxBlockLen {
		body = body[:maxBlockLen]
	}
	return "```" + lang + "\n" + body + "\n```"
}

func prettyJSON(v map[string]any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
