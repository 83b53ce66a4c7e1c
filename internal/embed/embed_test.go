package embed

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/ahm0xc/somossa-bot/internal/event"
)

func baseLog() *event.Log {
	return &event.Log{
		Type:      event.TypeError,
		AppName:   "svc-a",
		Message:   "boom",
		Timestamp: time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
	}
}

func TestForLog_ColorAndTitle(t *testing.T) {
	cases := []struct {
		typ   string
		color int
		emoji string
	}{
		{event.TypeError, 0xFF0000, "🔴"},
		{event.TypeWarning, 0xFFAA00, "🟠"},
		{event.TypeInfo, 0x0099FF, "🔵"},
	}
	for _, tc := range cases {
		ev := baseLog()
		ev.Type = tc.typ
		emb := ForLog(ev)
		if emb.Color != tc.color {
			t.Fatalf("%s: expected color %#x, got %#x", tc.typ, tc.color, emb.Color)
		}
		if !strings.HasPrefix(emb.Title, tc.emoji+" svc-a") {
			t.Fatalf("%s: unexpected title %q", tc.typ, emb.Title)
		}
	}
}

func TestForLog_MandatoryFieldsAndTimestampToken(t *testing.T) {
	emb := ForLog(baseLog())
	if len(emb.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(emb.Fields))
	}
	if emb.Fields[0].Name != "Type" || emb.Fields[0].Value != "error" || !emb.Fields[0].Inline {
		t.Fatalf("unexpected Type field: %+v", emb.Fields[0])
	}
	want := fmt.Sprintf("<t:%d:F>", baseLog().Timestamp.Unix())
	if emb.Fields[1].Name != "Timestamp" || emb.Fields[1].Value != want {
		t.Fatalf("unexpected Timestamp field: %+v", emb.Fields[1])
	}
	if emb.Description != "boom" {
		t.Fatalf("unexpected description %q", emb.Description)
	}
}

func TestForLog_ConditionalFieldOrder(t *testing.T) {
	ev := baseLog()
	ev.Stack = "at main.go:1"
	ev.Metadata = map[string]any{"k": "v"}
	ev.URL = "https://svc-a.example.com/crash"
	emb := ForLog(ev)

	var names []string
	for _, f := range emb.Fields {
		names = append(names, f.Name)
	}
	want := []string{"Type", "Timestamp", "Stack Trace", "Metadata", "URL"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("expected field order %v, got %v", want, names)
	}
}

func TestForLog_TruncatesMetadata(t *testing.T) {
	ev := baseLog()
	ev.Metadata = map[string]any{"blob": strings.Repeat("a", 2000)}
	emb := ForLog(ev)

	var value string
	for _, f := range emb.Fields {
		if f.Name == "Metadata" {
			value = f.Value
		}
	}
	if value == "" {
		t.Fatal("metadata field missing")
	}
	body := strings.TrimSuffix(strings.TrimPrefix(value, "```json\n"), "\n```")
	if len(body) != 1000 {
		t.Fatalf("expected exactly 1000 characters, got %d", len(body))
	}
}

func TestForLog_TruncatesStackTrace(t *testing.T) {
	ev := baseLog()
	ev.Stack = strings.Repeat("x", 5000)
	emb := ForLog(ev)

	body := strings.TrimSuffix(strings.TrimPrefix(emb.Fields[2].Value, "```\n"), "\n```")
	if len(body) != 1000 {
		t.Fatalf("expected exactly 1000 characters, got %d", len(body))
	}
}

func TestForLog_OmitsEmptyMetadata(t *testing.T) {
	for _, md := range []map[string]any{nil, {}} {
		ev := baseLog()
		ev.Metadata = md
		for _, f := range ForLog(ev).Fields {
			if f.Name == "Metadata" {
				t.Fatalf("expected no Metadata field for %v", md)
			}
		}
	}
}

func TestForFeedback_Stars(t *testing.T) {
	fb := &event.Feedback{AppName: "svc-a", Message: "nice", Rating: 3}
	emb := ForFeedback(fb)
	if got := strings.Count(emb.Title, "⭐"); got != 3 {
		t.Fatalf("expected 3 stars, got %d in %q", got, emb.Title)
	}

	fb.Rating = 0
	if got := strings.Count(ForFeedback(fb).Title, "⭐"); got != 0 {
		t.Fatalf("expected no stars, got %d", got)
	}
}

func TestForFeedback_FieldsAndColor(t *testing.T) {
	fb := &event.Feedback{
		AppName:  "svc-a",
		Name:     "Ada",
		Email:    "ada@example.com",
		Source:   "web",
		Message:  "nice",
		Metadata: map[string]any{"plan": "pro"},
	}
	emb := ForFeedback(fb)
	if emb.Color != 0x4CAF50 {
		t.Fatalf("expected feedback color, got %#x", emb.Color)
	}
	var names []string
	for _, f := range emb.Fields {
		names = append(names, f.Name)
	}
	want := []string{"Application", "Name", "Email", "Source", "Metadata"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("expected field order %v, got %v", want, names)
	}
}

func TestFormatters_Idempotent(t *testing.T) {
	ev := baseLog()
	ev.Metadata = map[string]any{"k": "v", "n": 2}
	if !reflect.DeepEqual(ForLog(ev), ForLog(ev)) {
		t.Fatal("ForLog is not idempotent")
	}

	fb := &event.Feedback{AppName: "svc-a", Message: "nice", Rating: 5,
		Timestamp: time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)}
	if !reflect.DeepEqual(ForFeedback(fb), ForFeedback(fb)) {
		t.Fatal("ForFeedback is not idempotent")
	}
}
