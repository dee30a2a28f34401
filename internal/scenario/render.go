package scenario

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
)

// RenderMarkdown formats a Trace as a Markdown execution report: a
// heading followed by one list item per observed event.
func RenderMarkdown(trace *Trace) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Scenario trace: %s\n\n", trace.ScenarioName)
	for _, ev := range trace.Events {
		fmt.Fprintf(&b, "- `%s` %s\n", ev.VirtualTime, ev.Detail)
	}

	return b.String()
}

// RenderHTML converts a Trace's Markdown report to HTML via goldmark,
// for output formats that want a rendered report rather than raw
// Markdown source.
func RenderHTML(trace *Trace) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(RenderMarkdown(trace)), &buf); err != nil {
		return "", fmt.Errorf("scenario: render html: %w", err)
	}

	return buf.String(), nil
}

// RenderText formats a Trace as a plain-text report, one event per line.
func RenderText(trace *Trace) string {
	var b strings.Builder

	fmt.Fprintf(&b, "scenario trace: %s\n", trace.ScenarioName)
	for _, ev := range trace.Events {
		fmt.Fprintf(&b, "[%s] %s\n", ev.VirtualTime, ev.Detail)
	}

	return b.String()
}
