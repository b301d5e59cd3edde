// Package console provides the interactive playback dashboard.
package console

import (
	"fmt"
	"strings"

	"github.com/playman-cli/playman/color"
	"github.com/playman-cli/playman/event"
	"github.com/playman-cli/playman/icon"
	"github.com/playman-cli/playman/key"
	"github.com/playman-cli/playman/query"
	"github.com/playman-cli/playman/style"
	"github.com/muesli/reflow/wrap"
	"github.com/spf13/viper"
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case dashboardState:
		output = b.viewDashboard()
	case openState:
		output = b.viewOpen()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewDashboard() string {
	lines := []string{
		style.Title("Now Playing"),
		"",
		style.Truncate(b.width)(stateIcon(b.playState) + " " + style.Fg(color.Purple)(b.itemTitle())),
		"",
		b.progressLine(),
		"",
		style.Truncate(b.width)(b.statusLine()),
	}

	if b.lastError != "" {
		lines = append(lines, "", style.Fg(color.Yellow)(style.Truncate(b.width)(b.lastError)))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewOpen() string {
	lines := []string{
		style.Title("Open Media"),
		"",
		b.inputC.View(),
	}

	if suggestion, ok := b.openSuggestion.Get(); ok {
		lines = append(lines, style.Faint("tab: "+suggestion))
	}

	if viper.GetBool(key.ConsoleShowLocations) {
		if recent := query.SuggestMany(b.inputC.Value()); len(recent) > 0 {
			lines = append(lines, "", style.Faint("Recent:"))
			for _, location := range recent {
				lines = append(lines, style.Faint("  "+location))
			}
		}
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewError() string {
	return b.renderLines(
		true,
		append([]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " Playback failed:",
			"",
		},
			wrap.String(style.Fg(color.Red)(b.lastError), b.width),
		),
	)
}

// progressLine renders the seek bar with a position clock, or a plain clock for
// media that reports no duration.
func (b *statefulBubble) progressLine() string {
	clock := formatClock(b.position) + " / " + formatClock(b.duration)

	if b.duration <= 0 {
		return clock
	}

	return b.progressC.ViewAs(b.position/b.duration) + " " + clock
}

func (b *statefulBubble) statusLine() string {
	volumeIcon := icon.Get(icon.Volume)
	if b.muted {
		volumeIcon = icon.Get(icon.Mute)
	}

	parts := []string{
		fmt.Sprintf("%s %d%%", volumeIcon, b.volume),
		fmt.Sprintf("%.2gx", b.rate),
	}

	if len(b.playlist) > 1 {
		parts = append(parts, fmt.Sprintf("item %d/%d", b.index+1, len(b.playlist)))
	}

	if b.fullscreen {
		parts = append(parts, "fullscreen")
	}

	return strings.Join(parts, "  ")
}

func (b *statefulBubble) itemTitle() string {
	item, ok := b.currentItem().Get()
	if !ok {
		return "Nothing loaded"
	}

	if item.Title != "" {
		return item.Title
	}

	if item.File != "" {
		return item.File
	}

	return "Untitled"
}

func stateIcon(playState string) string {
	switch playState {
	case event.StatePlaying:
		return icon.Get(icon.Play)
	case event.StatePaused:
		return icon.Get(icon.Pause)
	case event.StateBuffering:
		return icon.Get(icon.Buffer)
	case event.StateComplete:
		return icon.Get(icon.Success)
	default:
		return icon.Get(icon.Stop)
	}
}

func formatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}

	total := int(seconds)
	if total >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", total/3600, total%3600/60, total%60)
	}

	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
