package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/daily-activity-cli/internal/application"
	"github.com/bnema/daily-activity-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const progressBarWidth = 20

type RenderOptions struct {
	Now time.Time
	// NextReminder is shown when set.
	NextReminder time.Time
}

func renderView(d application.Dashboard, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Daily Activity"),
		s.header.Render(fmt.Sprintf("day: %s", d.Day)),
		s.section.Render(renderSuggestion(d, s)),
		s.section.Render(renderTier(d, s)),
	}

	if !opts.NextReminder.IsZero() {
		lines = append(lines, s.meta.Render("next reminder: "+formatWhen(opts.NextReminder, opts.Now)))
	}

	lines = append(lines, s.section.Render(renderRecent(d.Recent, opts.Now, s)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSuggestion(d application.Dashboard, s styles) string {
	label := s.label.Render("Today's activity:")

	if !d.Suggestion.Available() {
		return lipgloss.JoinVertical(lipgloss.Left, label, s.warning.Render(domain.UnavailableMessage))
	}

	text := s.suggestion.Render(d.Suggestion.Text)
	if d.Suggestion.Degraded() {
		text += " " + s.warning.Render("[offline]")
	}

	state := s.meta.Render("not done yet")
	if d.CompletedToday > 0 {
		state = s.done.Render(fmt.Sprintf("done today (%d)", d.CompletedToday))
	}

	return lipgloss.JoinVertical(lipgloss.Left, label, text, state)
}

func renderTier(d application.Dashboard, s styles) string {
	tier := lipgloss.NewStyle().Bold(true).Foreground(tierColor(d.Tier)).Render(d.Tier.String())
	header := lipgloss.JoinHorizontal(lipgloss.Top, s.label.Render("Tier: "), tier)

	meta := s.meta.Render(fmt.Sprintf("%d completions, %d active days, streak %d", d.Completions, d.DistinctDays, d.Streak))

	next, target, byStreak, ok := domain.NextTierTarget(d.Tier)
	if !ok {
		return lipgloss.JoinVertical(lipgloss.Left, header, meta, s.done.Render("highest tier reached"))
	}

	current, unit := d.Completions, "completions"
	if byStreak {
		current, unit = d.Streak, "day streak"
	}

	progress := lipgloss.JoinHorizontal(
		lipgloss.Top,
		renderProgressBar(current, target, progressBarWidth, s),
		" ",
		s.meta.Render(fmt.Sprintf("%d/%d %s to %s", min(current, target), target, unit, next)),
	)

	return lipgloss.JoinVertical(lipgloss.Left, header, meta, progress)
}

func renderRecent(recent []domain.CompletedActivity, now time.Time, s styles) string {
	lines := []string{s.label.Render("Recent:")}
	if len(recent) == 0 {
		lines = append(lines, s.empty.Render("No completed activities yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, activity := range recent {
		lines = append(lines, fmt.Sprintf("%s %s",
			s.meta.Render(formatWhen(activity.Timestamp, now)),
			s.detail.Render(activity.Description),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderProgressBar(current, target, width int, s styles) string {
	if width <= 0 || target <= 0 {
		return ""
	}

	fraction := float64(current) / float64(target)
	filled := int(math.Round(float64(width) * fraction))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func formatWhen(at, now time.Time) string {
	if at.IsZero() {
		return "unknown"
	}
	if now.IsZero() {
		return at.Format("2006-01-02 15:04")
	}

	yearA, monthA, dayA := now.Date()
	yearB, monthB, dayB := at.Date()
	if yearA == yearB && monthA == monthB && dayA == dayB {
		return "today " + at.Format("15:04")
	}

	yesterday := now.AddDate(0, 0, -1)
	yearY, monthY, dayY := yesterday.Date()
	if yearY == yearB && monthY == monthB && dayY == dayB {
		return "yesterday " + at.Format("15:04")
	}

	return at.Format("02 Jan 15:04")
}
