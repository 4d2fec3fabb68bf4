package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/fiszki/internal/badge"
	"github.com/alexanderramin/fiszki/internal/domain"
)

// maxEarnedOnDashboard caps the earned badge list of the dashboard.
const maxEarnedOnDashboard = 6

// FormatDashboard renders the statistics dashboard: account totals, the
// per-mode learned table, and earned and upcoming badges. Modes missing from
// groups show no group count.
func FormatDashboard(s domain.UserStats, upcoming []badge.Progress, groups map[domain.ExerciseMode]int) string {
	var b strings.Builder
	b.WriteString(Header("Your progress"))
	b.WriteString("\n")

	combo := ""
	if s.HighestCombo > 0 {
		combo = Dim(fmt.Sprintf(" (max ×%d)", s.HighestCombo))
	}
	level := s.Level
	if level == "" {
		level = "--"
	}
	fmt.Fprintf(&b, "  %-10s %s\n", "Points", StyleYellow.Render(fmt.Sprint(s.TotalPoints)))
	fmt.Fprintf(&b, "  %-10s %d%s\n", "Streak", s.CurrentStreak, combo)
	fmt.Fprintf(&b, "  %-10s %s %s\n", "Level", StylePurple.Render(level), RenderProgress(float64(s.LevelProgress)/100, 16))
	fmt.Fprintf(&b, "  %-10s %d%s\n\n", "Learned", s.TotalLearned, Dim(fmt.Sprintf(" / %d", s.TotalItems)))

	rows := make([][]string, 0, len(domain.AllModes))
	for _, m := range domain.AllModes {
		c := s.Modes[m]
		pct := 0.0
		if c.Total > 0 {
			pct = float64(c.Learned) / float64(c.Total)
		}
		n := Dim("–")
		if count, ok := groups[m]; ok {
			n = fmt.Sprint(count)
		}
		rows = append(rows, []string{m.Label(), n, fmt.Sprint(c.Learned), fmt.Sprint(c.Total), RenderProgress(pct, 12)})
	}
	b.WriteString(Table{
		Headers: []string{"MODE", "GROUPS", "LEARNED", "TOTAL", ""},
		Align:   []Align{AlignLeft, AlignRight, AlignRight, AlignRight},
		Rows:    rows,
	}.Render())

	earned := badge.Earned(s)
	if len(earned) > 0 {
		b.WriteString("\n")
		b.WriteString(Header(fmt.Sprintf("Badges (%d)", len(earned))))
		b.WriteString("\n")
		shown := earned
		if len(shown) > maxEarnedOnDashboard {
			shown = shown[:maxEarnedOnDashboard]
		}
		for _, d := range shown {
			b.WriteString("  " + FormatBadge(d) + "\n")
		}
		if extra := len(earned) - len(shown); extra > 0 {
			b.WriteString(Dim(fmt.Sprintf("  …and %d more\n", extra)))
		}
	}
	if len(upcoming) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Next up"))
		b.WriteString("\n")
		b.WriteString(FormatUpcoming(upcoming))
	}
	return b.String()
}

// FormatBadge renders one badge as "emoji Name (tier)".
func FormatBadge(d badge.Definition) string {
	return fmt.Sprintf("%s %s %s", d.Emoji, TierStyle(d.Tier).Render(d.Name), Dim("("+string(d.Tier)+")"))
}

// FormatUpcoming renders near-miss badges with their progress bars.
func FormatUpcoming(list []badge.Progress) string {
	var b strings.Builder
	for _, p := range list {
		fmt.Fprintf(&b, "  %s %s %s %s\n",
			p.Badge.Emoji,
			Bold(p.Badge.Name),
			RenderProgress(p.Percent/100, 12),
			Dim(fmt.Sprintf("%d/%d", p.Current, p.Badge.Requirement)),
		)
	}
	return b.String()
}

// FormatCatalog lists every badge with an earned marker.
func FormatCatalog(s domain.UserStats) string {
	var b strings.Builder
	b.WriteString(Header("Badges"))
	b.WriteString("\n")
	for _, d := range badge.Catalog() {
		mark := Dim("○")
		if d.Satisfied(s) {
			mark = StyleGreen.Render("✔")
		}
		fmt.Fprintf(&b, "  %s %s  %s\n", mark, FormatBadge(d), Dim(d.Description))
	}
	return b.String()
}
