package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/fiszki/internal/domain"
)

// FormatGroups renders the group list of one mode.
func FormatGroups(mode domain.ExerciseMode, groups []domain.StudyGroup, now time.Time) string {
	if len(groups) == 0 {
		return Dim(fmt.Sprintf("No groups for %s.", mode.Label())) + "\n"
	}
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		pct := 0.0
		if g.TotalItems > 0 {
			pct = float64(g.LearnedItems) / float64(g.TotalItems)
		}
		rows = append(rows, []string{
			Bold(Truncate(g.Name, 32)),
			Dim(Truncate(g.ID, 12)),
			fmt.Sprintf("%d/%d", g.LearnedItems, g.TotalItems),
			RenderProgress(pct, 10),
			Dim(UpdatedAgo(g.UpdatedAt, now)),
		})
	}
	t := Table{
		Headers: []string{"GROUP", "ID", "LEARNED", "PROGRESS", "UPDATED"},
		Align:   []Align{AlignLeft, AlignLeft, AlignRight},
		Rows:    rows,
	}
	return Header(mode.Label()) + "\n" + t.Render()
}

// FormatSummary renders the end-of-pass record.
func FormatSummary(s domain.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s   %s  %s   %s  %s\n\n",
		Dim("Points"), Signed(s.SessionPoints),
		Dim("Accuracy"), accuracyStyle(s.Accuracy),
		Dim("Time"), StylePurple.Render(domain.FormatDuration(s.Duration)),
	)
	fmt.Fprintf(&b, "%s %s   %s %s   %s %s   %s\n\n",
		StyleGreen.Render("✔"), strconv.Itoa(s.Correct),
		StyleRed.Render("✘"), strconv.Itoa(s.Wrong),
		StyleDim.Render("⤼"), strconv.Itoa(s.Skipped),
		Dim(fmt.Sprintf("of %d", s.Total)),
	)

	lines := [][2]string{{"Gained", Signed(s.Breakdown.Gained)}}
	if s.Breakdown.MiniGameBonus != 0 {
		lines = append(lines, [2]string{"Word game bonus", Signed(s.Breakdown.MiniGameBonus)})
	}
	if s.Breakdown.AICorrected != 0 {
		lines = append(lines, [2]string{"Saved by AI", Signed(s.Breakdown.AICorrected)})
	}
	if s.Breakdown.Lost != 0 {
		lines = append(lines, [2]string{"Mistakes", Signed(-s.Breakdown.Lost)})
	}
	lines = append(lines, [2]string{"Best combo", StyleYellow.Render(fmt.Sprintf("×%d", s.MaxCombo))})
	for _, l := range lines {
		fmt.Fprintf(&b, "  %-16s %s\n", l[0], l[1])
	}
	return strings.TrimRight(b.String(), "\n")
}

func accuracyStyle(pct int) string {
	text := fmt.Sprintf("%d%%", pct)
	switch {
	case pct >= 80:
		return StyleGreen.Render(text)
	case pct >= 50:
		return StyleYellow.Render(text)
	default:
		return StyleRed.Render(text)
	}
}
