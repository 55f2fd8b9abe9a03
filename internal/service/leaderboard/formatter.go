package leaderboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/usss-rp/portal/internal/discord"
)

// Column budgets for the fixed-width table. Over-budget cells are truncated
// to width-1 plus a dot.
const (
	maxName = 10
	maxRank = 10
	maxDept = 4
	maxID   = 6

	pageSize  = 15
	maxBlocks = 10 // Discord's embed-per-message ceiling; extra pages are dropped

	embedColor = 0x2b2d31
)

const leaderboardTitle = "🛡️ USSS Agent Leaderboard"

// FormatEmbeds renders ranked entries as paginated fixed-width embeds.
// Pages hold 15 rows; positions 1-3 carry medal markers; only the first
// block gets the title and timestamp; every block carries a page footer.
// Output is capped at 10 blocks, a hard channel ceiling: anything past
// page 10 is silently dropped.
func FormatEmbeds(entries []Entry, now time.Time, lang string) []discord.Embed {
	if len(entries) == 0 {
		return []discord.Embed{{
			Title:       leaderboardTitle,
			Description: emptyText(lang),
			Color:       embedColor,
			Timestamp:   now.UTC().Format(time.RFC3339),
			Footer:      &discord.EmbedFooter{Text: "Majestic RP USSS • Automatic Update"},
		}}
	}

	totalPages := (len(entries) + pageSize - 1) / pageSize

	var embeds []discord.Embed
	for i := 0; i < len(entries); i += pageSize {
		chunk := entries[i:min(i+pageSize, len(entries))]

		header := fmt.Sprintf("%s %s %s %s %s %s %s %s",
			pad("#", 3), pad("NAME", maxName), pad("ID", maxID), pad("RANK", maxRank),
			pad("DEPT", maxDept), pad("DAY", 4), pad("WK", 4), pad("TOT", 5))
		divider := strings.Repeat("─", len([]rune(header)))

		rows := make([]string, 0, len(chunk))
		for idx, e := range chunk {
			pos := i + idx + 1
			posStr := fmt.Sprintf("%d.", pos)
			switch pos {
			case 1:
				posStr = "1.🥇"
			case 2:
				posStr = "2.🥈"
			case 3:
				posStr = "3.🥉"
			}

			rows = append(rows, fmt.Sprintf("%s %s %s %s %s %s %s %s",
				pad(posStr, 3), pad(e.Name, maxName), pad(e.StaticID, maxID),
				pad(e.RankName, maxRank), pad(e.DeptName, maxDept),
				padNum(e.PointsDay, 4), padNum(e.PointsWeek, 4), padNum(e.PointsTotal, 5)))
		}

		embed := discord.Embed{
			Description: "```text\n" + header + "\n" + divider + "\n" + strings.Join(rows, "\n") + "\n```",
			Color:       embedColor,
			Footer:      &discord.EmbedFooter{Text: pageFooter(i/pageSize+1, totalPages, lang)},
		}
		if i == 0 {
			embed.Title = leaderboardTitle
			embed.Timestamp = now.UTC().Format(time.RFC3339)
		}

		embeds = append(embeds, embed)
	}

	if len(embeds) > maxBlocks {
		embeds = embeds[:maxBlocks]
	}

	return embeds
}

// pad left-aligns s in a cell of the given rune width, truncating with a
// trailing dot when it does not fit. Rune-based so Cyrillic nicknames and
// medal markers keep their column aligned.
func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width-1]) + "."
	}
	return s + strings.Repeat(" ", width-len(runes))
}

// padNum right-aligns a number in a cell of the given width.
func padNum(n, width int) string {
	return fmt.Sprintf("%*d", width, n)
}

func pageFooter(page, total int, lang string) string {
	if lang == "en" {
		return fmt.Sprintf("Page %d of %d • Updated", page, total)
	}
	return fmt.Sprintf("Страница %d из %d • Обновлено", page, total)
}

func emptyText(lang string) string {
	if lang == "en" {
		return "No data yet: there are no approved reports."
	}
	return "Данные отсутствуют или еще нет одобренных отчетов."
}
