package leaderboard

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeEntries(n int) []Entry {
	entries := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, Entry{
			Name:        fmt.Sprintf("agent%02d", i+1),
			StaticID:    fmt.Sprintf("#%d", i+1),
			RankName:    "Agent",
			DeptName:    "PPD",
			PointsTotal: 1000 - i, // pre-sorted descending
		})
	}
	return entries
}

func TestFormatEmbedsEmpty(t *testing.T) {
	embeds := FormatEmbeds(nil, testNow, "ru")

	assert.Len(t, embeds, 1)
	assert.Equal(t, leaderboardTitle, embeds[0].Title)
	assert.NotContains(t, embeds[0].Description, "```")
	assert.NotEmpty(t, embeds[0].Timestamp)
}

func TestFormatEmbedsPagination(t *testing.T) {
	embeds := FormatEmbeds(makeEntries(16), testNow, "en")

	assert.Len(t, embeds, 2)

	page1 := embeds[0]
	assert.Equal(t, leaderboardTitle, page1.Title)
	assert.NotEmpty(t, page1.Timestamp)
	assert.Equal(t, "Page 1 of 2 • Updated", page1.Footer.Text)
	assert.Contains(t, page1.Description, "1.🥇")
	assert.Contains(t, page1.Description, "2.🥈")
	assert.Contains(t, page1.Description, "3.🥉")
	// 15 data rows: header + divider + rows inside the fence.
	assert.Equal(t, 15, strings.Count(page1.Description, "agent"))

	page2 := embeds[1]
	assert.Empty(t, page2.Title)
	assert.Empty(t, page2.Timestamp)
	assert.Equal(t, "Page 2 of 2 • Updated", page2.Footer.Text)
	assert.Equal(t, 1, strings.Count(page2.Description, "agent"))
	assert.Contains(t, page2.Description, "16.")
	assert.NotContains(t, page2.Description, "🥇")
}

func TestFormatEmbedsBlockCap(t *testing.T) {
	// 160 entries → 11 pages, silently capped to the channel's 10-block limit.
	embeds := FormatEmbeds(makeEntries(160), testNow, "en")

	assert.Len(t, embeds, maxBlocks)
	// Entry 150 is the last visible row; its four-rune position cell is
	// truncated to the 3-rune budget like any other over-budget cell.
	assert.Contains(t, embeds[9].Description, "15. agent150")
	assert.Equal(t, "Page 10 of 11 • Updated", embeds[9].Footer.Text)
	for _, e := range embeds {
		assert.NotContains(t, e.Description, "agent151")
	}
}

func TestFormatEmbedsDeterministic(t *testing.T) {
	entries := makeEntries(20)
	a := FormatEmbeds(entries, testNow, "ru")
	b := FormatEmbeds(entries, testNow, "ru")

	assert.Equal(t, a, b)
}

func TestFormatEmbedsTruncation(t *testing.T) {
	entries := []Entry{{
		Name:        "anextremelylongnickname",
		StaticID:    "#1234567",
		RankName:    "Commander-in-Chief",
		DeptName:    "Intelligence",
		PointsTotal: 12,
	}}

	embeds := FormatEmbeds(entries, testNow, "en")
	desc := embeds[0].Description

	assert.Contains(t, desc, "anextreme.") // name cut to 10 with dot
	assert.Contains(t, desc, "#1234.")     // id cut to 6
	assert.Contains(t, desc, "Commander.") // rank cut to 10
	assert.Contains(t, desc, "Int.")       // dept cut to 4
	assert.NotContains(t, desc, "anextremelylongnickname")
}

func TestPad(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"abc", 5, "abc  "},
		{"abcdef", 5, "abcd."},
		{"abc", 3, "abc"},
		// rune-based truncation
		{"агент", 4, "аге."},
		// medal marker fits its cell
		{"1.🥇", 3, "1.🥇"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, pad(tt.in, tt.width), "pad(%q, %d)", tt.in, tt.width)
	}
}

func TestPadNum(t *testing.T) {
	assert.Equal(t, "   7", padNum(7, 4))
	assert.Equal(t, " 1234", padNum(1234, 5))
}

func TestFormatEmbedsColumnsAligned(t *testing.T) {
	embeds := FormatEmbeds(makeEntries(3), testNow, "en")
	lines := strings.Split(strings.Trim(strings.TrimPrefix(embeds[0].Description, "```text\n"), "`\n"), "\n")

	// Every row matches the header width, medals included.
	header := lines[0]
	for _, line := range lines[2:] {
		assert.Equal(t, len([]rune(header)), len([]rune(line)), "row %q", line)
	}
}
