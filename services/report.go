package services

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"boxoffice-report/models"
)

const (
	reportRule   = "━━━━━━━━━━━━━━━━━━"
	reportSource = "KOBIS"
)

// RenderText formats the report as the plain-text message sent to the chat.
func RenderText(r *models.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🎬 일일 박스오피스 현황(%s 기준)\n", r.GeneratedAt.Format("06.01.02 15시"))
	b.WriteString(reportRule + "\n")

	for _, e := range r.Entries {
		fmt.Fprintf(&b, "%s %s\n", rankBadge(e.Rank), e.Title)
		fmt.Fprintf(&b, "- 개봉일: %s(%s)\n", displayOpenDate(e.OpenDate), displayDDay(e.DDayLabel))
		fmt.Fprintf(&b, "- 당일 %s명\n", orDash(e.DailyAudience))
		fmt.Fprintf(&b, "- 누적 %s명\n", orDash(e.TotalAudience))
		fmt.Fprintf(&b, "- 예매 %s명\n\n", e.ReservedCount)
	}

	source := r.Source
	if source == "" {
		source = reportSource
	}
	b.WriteString(reportRule + "\n🔗 출처: " + source)
	return b.String()
}

// PrintTable writes the report as a console table, used for dry runs.
func PrintTable(w io.Writer, r *models.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetTitle("Box office %s (run %s)", r.GeneratedAt.Format("2006-01-02 15:04 MST"), r.RunID)
	t.AppendHeader(table.Row{"#", "Title", "Open", "D-day", "Daily", "Total", "Reserved", "Match"})
	for _, e := range r.Entries {
		t.AppendRow(table.Row{e.Rank, e.Title, e.OpenDate, e.DDayLabel, e.DailyAudience, e.TotalAudience, e.ReservedCount, string(e.MatchMethod)})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d entries", len(r.Entries))})
	t.Render()
}

var keycaps = []string{"0️⃣", "1️⃣", "2️⃣", "3️⃣", "4️⃣", "5️⃣", "6️⃣", "7️⃣", "8️⃣", "9️⃣", "🔟"}

func rankBadge(rank int) string {
	if rank >= 0 && rank < len(keycaps) {
		return keycaps[rank]
	}
	return strconv.Itoa(rank) + "."
}

func displayDDay(label string) string {
	if label == DDayUnknown {
		return "개봉일 미정"
	}
	return "개봉 " + label
}

func displayOpenDate(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
