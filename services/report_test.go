package services

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"boxoffice-report/models"
)

func sampleReport() *models.Report {
	return &models.Report{
		RunID:       "run-1",
		GeneratedAt: time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC),
		Entries: []models.ReportEntry{
			{Rank: 1, Title: "Movie A", OpenDate: "2024-03-01", DDayLabel: "D+5", DailyAudience: "12,000", TotalAudience: "50,000", ReservedCount: "3,000", MatchMethod: models.MatchExact},
			{Rank: 10, Title: "Movie J", OpenDate: "", DDayLabel: DDayUnknown, DailyAudience: "10", TotalAudience: "99", ReservedCount: "0", MatchMethod: models.MatchNone},
		},
	}
}

func TestRenderText(t *testing.T) {
	got := RenderText(sampleReport())

	want := strings.Join([]string{
		"🎬 일일 박스오피스 현황(24.03.05 09시 기준)",
		reportRule,
		"1️⃣ Movie A",
		"- 개봉일: 2024-03-01(개봉 D+5)",
		"- 당일 12,000명",
		"- 누적 50,000명",
		"- 예매 3,000명",
		"",
		"🔟 Movie J",
		"- 개봉일: -(개봉일 미정)",
		"- 당일 10명",
		"- 누적 99명",
		"- 예매 0명",
		"",
		reportRule,
		"🔗 출처: KOBIS",
	}, "\n")

	if got != want {
		t.Errorf("RenderText mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderTextEmptyReport(t *testing.T) {
	got := RenderText(&models.Report{GeneratedAt: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Source: "test"})
	if !strings.HasSuffix(got, "🔗 출처: test") {
		t.Errorf("footer missing: %q", got)
	}
}

func TestRankBadge(t *testing.T) {
	tests := []struct {
		rank int
		want string
	}{
		{1, "1️⃣"},
		{10, "🔟"},
		{11, "11."},
		{-1, "-1."},
	}
	for _, tt := range tests {
		if got := rankBadge(tt.rank); got != tt.want {
			t.Errorf("rankBadge(%d) = %q; want %q", tt.rank, got, tt.want)
		}
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, sampleReport())

	// footers and headers are upper-cased by the table style
	out := strings.ToLower(buf.String())
	for _, want := range []string{"movie a", "movie j", "d+5", DDayUnknown, "run-1", "2 entries"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}
