package content

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"
)

// ParseMetricValue splits a display value into its leading integer and the
// rest: "100M+" gives (100, "M+"). Values without a leading digit give
// (0, value).
func ParseMetricValue(value string) (target int, suffix string) {
	end := 0
	for end < len(value) && value[end] >= '0' && value[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, value
	}
	n, err := strconv.Atoi(value[:end])
	if err != nil {
		return 0, value
	}
	return n, value[end:]
}

var monthPrefixes = [...]string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

// parseMonth reads "Mon YYYY" (any month spelling starting with the
// three-letter prefix) or "present".
func parseMonth(s string, now time.Time) (year int, month time.Month, err error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "present") {
		return now.Year(), now.Month(), nil
	}
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("date %q: want \"Mon YYYY\"", s)
	}
	m := -1
	lower := strings.ToLower(parts[0])
	for i, p := range monthPrefixes {
		if strings.HasPrefix(lower, p) {
			m = i
			break
		}
	}
	if m < 0 {
		return 0, 0, fmt.Errorf("date %q: unknown month", s)
	}
	y, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("date %q: %w", s, err)
	}
	return y, time.Month(m + 1), nil
}

// FormatDuration renders the whole months between two "Mon YYYY" tokens as
// "1 yr 2 mos", "2 yrs" or "0 mos". "Present" resolves to now. An end
// before the start counts as zero.
func FormatDuration(start, end string, now time.Time) (string, error) {
	sy, sm, err := parseMonth(start, now)
	if err != nil {
		return "", err
	}
	ey, em, err := parseMonth(end, now)
	if err != nil {
		return "", err
	}
	total := max((ey-sy)*12+int(em-sm), 0)
	years, months := total/12, total%12

	yr := fmt.Sprintf("%d %s", years, plural(years, "yr", "yrs"))
	mo := fmt.Sprintf("%d %s", months, plural(months, "mo", "mos"))
	switch {
	case years > 0 && months > 0:
		return yr + " " + mo, nil
	case years > 0:
		return yr, nil
	default:
		return mo, nil
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

var tagHues = map[string]int{
	"Python": 210, "SQL": 200, "Excel": 140, "AI": 280,
	"Git": 30, "Docker": 200, "AWS": 30, "GitHub": 270,
	"FastAPI": 170, "Streamlit": 0, "HTML/CSS": 15,
	"Splink": 260, "SQL/BigQuery": 200, "Fivetran": 180,
	"Hex.Tech": 320,
}

// TagHue returns the hue (0-359) used to color a project tag. Known tags
// have fixed hues; others hash to a stable hue.
func TagHue(tag string) int {
	if h, ok := tagHues[tag]; ok {
		return h
	}
	return hashHue(tag)
}

// hashHue is the classic 31-multiplier string hash over UTF-16 code units,
// wrapping the shifted value to 32 bits on every step.
func hashHue(s string) int {
	var h int64
	for _, c := range utf16.Encode([]rune(s)) {
		shifted := int64(int32(uint32(h)) << 5)
		h = int64(c) + (shifted - h)
	}
	if h < 0 {
		h = -h
	}
	return int(h % 360)
}

var serviceIcons = map[string]string{
	"database":  `<svg viewBox="0 0 24 24" xmlns="http://www.w3.org/2000/svg"><ellipse cx="12" cy="5" rx="9" ry="3"/><path d="M21 12c0 1.66-4.03 3-9 3s-9-1.34-9-3"/><path d="M3 5v14c0 1.66 4.03 3 9 3s9-1.34 9-3V5"/></svg>`,
	"transfer":  `<svg viewBox="0 0 24 24" xmlns="http://www.w3.org/2000/svg"><path d="M7 16l-4-4 4-4"/><path d="M3 12h18"/><path d="M17 8l4 4-4 4"/></svg>`,
	"gear":      `<svg viewBox="0 0 24 24" xmlns="http://www.w3.org/2000/svg"><circle cx="12" cy="12" r="3"/><path d="M12 2v3M12 19v3M2 12h3M19 12h3M4.9 4.9l2.1 2.1M17 17l2.1 2.1M4.9 19.1L7 17M17 7l2.1-2.1"/></svg>`,
	"lightbulb": `<svg viewBox="0 0 24 24" xmlns="http://www.w3.org/2000/svg"><path d="M9 18h6"/><path d="M10 22h4"/><path d="M12 2a7 7 0 0 0-4 12.7V17h8v-2.3A7 7 0 0 0 12 2z"/></svg>`,
}

// ServiceIcon returns the inline SVG for a service icon name, falling back
// to the gear icon.
func ServiceIcon(name string) string {
	if svg, ok := serviceIcons[name]; ok {
		return svg
	}
	return serviceIcons["gear"]
}
