package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMetricValue(t *testing.T) {
	tests := []struct {
		in     string
		target int
		suffix string
	}{
		{"15+", 15, "+"},
		{"100M+", 100, "M+"},
		{"7", 7, ""},
		{"abc", 0, "abc"},
		{"", 0, ""},
		{"3.5x", 3, ".5x"},
	}
	for _, tt := range tests {
		target, suffix := ParseMetricValue(tt.in)
		assert.Equal(t, tt.target, target, tt.in)
		assert.Equal(t, tt.suffix, suffix, tt.in)
	}
}

func TestFormatDuration(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		start, end, want string
	}{
		{"Jan 2022", "Mar 2023", "1 yr 2 mos"},
		{"Jan 2020", "Jan 2022", "2 yrs"},
		{"Jan 2023", "Feb 2023", "1 mo"},
		{"Jun 2024", "Present", "0 mos"},
		{"January 2023", "present", "1 yr 5 mos"},
		{"Mar 2023", "Jan 2022", "0 mos"},
	}
	for _, tt := range tests {
		got, err := FormatDuration(tt.start, tt.end, now)
		require.NoError(t, err, tt.start)
		assert.Equal(t, tt.want, got, "%s - %s", tt.start, tt.end)
	}

	for _, bad := range [][2]string{{"someday", "Present"}, {"Foo 2020", "Present"}, {"Jan 20x0", "Present"}, {"Jan 2020", ""}} {
		_, err := FormatDuration(bad[0], bad[1], now)
		assert.Error(t, err, bad)
	}
}

func TestTagHue(t *testing.T) {
	assert.Equal(t, 210, TagHue("Python"))
	assert.Equal(t, 30, TagHue("AWS"))
	assert.Equal(t, 225, TagHue("ab"))
	assert.Equal(t, 0, TagHue(""))

	for _, tag := range []string{"Go", "Kubernetes", "Rust", "données", "a very long tag name that overflows the hash"} {
		h := TagHue(tag)
		assert.GreaterOrEqual(t, h, 0, tag)
		assert.Less(t, h, 360, tag)
		assert.Equal(t, h, TagHue(tag), "hue must be stable")
	}
}

func TestServiceIcon(t *testing.T) {
	assert.Contains(t, ServiceIcon("database"), "<ellipse")
	assert.Equal(t, ServiceIcon("gear"), ServiceIcon("unknown"))
	assert.Equal(t, ServiceIcon("gear"), ServiceIcon(""))
}

func TestProfileFullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", Profile{FirstName: "Ada", LastName: "Lovelace"}.FullName())
	assert.Equal(t, "Ada", Profile{FirstName: "Ada"}.FullName())
}
