package clock

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   Clock
		wantOK bool
	}{
		{name: "hour and minute", input: "6:30", want: Clock{6, 30}, wantOK: true},
		{name: "two digit hour", input: "12:00", want: Clock{12, 0}, wantOK: true},
		{name: "surrounding spaces", input: "  7:05 ", want: Clock{7, 5}, wantOK: true},
		{name: "empty minute", input: "9:", want: Clock{9, 0}, wantOK: true},
		{name: "single digit minute", input: "9:5", want: Clock{9, 5}, wantOK: true},
		{name: "hour clamped high", input: "15:20", want: Clock{12, 20}, wantOK: true},
		{name: "hour clamped low", input: "0:45", want: Clock{1, 45}, wantOK: true},
		{name: "minute clamped", input: "3:75", want: Clock{3, 59}, wantOK: true},
		{name: "digits only", input: "130", want: Clock{1, 30}, wantOK: true},
		{name: "digits only hour", input: "11", want: Clock{11, 0}, wantOK: true},
		{name: "digits only four", input: "1045", want: Clock{10, 45}, wantOK: true},
		{name: "empty", input: "", wantOK: false},
		{name: "blank", input: "   ", wantOK: false},
		{name: "letters", input: "noon", wantOK: false},
		{name: "three digit hour", input: "123:00", wantOK: false},
		{name: "three digit minute", input: "1:234", wantOK: false},
		{name: "zero hour digits", input: "0", want: Clock{1, 0}, wantOK: true},
		{name: "only zeros", input: "00", want: Clock{1, 0}, wantOK: true},
		{name: "three zeros", input: "000", want: Clock{1, 0}, wantOK: true},
		{name: "zero hour with minute", input: "0030", want: Clock{1, 30}, wantOK: true},
		{name: "zero hour short", input: "045", want: Clock{1, 45}, wantOK: true},
		{name: "padded hour", input: "05", want: Clock{5, 0}, wantOK: true},
		{name: "padded hour and minute", input: "0915", want: Clock{9, 15}, wantOK: true},
		{name: "too many digits", input: "12345", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParse_AlwaysInRange(t *testing.T) {
	for h := 0; h <= 99; h++ {
		for m := -1; m <= 99; m++ {
			inputs := []string{fmt.Sprintf("%d:%02d", h, max(m, 0))}
			if m >= 0 && m <= 9 {
				inputs = append(inputs, fmt.Sprintf("%d:%d", h, m))
			}
			if m < 0 {
				inputs = []string{fmt.Sprintf("%d:", h)}
			}

			for _, in := range inputs {
				c, ok := Parse(in)
				require.True(t, ok, in)
				assert.GreaterOrEqual(t, c.Hour, 1, in)
				assert.LessOrEqual(t, c.Hour, 12, in)
				assert.GreaterOrEqual(t, c.Minute, 0, in)
				assert.LessOrEqual(t, c.Minute, 59, in)
			}
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for h := 1; h <= 12; h++ {
		for m := 0; m <= 59; m++ {
			in := fmt.Sprintf("%d:%02d", h, m)
			out, ok := Normalize(in)
			require.True(t, ok)
			assert.Equal(t, in, out)

			again, ok := Normalize(out)
			require.True(t, ok)
			assert.Equal(t, out, again)
		}
	}
}

func TestNormalize(t *testing.T) {
	got, ok := Normalize("07:5")
	require.True(t, ok)
	assert.Equal(t, "7:05", got)

	_, ok = Normalize("abc")
	assert.False(t, ok)
}

func TestLive(t *testing.T) {
	tests := []struct {
		buffer string
		want   string
	}{
		{"", ""},
		{"0", ""},
		{"00", ""},
		{"1", "1"},
		{"10", "10"},
		{"12", "12"},
		{"13", "1:3"},
		{"135", "1:35"},
		{"17", "1:07"},
		{"176", "1:07"},
		{"9", "9"},
		{"93", "9:3"},
		{"945", "9:45"},
		{"1230", "12:30"},
		{"1259", "12:59"},
		{"1267", "12:06"},
		{"01230", "12:30"},
		{"12:3", "12:3"},
		{"123456", "12:34"},
		{"2", "2"},
		{"25", "2:5"},
		{"259", "2:59"},
	}

	for _, tt := range tests {
		t.Run(tt.buffer, func(t *testing.T) {
			assert.Equal(t, tt.want, Live(tt.buffer))
		})
	}
}

func TestParseMeridiem(t *testing.T) {
	tests := []struct {
		input  string
		want   Meridiem
		wantOK bool
	}{
		{"AM", AM, true},
		{"pm", PM, true},
		{"p.m.", PM, true},
		{" a.m. ", AM, true},
		{"", "", false},
		{"noon", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseMeridiem(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMinutesOfDay(t *testing.T) {
	assert.Equal(t, 0, MinutesOfDay(Clock{12, 0}, AM))
	assert.Equal(t, 30, MinutesOfDay(Clock{12, 30}, AM))
	assert.Equal(t, 720, MinutesOfDay(Clock{12, 0}, PM))
	assert.Equal(t, 780, MinutesOfDay(Clock{1, 0}, PM))
	assert.Equal(t, 810, MinutesOfDay(Clock{1, 30}, PM))
	assert.Equal(t, 1439, MinutesOfDay(Clock{11, 59}, PM))
}

func TestFromMinutes_RoundTrip(t *testing.T) {
	for m := 0; m < MinutesPerDay; m++ {
		c, mer := FromMinutes(m)
		assert.Equal(t, m, MinutesOfDay(c, mer))
	}

	c, mer := FromMinutes(-30)
	assert.Equal(t, Clock{11, 30}, c)
	assert.Equal(t, PM, mer)
}
