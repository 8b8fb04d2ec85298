package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{input: "08:30", want: TimeOfDay{8, 30}},
		{input: "8:30", want: TimeOfDay{8, 30}},
		{input: "23:59", want: TimeOfDay{23, 59}},
		{input: "00:00", want: TimeOfDay{0, 0}},
		{input: "24:00", want: TimeOfDay{24, 0}},
		{input: "24:01", wantErr: true},
		{input: "25:00", wantErr: true},
		{input: "12:60", wantErr: true},
		{input: "123:00", wantErr: true},
		{input: "12:5", wantErr: true},
		{input: "noon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLabelExtractor_Extract(t *testing.T) {
	work := NewLabelExtractor(WorkHoursLabel)

	tests := []struct {
		name   string
		text   string
		want   Window
		wantOK bool
	}{
		{
			name:   "bare tokens",
			text:   "근무 시간 08:30 17:00",
			want:   Window{Start: TimeOfDay{8, 30}, End: TimeOfDay{17, 0}},
			wantOK: true,
		},
		{
			name:   "sentence form",
			text:   "서울 지사의 근무 시간은 09:00부터 18:00까지입니다.",
			want:   Window{Start: TimeOfDay{9, 0}, End: TimeOfDay{18, 0}},
			wantOK: true,
		},
		{
			name:   "single digit hour",
			text:   "근무 시간: 9:00 - 17:30",
			want:   Window{Start: TimeOfDay{9, 0}, End: TimeOfDay{17, 30}},
			wantOK: true,
		},
		{
			name:   "tokens across newlines",
			text:   "근무 시간\n- 시작 07:00\n- 종료 16:00",
			want:   Window{Start: TimeOfDay{7, 0}, End: TimeOfDay{16, 0}},
			wantOK: true,
		},
		{
			name:   "first occurrence wins",
			text:   "근무 시간 08:00~17:00 (여름 근무 시간 07:00~16:00)",
			want:   Window{Start: TimeOfDay{8, 0}, End: TimeOfDay{17, 0}},
			wantOK: true,
		},
		{
			name:   "inverted order is preserved",
			text:   "근무 시간 18:00 09:00",
			want:   Window{Start: TimeOfDay{18, 0}, End: TimeOfDay{9, 0}},
			wantOK: true,
		},
		{
			name: "no label",
			text: "업무는 09:00부터 18:00까지입니다.",
		},
		{
			name: "only one token",
			text: "근무 시간은 09:00부터입니다.",
		},
		{
			name: "tokens before the label do not count",
			text: "09:00 18:00 근무 시간",
		},
		{
			name: "out of range token",
			text: "근무 시간 09:00~25:00",
		},
		{
			name: "empty text",
			text: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := work.Extract(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestLabelExtractor_Idempotent(t *testing.T) {
	e := NewLabelExtractor(WorkHoursLabel)
	text := "근무 시간 08:30 17:00"

	first, ok1 := e.Extract(text)
	second, ok2 := e.Extract(text)

	assert.True(t, ok1)
	assert.True(t, ok2)
	assert.Equal(t, first, second)
}

func TestLabelExtractor_LabelIsLiteral(t *testing.T) {
	e := NewLabelExtractor("hours (local)")

	got, ok := e.Extract("hours (local) 10:00 - 19:00")
	require.True(t, ok)
	assert.Equal(t, "10:00~19:00", got.String())

	_, ok = e.Extract("hours local 10:00 - 19:00")
	assert.False(t, ok)
}

func TestWindow_ContainsIsInclusive(t *testing.T) {
	w := Window{Start: TimeOfDay{9, 0}, End: TimeOfDay{18, 0}}

	assert.True(t, w.Contains(TimeOfDay{9, 0}))
	assert.True(t, w.Contains(TimeOfDay{13, 15}))
	assert.True(t, w.Contains(TimeOfDay{18, 0}))
	assert.False(t, w.Contains(TimeOfDay{8, 59}))
	assert.False(t, w.Contains(TimeOfDay{18, 1}))

	inverted := Window{Start: TimeOfDay{18, 0}, End: TimeOfDay{9, 0}}
	assert.False(t, inverted.Contains(TimeOfDay{20, 0}))
	assert.False(t, inverted.Contains(TimeOfDay{12, 0}))
}
