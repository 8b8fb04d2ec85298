package availability

import (
	"fmt"
	"time"
)

// Decision is the availability verdict for one query.
// It is computed once and handed to narration as a value.
type Decision struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason"`
}

// Messages holds the reason texts for one locale. The format strings take a
// window rendered as "HH:MM~HH:MM".
type Messages struct {
	NoWorkHours     string
	OutsideWorkFmt  string
	LunchBreakFmt   string
	Available       string
	UnknownLocalNow string
}

// KoreanMessages are the reason texts used with the Korean labels.
var KoreanMessages = Messages{
	NoWorkHours:     "근무 시간 규정을 확인할 수 없습니다.",
	OutsideWorkFmt:  "근무 시간(%s)이 아닙니다.",
	LunchBreakFmt:   "점심시간(%s)입니다.",
	Available:       "근무 시간 내이며 점심시간이 아닙니다.",
	UnknownLocalNow: "현재 현지 시각을 확인할 수 없어 판단할 수 없습니다.",
}

// Engine derives a Decision from rule text and a local time.
// The extractors are swappable so other locales or formats can be plugged in.
type Engine struct {
	Work     WindowExtractor
	Lunch    WindowExtractor
	Messages Messages
}

// NewKoreanEngine returns an engine for the "근무 시간" / "점심시간" rule format.
func NewKoreanEngine() *Engine {
	return &Engine{
		Work:     NewLabelExtractor(WorkHoursLabel),
		Lunch:    NewLabelExtractor(LunchHoursLabel),
		Messages: KoreanMessages,
	}
}

// Decide returns the availability for localTime under the rules in contextText.
// Only the time-of-day of localTime is used.
func (e *Engine) Decide(contextText string, localTime time.Time) Decision {
	now := ClockOf(localTime)

	work, ok := e.Work.Extract(contextText)
	if !ok {
		return Decision{Available: false, Reason: e.Messages.NoWorkHours}
	}
	if !work.Contains(now) {
		return Decision{Available: false, Reason: fmt.Sprintf(e.Messages.OutsideWorkFmt, work)}
	}

	if e.Lunch != nil {
		if lunch, ok := e.Lunch.Extract(contextText); ok && lunch.Contains(now) {
			return Decision{Available: false, Reason: fmt.Sprintf(e.Messages.LunchBreakFmt, lunch)}
		}
	}

	return Decision{Available: true, Reason: e.Messages.Available}
}

// Undetermined is the decision used when the office's local time is unknown.
func (e *Engine) Undetermined() Decision {
	return Decision{Available: false, Reason: e.Messages.UnknownLocalNow}
}
