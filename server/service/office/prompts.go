package office

import (
	"fmt"
	"strings"

	"github.com/hrygo/officehours/plugin/ai/aitime"
	"github.com/hrygo/officehours/plugin/ai/availability"
)

// systemPrompt fixes the narrator's role and the four-sentence answer shape.
const systemPrompt = `너는 글로벌 지사의 근무 규정을 설명하는 AI 비서다.

중요 규칙:
- 통화 가능 여부는 이미 결정되어 있다.
- 너는 절대 판단을 바꾸거나 새로 해석하지 않는다.
- 주어진 Decision과 Time 정보를 그대로 설명만 한다.

답변 형식 규칙:
1. 첫 문장은 반드시 "네, 가능합니다." 또는 "아니요, 지금은 곤란할 수 있습니다."로 시작한다.
2. 두 번째 문장에서 현재 지역명(타임존 포함)과 현재 시각을 말한다.
3. 세 번째 문장에서 근무 규정 또는 점심시간 등 이유를 명확히 설명한다.
4. 마지막 문장에서 대안 시간이나 권장 행동을 제시한다.
5. 줄바꿈 없이 한 문단으로 작성한다.`

// buildUserPrompt renders the facts the narrator must restate.
func buildUserPrompt(req *NarrationRequest) string {
	var sb strings.Builder

	sb.WriteString("Decision:\n")
	fmt.Fprintf(&sb, "- Contact Available: %t\n", req.Decision.Available)
	fmt.Fprintf(&sb, "- Reason: %s\n\n", req.Decision.Reason)

	sb.WriteString("Office Rule Summary:\n")
	sb.WriteString(req.Context)
	sb.WriteString("\n\n")

	sb.WriteString(timeSection(req.TimeInfo))
	sb.WriteString("\n")

	sb.WriteString("사용자 질문:\n")
	sb.WriteString(req.Query)
	sb.WriteString("\n\n")

	sb.WriteString("위 정보를 바탕으로 규칙에 맞는 한국어 답변을 생성하세요.")
	return sb.String()
}

func timeSection(info *aitime.TimeInfo) string {
	if info == nil {
		return "Current Time Information:\n- Current local time: Unknown\n"
	}
	return fmt.Sprintf("Current Time Information:\n- Region: %s\n- Timezone: %s\n- Datetime: %s\n",
		info.Region, info.Timezone, info.Datetime)
}

// NarrationRequest is everything the narrator is allowed to talk about.
type NarrationRequest struct {
	Query    string
	Context  string
	TimeInfo *aitime.TimeInfo
	Decision availability.Decision
}
