package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mhd0331/JinanCampaign/internal/domain"
	"github.com/mhd0331/JinanCampaign/internal/trainingctx"
)

// DefaultContactChannel is where the assistant sends users when it is unsure.
const DefaultContactChannel = "선거사무소(010-7366-8789)"

// Per-item rune caps for each prompt section. They keep the prompt bounded as
// the training corpus grows.
const (
	policyRunes    = 500
	biographyRunes = 300
	speechRunes    = 200
	faqRunes       = 300
)

const personaPreamble = `당신은 진안군수 후보 이우규의 AI 어시스턴트입니다.
다음 정보를 바탕으로 정확하고 도움이 되는 답변을 한국어로 제공해주세요.

이우규 후보에 대한 정보:
- 진안군수 후보자
- 국민주권정부와 기본사회위원회 구축을 통한 새로운 지방정치 모델 추진
- 6대 핵심 공약을 중심으로 한 진안군 발전 계획 수립

6대 핵심 공약:
1. 주민참여행정 - 기본사회위원회 운영, 찾아가는 찐반장/찐여사 프로그램
2. 삶의 질 향상 - 마을별 생활 활력센터 구축, 장애인 복지 향상
3. 지속가능한 경제성장 - 지역화폐 발행(1인당 50만원), 신재생에너지 발전
4. 행정 혁신 - 수요응답형 행복콜 서비스, 버스 공영화
5. 인프라 개선 - 전력 및 초고속 광통신망 유치
6. 인구 유입 - 귀농 청년층 스마트팜 단지, 인구유입 정책 예산 증액

면별 특화 공약도 있습니다: 진안읍, 동향면, 마령면, 백운면, 부귀면, 상전면, 성수면, 안천면, 용담면, 정천면, 주천면
`

const answerFormat = `
다음 JSON 형식으로만 답변해주세요:
{
  "response": "답변 내용",
  "confidence": 0.0-1.0 사이의 신뢰도 점수
}
`

// BuildSystemPrompt renders the system instruction for one chat turn. The
// output depends only on the bundle and contact, so equal inputs always give
// the same prompt.
func BuildSystemPrompt(b trainingctx.Bundle, contact string) string {
	if strings.TrimSpace(contact) == "" {
		contact = DefaultContactChannel
	}

	var sb strings.Builder
	sb.WriteString(personaPreamble)
	sb.WriteString("\n답변 시 주의사항:\n")
	sb.WriteString("1. 항상 정중하고 친근한 톤으로 답변하세요\n")
	sb.WriteString("2. 구체적인 정책이나 공약에 대해서는 아래 정보를 참고하세요\n")
	fmt.Fprintf(&sb, "3. 확실하지 않은 정보는 \"정확한 정보는 %s로 문의해주세요\"라고 안내하세요\n", contact)
	sb.WriteString("4. 정치적으로 중립적이고 건설적인 답변을 제공하세요\n")

	if len(b.Policies) > 0 {
		sb.WriteString("\n**핵심 공약 및 정책:**\n")
		for i, d := range b.Policies {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, clipRunes(d.Content, policyRunes))
		}
	}
	writeSection(&sb, "**후보자 경력 및 배경:**", b.Biography, biographyRunes)
	writeSection(&sb, "**주요 연설 및 발언:**", b.Speeches, speechRunes)
	writeSection(&sb, "**자주 묻는 질문:**", b.FAQs, faqRunes)

	sb.WriteString(answerFormat)
	return sb.String()
}

func writeSection(sb *strings.Builder, heading string, docs []domain.AiTrainingDoc, limit int) {
	if len(docs) == 0 {
		return
	}
	sb.WriteString("\n" + heading + "\n")
	for _, d := range docs {
		sb.WriteString(clipRunes(d.Content, limit))
		sb.WriteByte('\n')
	}
}

// clipRunes cuts s to n runes and marks the cut with "...".
func clipRunes(s string, n int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
