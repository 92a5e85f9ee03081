package services

import (
	"strings"
	"testing"

	"github.com/mhd0331/JinanCampaign/internal/domain"
	"github.com/mhd0331/JinanCampaign/internal/trainingctx"
)

func doc(cat domain.TrainingCategory, content string) domain.AiTrainingDoc {
	return domain.AiTrainingDoc{Category: cat, Content: content, IsActive: true}
}

func TestBuildSystemPrompt_Sections(t *testing.T) {
	b := trainingctx.Bundle{
		Policies:  []domain.AiTrainingDoc{doc(domain.CategoryPolicy, "정책 A"), doc(domain.CategoryPolicy, "정책 B")},
		Biography: []domain.AiTrainingDoc{doc(domain.CategoryBiography, "경력")},
		Speeches:  []domain.AiTrainingDoc{doc(domain.CategorySpeech, "연설")},
		FAQs:      []domain.AiTrainingDoc{doc(domain.CategoryFAQ, "질문")},
	}
	p := BuildSystemPrompt(b, "")

	for _, want := range []string{
		"당신은 진안군수 후보 이우규의 AI 어시스턴트입니다.",
		"정확한 정보는 " + DefaultContactChannel + "로 문의해주세요",
		"**핵심 공약 및 정책:**\n1. 정책 A\n2. 정책 B\n",
		"**후보자 경력 및 배경:**\n경력\n",
		"**주요 연설 및 발언:**\n연설\n",
		"**자주 묻는 질문:**\n질문\n",
		`"confidence"`,
	} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt missing %q:\n%s", want, p)
		}
	}
	if strings.Index(p, "**핵심 공약 및 정책:**") > strings.Index(p, "**자주 묻는 질문:**") {
		t.Fatalf("sections out of order")
	}
}

func TestBuildSystemPrompt_EmptyBundleOmitsSections(t *testing.T) {
	p := BuildSystemPrompt(trainingctx.Bundle{}, "사무소")
	if strings.Contains(p, "**후보자 경력 및 배경:**") || strings.Contains(p, "**핵심 공약 및 정책:**") {
		t.Fatalf("empty bundle must not render sections")
	}
	if !strings.Contains(p, "정확한 정보는 사무소로 문의해주세요") {
		t.Fatalf("contact not used")
	}
}

func TestBuildSystemPrompt_Truncation(t *testing.T) {
	long := strings.Repeat("가", 1000)
	b := trainingctx.Bundle{
		Policies:  []domain.AiTrainingDoc{doc(domain.CategoryPolicy, long)},
		Biography: []domain.AiTrainingDoc{doc(domain.CategoryBiography, long)},
		Speeches:  []domain.AiTrainingDoc{doc(domain.CategorySpeech, long)},
		FAQs:      []domain.AiTrainingDoc{doc(domain.CategoryFAQ, long)},
	}
	p := BuildSystemPrompt(b, "")

	for _, n := range []int{500, 300, 200} {
		if !strings.Contains(p, strings.Repeat("가", n)+"...") {
			t.Fatalf("missing %d-rune clipped item", n)
		}
	}
	if strings.Contains(p, strings.Repeat("가", 501)) {
		t.Fatalf("item longer than 500 runes leaked into prompt")
	}
}

func TestBuildSystemPrompt_Deterministic(t *testing.T) {
	b := trainingctx.Bundle{Policies: []domain.AiTrainingDoc{doc(domain.CategoryPolicy, "x")}}
	if BuildSystemPrompt(b, "c") != BuildSystemPrompt(b, "c") {
		t.Fatalf("prompt must be deterministic")
	}
}

func TestClipRunes(t *testing.T) {
	if got := clipRunes("  짧은 글  ", 10); got != "짧은 글" {
		t.Fatalf("got %q", got)
	}
	if got := clipRunes("가나다라", 2); got != "가나..." {
		t.Fatalf("got %q", got)
	}
}
