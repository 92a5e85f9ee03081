package search

import (
	"reflect"
	"strings"
	"testing"
)

func TestFlattenMarkdown_Lines(t *testing.T) {
	in := "# 공약\n\n첫째 줄\n  둘째 줄  \n\n\nText\n"
	want := []string{"# 공약", "첫째 줄", "둘째 줄"}
	if got := FlattenMarkdown(in); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v want %#v", got, want)
	}
}

func TestFlattenMarkdown_Tables(t *testing.T) {
	in := strings.Join([]string{
		"| 분야 | 목표 |",
		"|:---|---:|",
		"| 농업 | 스마트팜 100곳 |",
		"|  | 단독 셀 |",
		"| | |",
		"| text |",
	}, "\n")
	want := []string{"분야 목표", "농업 스마트팜 100곳", "단독 셀"}
	if got := FlattenMarkdown(in); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v want %#v", got, want)
	}
}

func TestFlattenMarkdown_Empty(t *testing.T) {
	if got := FlattenMarkdown(" \n\n "); len(got) != 0 {
		t.Fatalf("expected no facts, got %#v", got)
	}
}

func TestFlattenMarkdown_OverlongLineFallsBack(t *testing.T) {
	long := strings.Repeat("가", 2*1024*1024) // > 4 MiB in UTF-8
	got := FlattenMarkdown(long)
	if len(got) != 1 || got[0] != long {
		t.Fatalf("expected whole text as one fact, got %d facts", len(got))
	}
}
