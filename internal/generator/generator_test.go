package generator

import (
	"context"
	"strings"
	"testing"
)

func TestTitles_Deterministic(t *testing.T) {
	gen := NewTemplateGenerator()
	ctx := context.Background()

	first, err := gen.Titles(ctx, "passive income", "en", "curiosity", 5)
	if err != nil {
		t.Fatalf("Titles() error = %v", err)
	}
	second, _ := gen.Titles(ctx, "passive income", "en", "curiosity", 5)

	if len(first) != 5 {
		t.Fatalf("Titles() returned %d titles, want 5", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Titles() not deterministic at %d: %q != %q", i, first[i], second[i])
		}
	}
}

func TestTitles_KeywordAppears(t *testing.T) {
	gen := NewTemplateGenerator()

	titles, err := gen.Titles(context.Background(), "home workout", "en", "", 0)
	if err != nil {
		t.Fatalf("Titles() error = %v", err)
	}
	if len(titles) == 0 {
		t.Fatal("Titles() returned no titles with default count")
	}
	for _, title := range titles {
		if !strings.Contains(title, "Home Workout") {
			t.Errorf("title %q does not mention the keyword", title)
		}
	}
}

func TestTitles_EmotionHook(t *testing.T) {
	gen := NewTemplateGenerator()

	titles, err := gen.Titles(context.Background(), "investing", "en", "urgency", 4)
	if err != nil {
		t.Fatalf("Titles() error = %v", err)
	}

	hooked := 0
	for _, title := range titles {
		if strings.HasPrefix(title, "Before It's Too Late:") {
			hooked++
		}
	}
	if hooked == 0 {
		t.Error("urgency emotion produced no hooked titles")
	}
}

func TestTitles_Validation(t *testing.T) {
	gen := NewTemplateGenerator()

	if _, err := gen.Titles(context.Background(), "  ", "en", "", 5); err == nil {
		t.Error("Titles() with blank keyword should fail")
	}

	titles, err := gen.Titles(context.Background(), "x", "en", "", 500)
	if err != nil {
		t.Fatalf("Titles() error = %v", err)
	}
	if len(titles) > maxTitleCount {
		t.Errorf("Titles() returned %d titles, want at most %d", len(titles), maxTitleCount)
	}
}

func TestScript(t *testing.T) {
	gen := NewTemplateGenerator()

	script, err := gen.Script(context.Background(), "urban gardening", "en", "casual", 10)
	if err != nil {
		t.Fatalf("Script() error = %v", err)
	}

	for _, section := range []string{"HOOK:", "INTRO:", "MAIN POINTS:", "CALL TO ACTION:"} {
		if !strings.Contains(script, section) {
			t.Errorf("script missing section %q", section)
		}
	}
	if !strings.Contains(script, "urban gardening") {
		t.Error("script does not mention the keyword")
	}
	if !strings.Contains(script, "10 minutes") {
		t.Error("script does not mention the requested duration")
	}
}

func TestScript_BlankKeyword(t *testing.T) {
	gen := NewTemplateGenerator()
	if _, err := gen.Script(context.Background(), "", "en", "", 5); err == nil {
		t.Error("Script() with blank keyword should fail")
	}
}
