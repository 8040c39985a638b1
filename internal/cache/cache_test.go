package cache

import (
	"strings"
	"testing"

	"github.com/creatorlens/youtube-analytics-go/internal/models"
)

func int64Ptr(v int64) *int64 { return &v }

func TestKey_Deterministic(t *testing.T) {
	params := models.SearchParams{Keyword: "cooking", Language: "en", MinViews: int64Ptr(1000)}

	if Key(params) != Key(params) {
		t.Error("Key() is not deterministic")
	}
}

func TestKey_DistinguishesParams(t *testing.T) {
	a := models.SearchParams{Keyword: "cooking"}
	b := models.SearchParams{Keyword: "baking"}

	if Key(a) == Key(b) {
		t.Error("different keywords produced the same key")
	}

	// nil bound vs zero bound are different searches
	c := models.SearchParams{Keyword: "cooking", MinViews: int64Ptr(0)}
	if Key(a) == Key(c) {
		t.Error("nil and zero bounds produced the same key")
	}
}

func TestKey_Prefix(t *testing.T) {
	if !strings.HasPrefix(Key(models.SearchParams{Keyword: "x"}), keyPrefix) {
		t.Errorf("key missing %q prefix", keyPrefix)
	}
}
