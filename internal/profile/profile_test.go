package profile

import (
	"testing"

	"subplot/internal/config"
	"subplot/internal/language"
)

func TestFromConfig(t *testing.T) {
	p := FromConfig(config.Profile{
		ID:   2,
		Name: "Main",
		Items: []config.ProfileItem{
			{Language: "en", HearingImpaired: true},
			{Language: "fr", Forced: true, AudioExclude: true},
		},
		Cutoff: &config.ProfileCutoff{Language: "en"},
	})

	if p.ID != 2 || len(p.Items) != 2 {
		t.Fatalf("unexpected profile %+v", p)
	}
	if !p.Items[0].Selector.HearingImpaired || !p.Items[1].Selector.Forced {
		t.Fatalf("variant flags lost: %+v", p.Items)
	}
	if !p.Items[1].AudioExclude {
		t.Fatal("audio rule lost")
	}
	if p.Cutoff == nil || p.Cutoff.Code != "en" {
		t.Fatalf("unexpected cutoff %+v", p.Cutoff)
	}
}

func TestContainsAndItemFor(t *testing.T) {
	p := FromConfig(config.Profile{
		ID:    1,
		Items: []config.ProfileItem{{Language: "en"}, {Language: "fr", Forced: true}},
	})

	if !p.Contains(language.Selector{Code: "fr", Forced: true}) {
		t.Fatal("expected forced french to be contained")
	}
	if p.Contains(language.Selector{Code: "fr"}) {
		t.Fatal("plain french is a different selector")
	}

	item, ok := p.ItemFor(language.Selector{Code: "en"})
	if !ok || item.Code != "en" {
		t.Fatalf("unexpected item %+v ok=%v", item, ok)
	}
	if _, ok := p.ItemFor(language.Selector{Code: "de"}); ok {
		t.Fatal("unexpected match for absent selector")
	}
}
