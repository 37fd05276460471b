package providers

import (
	"errors"
	"testing"

	"github.com/petal-labs/pigment/core"
)

func TestSelectExplicitPreference(t *testing.T) {
	gem := &stubProvider{id: "gemini", available: true}
	or := &stubProvider{id: "openrouter", available: true}
	sel := NewSelector(gem, or)

	p, err := sel.Select(core.PreferOpenRouter)
	if err != nil {
		t.Fatal(err)
	}
	if p.ID() != "openrouter" {
		t.Errorf("Select(openrouter) = %s, want openrouter", p.ID())
	}
}

func TestSelectExplicitIgnoresOtherAvailability(t *testing.T) {
	// Explicit preference wins even when the other backend is unavailable.
	gem := &stubProvider{id: "gemini", available: false}
	or := &stubProvider{id: "openrouter", available: true}
	sel := NewSelector(gem, or)

	p, err := sel.Select(core.PreferOpenRouter)
	if err != nil {
		t.Fatal(err)
	}
	if p.ID() != "openrouter" {
		t.Errorf("Select(openrouter) = %s, want openrouter", p.ID())
	}
}

func TestSelectExplicitUnavailable(t *testing.T) {
	gem := &stubProvider{id: "gemini", available: false}
	or := &stubProvider{id: "openrouter", available: true}
	sel := NewSelector(gem, or)

	_, err := sel.Select(core.PreferGemini)
	if !errors.Is(err, core.ErrNoProvider) {
		t.Errorf("Select(gemini) err = %v, want ErrNoProvider", err)
	}
}

func TestSelectAutoPriorityOrder(t *testing.T) {
	gem := &stubProvider{id: "gemini", available: true}
	or := &stubProvider{id: "openrouter", available: true}
	sel := NewSelector(gem, or)

	// Both configured: gemini wins under auto.
	p, err := sel.Select(core.PreferAuto)
	if err != nil {
		t.Fatal(err)
	}
	if p.ID() != "gemini" {
		t.Errorf("Select(auto) = %s, want gemini", p.ID())
	}

	// Empty preference behaves like auto.
	p, err = sel.Select("")
	if err != nil {
		t.Fatal(err)
	}
	if p.ID() != "gemini" {
		t.Errorf("Select(\"\") = %s, want gemini", p.ID())
	}
}

func TestSelectAutoFallsBack(t *testing.T) {
	gem := &stubProvider{id: "gemini", available: false}
	or := &stubProvider{id: "openrouter", available: true}
	sel := NewSelector(gem, or)

	p, err := sel.Select(core.PreferAuto)
	if err != nil {
		t.Fatal(err)
	}
	if p.ID() != "openrouter" {
		t.Errorf("Select(auto) = %s, want openrouter", p.ID())
	}
}

func TestSelectNoneAvailable(t *testing.T) {
	sel := NewSelector(
		&stubProvider{id: "gemini", available: false},
		&stubProvider{id: "openrouter", available: false},
	)

	_, err := sel.Select(core.PreferAuto)
	if !errors.Is(err, core.ErrNoProvider) {
		t.Errorf("Select(auto) err = %v, want ErrNoProvider", err)
	}
}

func TestSelectUnknownPreference(t *testing.T) {
	sel := NewSelector(&stubProvider{id: "gemini", available: true})

	_, err := sel.Select("dall-e")
	if !errors.Is(err, core.ErrNoProvider) {
		t.Errorf("Select(dall-e) err = %v, want ErrNoProvider", err)
	}
}

func TestAllPreservesOrder(t *testing.T) {
	gem := &stubProvider{id: "gemini"}
	or := &stubProvider{id: "openrouter"}
	sel := NewSelector(gem, or)

	all := sel.All()
	if len(all) != 2 || all[0].ID() != "gemini" || all[1].ID() != "openrouter" {
		t.Errorf("All() order wrong: %v", all)
	}
}
