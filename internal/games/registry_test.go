package games

import "testing"

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(newKeno(t))
	r.Register(newBlackjack(t))
	r.Register(newScratch(t))

	if _, ok := r.Get("keno"); !ok {
		t.Error("expected keno to be registered")
	}
	if _, ok := r.Get("poker"); ok {
		t.Error("unexpected game poker")
	}

	specs := r.List()
	want := []string{"blackjack", "keno", "scratch"}
	if len(specs) != len(want) {
		t.Fatalf("expected %d specs, got %d", len(want), len(specs))
	}
	for i, id := range want {
		if specs[i].ID != id {
			t.Errorf("spec %d: expected %s, got %s", i, id, specs[i].ID)
		}
	}
}

func TestRegistryReplace(t *testing.T) {
	r := NewRegistry()
	r.Register(newKeno(t))
	r.Register(newKeno(t))
	if got := len(r.List()); got != 1 {
		t.Errorf("re-registering the same ID must replace, got %d entries", got)
	}
}

func TestRoundResultPush(t *testing.T) {
	if !(RoundResult{Classification: "push"}).Push() {
		t.Error("push classification must report Push")
	}
	if (RoundResult{Classification: "win"}).Push() {
		t.Error("win classification must not report Push")
	}
}
