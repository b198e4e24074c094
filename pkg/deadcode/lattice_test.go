package deadcode

import (
	"testing"

	"github.com/raymyers/ralph-cc/pkg/deadcode/fieldset"
)

func TestJoinIdentities(t *testing.T) {
	l := Live(fieldset.Of(1, 2))
	if !Dead.Join(l).Equal(l) {
		t.Error("Dead ⊔ a should be a")
	}
	if !l.Join(Dead).Equal(l) {
		t.Error("a ⊔ Dead should be a")
	}
	if !l.Join(Top).Equal(Top) {
		t.Error("a ⊔ Top should be Top")
	}
}

func TestJoinLiveUnionsFields(t *testing.T) {
	a := Live(fieldset.Of(0, 1))
	b := Live(fieldset.Of(1, 2))
	got := a.Join(b)
	if !got.IsLive() {
		t.Fatalf("expected Live, got %v", got)
	}
	for _, f := range []int{0, 1, 2} {
		if !got.Fields().Contains(f) {
			t.Errorf("joined fields missing %d", f)
		}
	}
}

func TestLessEqOrdering(t *testing.T) {
	a := Live(fieldset.Of(0))
	b := Live(fieldset.Of(0, 1))
	if !Dead.LessEq(a) {
		t.Error("Dead <= Live(S)")
	}
	if !a.LessEq(b) {
		t.Error("Live(S1) <= Live(S2) when S1 ⊆ S2")
	}
	if b.LessEq(a) {
		t.Error("Live(S2) should not be <= Live(S1) when S2 ⊄ S1")
	}
	if !b.LessEq(Top) {
		t.Error("Live(S) <= Top")
	}
}

func TestLiveOfEmptySetPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic constructing Live(∅)")
		}
	}()
	Live(fieldset.Set{})
}
