package auto

import (
	"testing"

	"github.com/IvanBrykalov/lockspace/policy"
)

func TestAuto_AlwaysRemoves(t *testing.T) {
	t.Parallel()

	p := New()
	if got := p.OnRelease(policy.Info{}); got != policy.Remove {
		t.Fatalf("OnRelease: got %v, want Remove", got)
	}
	if got := p.OnPrune(policy.Info{}); got != policy.Remove {
		t.Fatalf("OnPrune: got %v, want Remove", got)
	}
}
