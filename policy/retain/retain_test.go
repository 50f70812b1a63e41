package retain

import (
	"testing"
	"time"

	"github.com/IvanBrykalov/lockspace/policy"
)

func TestRetain_NeverRemoves(t *testing.T) {
	t.Parallel()

	p := New()
	if got := p.OnRelease(policy.Info{}); got != policy.Keep {
		t.Fatalf("OnRelease: got %v, want Keep", got)
	}
	if got := p.OnPrune(policy.Info{Idle: 24 * time.Hour}); got != policy.Keep {
		t.Fatalf("OnPrune: got %v, want Keep", got)
	}
}
