package idle

import (
	"testing"
	"time"

	"github.com/IvanBrykalov/lockspace/policy"
)

func TestIdle_GracePeriod(t *testing.T) {
	t.Parallel()

	p := New(time.Minute)

	// Release never removes; the grace period starts there.
	if got := p.OnRelease(policy.Info{}); got != policy.Keep {
		t.Fatalf("OnRelease: got %v, want Keep", got)
	}

	cases := []struct {
		idle time.Duration
		want policy.Outcome
	}{
		{0, policy.Keep},
		{59 * time.Second, policy.Keep},
		{time.Minute, policy.Remove},
		{time.Hour, policy.Remove},
	}
	for _, c := range cases {
		if got := p.OnPrune(policy.Info{Idle: c.idle}); got != c.want {
			t.Fatalf("OnPrune(idle=%v): got %v, want %v", c.idle, got, c.want)
		}
	}
}

func TestIdle_NegativeGrace(t *testing.T) {
	t.Parallel()

	p := New(-time.Second)
	if got := p.OnPrune(policy.Info{}); got != policy.Remove {
		t.Fatalf("negative grace must degrade to remove-on-prune, got %v", got)
	}
}
