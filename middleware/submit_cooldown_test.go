package middleware

import (
	"testing"
	"time"

	"ctfrange/config"
)

func TestSubmitCooldownBelowThreshold(t *testing.T) {
	sc := NewSubmitCooldown(config.RateLimitConfig{
		AttemptsThreshold1: 5,
		CooldownDuration1:  time.Minute,
		AttemptsThreshold2: 10,
		CooldownDuration2:  5 * time.Minute,
	})

	for i := 0; i < 5; i++ {
		if wait := sc.Wait(1); wait != 0 {
			t.Fatalf("submission %d should be allowed, got wait %s", i+1, wait)
		}
	}
}

func TestSubmitCooldownKicksInAtThreshold(t *testing.T) {
	sc := NewSubmitCooldown(config.RateLimitConfig{
		AttemptsThreshold1: 3,
		CooldownDuration1:  time.Minute,
		AttemptsThreshold2: 10,
		CooldownDuration2:  5 * time.Minute,
	})

	for i := 0; i < 3; i++ {
		if wait := sc.Wait(1); wait != 0 {
			t.Fatalf("submission %d should be allowed, got wait %s", i+1, wait)
		}
	}
	if wait := sc.Wait(1); wait <= 0 {
		t.Fatalf("expected a cooldown after the threshold, got %s", wait)
	}
}

func TestSubmitCooldownIsPerUser(t *testing.T) {
	sc := NewSubmitCooldown(config.RateLimitConfig{
		AttemptsThreshold1: 1,
		CooldownDuration1:  time.Minute,
		AttemptsThreshold2: 10,
		CooldownDuration2:  5 * time.Minute,
	})

	if wait := sc.Wait(1); wait != 0 {
		t.Fatalf("first submission should be allowed, got wait %s", wait)
	}
	if wait := sc.Wait(1); wait <= 0 {
		t.Fatalf("expected user 1 cooling down, got %s", wait)
	}
	if wait := sc.Wait(2); wait != 0 {
		t.Fatalf("user 2 must not inherit user 1's cooldown, got %s", wait)
	}
}
