package config

import "time"

// Rate limit configuration for flag submissions
type RateLimitConfig struct {
	AttemptsThreshold1 int           // Number of submissions before first cooldown
	CooldownDuration1  time.Duration // First cooldown duration
	AttemptsThreshold2 int           // Number of submissions before second cooldown
	CooldownDuration2  time.Duration // Second cooldown duration
}

var DefaultFlagRateLimitConfig = RateLimitConfig{
	AttemptsThreshold1: 5,
	CooldownDuration1:  1 * time.Minute,
	AttemptsThreshold2: 10,
	CooldownDuration2:  5 * time.Minute,
}
