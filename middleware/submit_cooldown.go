package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"ctfrange/config"

	"github.com/gin-gonic/gin"
)

// SubmitCooldown applies escalating per-user cooldowns to flag submissions.
// Wrong guesses are cheap to spam, so after AttemptsThreshold1 submissions in
// the tracking window the user waits CooldownDuration1, and after
// AttemptsThreshold2 the longer CooldownDuration2.
type SubmitCooldown struct {
	mu      sync.Mutex
	history map[uint][]time.Time
	cfg     config.RateLimitConfig
}

const cooldownTrackingWindow = 10 * time.Minute

func NewSubmitCooldown(cfg config.RateLimitConfig) *SubmitCooldown {
	return &SubmitCooldown{
		history: make(map[uint][]time.Time),
		cfg:     cfg,
	}
}

// Wait returns the remaining cooldown for a user, or zero when a submission
// is allowed. Allowed submissions are recorded.
func (sc *SubmitCooldown) Wait(userID uint) time.Duration {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	now := time.Now()
	recent := sc.history[userID][:0]
	for _, t := range sc.history[userID] {
		if now.Sub(t) < cooldownTrackingWindow {
			recent = append(recent, t)
		}
	}
	sc.history[userID] = recent

	if wait := sc.waitFor(recent, now); wait > 0 {
		return wait
	}

	sc.history[userID] = append(recent, now)
	return 0
}

func (sc *SubmitCooldown) waitFor(recent []time.Time, now time.Time) time.Duration {
	if len(recent) == 0 {
		return 0
	}
	last := recent[len(recent)-1]
	if len(recent) >= sc.cfg.AttemptsThreshold2 {
		if wait := sc.cfg.CooldownDuration2 - now.Sub(last); wait > 0 {
			return wait
		}
	} else if len(recent) >= sc.cfg.AttemptsThreshold1 {
		if wait := sc.cfg.CooldownDuration1 - now.Sub(last); wait > 0 {
			return wait
		}
	}
	return 0
}

// SubmitCooldownMiddleware rejects flag submissions while the authenticated
// user is cooling down. Must run after AuthMiddleware.
func SubmitCooldownMiddleware(sc *SubmitCooldown) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromRequest(c)
		if err != nil {
			c.Abort()
			return
		}
		if wait := sc.Wait(user.ID); wait > 0 {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": fmt.Sprintf("Too many submissions, retry in %s", wait.Round(time.Second)),
			})
			return
		}
		c.Next()
	}
}
