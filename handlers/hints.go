package handlers

import (
	"math/rand"
	"sync"
	"time"
)

// Hints surfaces occasional usage tips in intent responses, with a
// per-session cooldown so they don't get noisy.
type Hints struct {
	cooldowns   map[string]time.Time // session id -> last hint time
	cooldownMu  sync.RWMutex
	cooldownDur time.Duration
	hintChance  float32
	hints       []string
}

func NewHints() *Hints {
	return &Hints{
		cooldowns:   make(map[string]time.Time),
		cooldownDur: 5 * time.Minute,
		hintChance:  0.15,
		hints: []string{
			"Tip: the search box matches anywhere in the artist name, not just the start",
			"Tip: pick \"All\" in the genre filter to clear it",
			"Tip: the year filter keeps artists with at least one album from that year",
			"Tip: filters combine, so search, genre and year all apply at once",
			"Tip: \"back\" always returns to the previous screen",
			"Tip: selecting a song opens it in your configured viewer",
		},
	}
}

// ShouldShowHint rolls the dice for a hint, honoring the session cooldown.
func (h *Hints) ShouldShowHint(sessionID string) (string, bool) {
	if rand.Float32() > h.hintChance {
		return "", false
	}

	h.cooldownMu.RLock()
	lastHint, hasCooldown := h.cooldowns[sessionID]
	h.cooldownMu.RUnlock()

	if hasCooldown && time.Since(lastHint) < h.cooldownDur {
		return "", false
	}

	h.cooldownMu.Lock()
	h.cooldowns[sessionID] = time.Now()
	h.cooldownMu.Unlock()

	return h.hints[rand.Intn(len(h.hints))], true
}
