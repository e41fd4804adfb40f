package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/aribt/hackathon-cms/frontend/internal/notify"
)

type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// Throttle is a token bucket per client IP. Idle buckets are dropped on the
// next call after they have refilled completely.
type Throttle struct {
	rate     float64 // tokens per second
	capacity float64
	now      func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

func NewThrottle(perMinute, burst int) *Throttle {
	return &Throttle{
		rate:     float64(perMinute) / 60,
		capacity: float64(burst),
		now:      time.Now,
		buckets:  make(map[string]*bucket),
	}
}

func (t *Throttle) Allow(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.sweep(now)

	b, ok := t.buckets[key]
	if !ok {
		b = &bucket{tokens: t.capacity, lastRefill: now}
		t.buckets[key] = b
	}
	b.tokens = min(t.capacity, b.tokens+now.Sub(b.lastRefill).Seconds()*t.rate)
	b.lastRefill = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (t *Throttle) sweep(now time.Time) {
	full := time.Duration(t.capacity / t.rate * float64(time.Second))
	for key, b := range t.buckets {
		if now.Sub(b.lastRefill) > full {
			delete(t.buckets, key)
		}
	}
}

// Limit throttles form posts by client IP and sends the rejected ones back
// to where they came from with a notice.
func (t *Throttle) Limit(n notify.Notifier, back string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || t.Allow(clientIP(r)) {
				next.ServeHTTP(w, r)
				return
			}
			n.Error("Too many attempts, try again in a minute.")
			http.Redirect(w, r, back, http.StatusSeeOther)
		})
	}
}

// clientIP uses RemoteAddr only; forwarding headers are not trusted.
func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
