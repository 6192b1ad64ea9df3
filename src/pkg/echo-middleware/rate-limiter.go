package echomw

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// Per-IP request limiter. Report generation is expensive (two chart renders
// plus a PDF build), so the dashboard throttles clients that hammer it.
var (
	clients     = make(map[string]*clientLimiter)
	mu          sync.Mutex
	rateLimit   int // Number of requests per second
	burst       int // Burst size (how many requests are allowed instantly)
	cleanupOnce sync.Once
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func UptdateRateLimits(rateLimitInput, burstInput int) {
	mu.Lock()
	defer mu.Unlock()
	rateLimit = rateLimitInput
	burst = burstInput
}

// getLimiter returns the rate limiter for the given IP address.
func getLimiter(ip string) *rate.Limiter {
	cleanupOnce.Do(func() {
		go cleanupLoop()
	})

	mu.Lock()
	defer mu.Unlock()

	entry, exists := clients[ip]
	if !exists {
		entry = &clientLimiter{
			limiter: rate.NewLimiter(rate.Limit(rateLimit), burst),
		}
		clients[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

// cleanupLoop drops limiters for clients not seen for a few minutes.
func cleanupLoop() {
	for {
		time.Sleep(time.Minute)

		mu.Lock()
		for ip, entry := range clients {
			if time.Since(entry.lastSeen) > 3*time.Minute {
				delete(clients, ip)
			}
		}
		mu.Unlock()
	}
}

// Custom rate limiting middleware based on client IP address
func RateLimiterMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ip := c.RealIP() // Get the client's IP address
		limiter := getLimiter(ip)

		// Check if the request is allowed by the rate limiter
		if !limiter.Allow() {
			return c.String(http.StatusTooManyRequests, "Too many requests")
		}
		return next(c)
	}
}
