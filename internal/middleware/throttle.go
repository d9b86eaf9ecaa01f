package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// requestRecord tracks the number of requests and the window start time
type requestRecord struct {
	count       int
	windowStart time.Time
	mu          sync.Mutex
}

// throttleStore stores rate limit data per client IP
type throttleStore struct {
	records map[string]*requestRecord
	mu      sync.RWMutex
}

func newThrottleStore() *throttleStore {
	store := &throttleStore{
		records: make(map[string]*requestRecord),
	}
	// Cleanup goroutine keeps the map from growing with dead clients
	go store.startCleanup()
	return store
}

func (ts *throttleStore) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		ts.cleanupOldRecords()
	}
}

func (ts *throttleStore) cleanupOldRecords() {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	oneHourAgo := time.Now().Add(-1 * time.Hour)
	for ip, record := range ts.records {
		record.mu.Lock()
		if record.windowStart.Before(oneHourAgo) {
			delete(ts.records, ip)
		}
		record.mu.Unlock()
	}
}

func (ts *throttleStore) getOrCreateRecord(ip string) *requestRecord {
	ts.mu.RLock()
	record, ok := ts.records[ip]
	ts.mu.RUnlock()
	if ok {
		return record
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	if record, ok = ts.records[ip]; ok {
		return record
	}
	record = &requestRecord{windowStart: time.Now()}
	ts.records[ip] = record
	return record
}

// allow applies a fixed window of one minute
func (ts *throttleStore) allow(ip string, limit int) (bool, int) {
	record := ts.getOrCreateRecord(ip)

	record.mu.Lock()
	defer record.mu.Unlock()

	now := time.Now()
	if now.Sub(record.windowStart) >= time.Minute {
		record.windowStart = now
		record.count = 0
	}

	if record.count >= limit {
		return false, 0
	}
	record.count++
	return true, limit - record.count
}

// ThrottleMiddleware limits each client IP to requestsPerMinute requests.
// The routes are unauthenticated, so the client IP is the only available
// throttling key.
func ThrottleMiddleware(requestsPerMinute int) func(http.Handler) http.Handler {
	store := newThrottleStore()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, remaining := store.allow(getClientIP(r), requestsPerMinute)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(requestsPerMinute))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if !allowed {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":[{"type":"Server","message":"Too many requests"}]}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header (for proxies)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}
