package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters for HTTP traffic and the
// restaurant domain: reservations booked and cancelled, menu cache
// hits and misses.
type Metrics struct {
	mu           sync.Mutex
	requestCount map[string]int64
	errorCount   map[string]int64

	reservationsBooked    int64
	reservationsCancelled int64
	menuCacheHits         int64
	menuCacheMisses       int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordReservationBooked counts a confirmed booking.
func (m *Metrics) RecordReservationBooked() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reservationsBooked++
}

// RecordReservationCancelled counts a cancellation.
func (m *Metrics) RecordReservationCancelled() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reservationsCancelled++
}

// RecordMenuCacheHit counts a menu listing served from cache.
func (m *Metrics) RecordMenuCacheHit() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.menuCacheHits++
}

// RecordMenuCacheMiss counts a menu listing that went to the database.
func (m *Metrics) RecordMenuCacheMiss() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.menuCacheMisses++
}

// ReservationCounts returns booked and cancelled totals.
func (m *Metrics) ReservationCounts() (booked, cancelled int64) {
	if m == nil {
		return 0, 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reservationsBooked, m.reservationsCancelled
}

// MenuCacheCounts returns cache hit and miss totals.
func (m *Metrics) MenuCacheCounts() (hits, misses int64) {
	if m == nil {
		return 0, 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.menuCacheHits, m.menuCacheMisses
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
