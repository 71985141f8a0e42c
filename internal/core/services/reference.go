package services

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

// maxReferenceAttempts bounds retries when a generated number is already taken.
const maxReferenceAttempts = 5

// ReferenceGenerator produces account numbers and transaction reference numbers.
// Transaction references are millisecond timestamps, bumped so that one process
// never issues the same value twice.
type ReferenceGenerator struct {
	mu    sync.Mutex
	now   func() time.Time
	intn  func(n int) int
	lastT int64
}

// NewReferenceGenerator creates a generator. nil arguments select the wall clock
// and math/rand/v2.
func NewReferenceGenerator(now func() time.Time, intn func(n int) int) *ReferenceGenerator {
	if now == nil {
		now = time.Now
	}
	if intn == nil {
		intn = rand.IntN
	}
	return &ReferenceGenerator{now: now, intn: intn}
}

// TransactionReference returns "TXN-<unix millis>".
func (g *ReferenceGenerator) TransactionReference() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	ms := g.now().UnixMilli()
	if ms <= g.lastT {
		ms = g.lastT + 1
	}
	g.lastT = ms
	return fmt.Sprintf("TXN-%d", ms)
}

// AccountNumber returns "ACC-<last 6 digits of unix millis>-<3 random digits>".
func (g *ReferenceGenerator) AccountNumber() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fmt.Sprintf("ACC-%06d-%03d", g.now().UnixMilli()%1_000_000, g.intn(1000))
}
