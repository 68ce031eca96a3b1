// Package feed generates the synthetic transaction stream that drives the
// console's real-time panels. The generator stands in for true ingestion;
// it emits randomized events on a fixed cadence and fans them out to sinks
// (metrics aggregator, alert ingest).
package feed

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// RecentWindow is how many transactions the feed panel keeps.
const RecentWindow = 15

// DefaultInterval is the emission cadence.
const DefaultInterval = 2 * time.Second

// FlagThreshold is the risk score above which an event is flagged.
const FlagThreshold = 85

var (
	txTypes    = []string{"DEPOSIT", "WITHDRAWAL", "TRADE", "TRANSFER"}
	currencies = []string{"USD", "BTC", "ETH", "EUR"}
)

// Rand is the generator's randomness source. Tests inject deterministic
// sequences.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

type sysRand struct{}

func (sysRand) Float64() float64 { return rand.Float64() }
func (sysRand) IntN(n int) int   { return rand.IntN(n) }

// SystemRand returns a Rand backed by math/rand/v2.
func SystemRand() Rand { return sysRand{} }

// Transaction is one synthetic feed event.
type Transaction struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	RiskScore int       `json:"riskScore"`
	Flagged   bool      `json:"isFlagged"`
	Timestamp time.Time `json:"timestamp"`
}

// Sink receives each emitted transaction.
type Sink func(tx Transaction)

// Generator produces the stream and keeps a bounded ring of recent events.
type Generator struct {
	mu     sync.Mutex
	rnd    Rand
	recent []Transaction
	sinks  []Sink
}

// New creates a generator with the given randomness source.
func New(rnd Rand) *Generator {
	return &Generator{rnd: rnd}
}

// OnEvent registers a sink. Register before Run; sinks are not removable.
func (g *Generator) OnEvent(s Sink) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sinks = append(g.sinks, s)
}

// Emit generates one transaction, records it, and notifies all sinks.
func (g *Generator) Emit() Transaction {
	g.mu.Lock()
	tx := Transaction{
		ID:        ulid.Make().String(),
		Type:      txTypes[g.rnd.IntN(len(txTypes))],
		Amount:    g.rnd.Float64() * 5000,
		Currency:  currencies[g.rnd.IntN(len(currencies))],
		RiskScore: g.rnd.IntN(101),
		Timestamp: time.Now(),
	}
	tx.Flagged = tx.RiskScore > FlagThreshold

	g.recent = append([]Transaction{tx}, g.recent...)
	if len(g.recent) > RecentWindow {
		g.recent = g.recent[:RecentWindow]
	}
	sinks := g.sinks
	g.mu.Unlock()

	for _, s := range sinks {
		s(tx)
	}
	return tx
}

// Run emits on the interval until the context is canceled.
func (g *Generator) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			g.Emit()
		}
	}
}

// Recent returns the newest-first window of recent transactions.
func (g *Generator) Recent() []Transaction {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Transaction, len(g.recent))
	copy(out, g.recent)
	return out
}
