// Package stats maintains the console's real-time aggregate metrics: a
// fixed-bucket risk-score histogram and a bounded throughput series. Both
// are lossy visualization aids, not audit counts; event updates add noise
// and a periodic tick applies ambient jitter.
package stats

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ThroughputWindow is the fixed length of the throughput series.
const ThroughputWindow = 7

// DefaultTickInterval is the cadence of the ambient jitter tick.
const DefaultTickInterval = 5 * time.Second

// Rand is the source of randomness for the aggregator. Tests inject
// deterministic sequences.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

type sysRand struct{}

func (sysRand) Float64() float64 { return rand.Float64() }
func (sysRand) IntN(n int) int   { return rand.IntN(n) }

// SystemRand returns a Rand backed by math/rand/v2.
func SystemRand() Rand { return sysRand{} }

// Bucket is one histogram bar: an inclusive [Min,Max] score range, a live
// count, and the display color the overview panel uses.
type Bucket struct {
	Label string `json:"bucket"`
	Min   int    `json:"-"`
	Max   int    `json:"-"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

func seedBuckets() []Bucket {
	return []Bucket{
		{Label: "0-20", Min: 0, Max: 20, Count: 124, Color: "#3b82f6"},
		{Label: "21-40", Min: 21, Max: 40, Count: 86, Color: "#6366f1"},
		{Label: "41-60", Min: 41, Max: 60, Count: 42, Color: "#8b5cf6"},
		{Label: "61-80", Min: 61, Max: 80, Count: 28, Color: "#f59e0b"},
		{Label: "81-100", Min: 81, Max: 100, Count: 12, Color: "#ef4444"},
	}
}

// Aggregator owns the metrics state. It is the sole writer; all access is
// serialized under its mutex so the event source and the jitter tick can
// run on separate goroutines.
type Aggregator struct {
	mu         sync.Mutex
	buckets    []Bucket
	throughput []float64
	rnd        Rand

	bucketGauge     *prometheus.GaugeVec
	throughputGauge prometheus.Gauge
}

// New seeds the aggregator and, when reg is non-nil, mirrors its state to
// prometheus gauges on the shared registry.
func New(rnd Rand, reg prometheus.Registerer) *Aggregator {
	a := &Aggregator{
		buckets: seedBuckets(),
		rnd:     rnd,
	}
	a.throughput = make([]float64, ThroughputWindow)
	for i := range a.throughput {
		a.throughput[i] = 400 + rnd.Float64()*600
	}

	if reg != nil {
		a.bucketGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sentinel_risk_distribution",
			Help: "Live risk-score histogram bucket counts.",
		}, []string{"bucket"})
		a.throughputGauge = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sentinel_throughput_current",
			Help: "Most recent throughput series value.",
		})
		reg.MustRegister(a.bucketGauge, a.throughputGauge)
		a.publishLocked()
	}
	return a
}

// OnTransaction folds one simulated transaction event into the state:
// the throughput series takes a bounded random-walk step, the matching
// histogram bucket increments, and every other bucket decays by one with
// probability 0.3, floored at zero.
func (a *Aggregator) OnTransaction(riskScore int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	last := a.throughput[len(a.throughput)-1]
	next := last + (a.rnd.Float64()*100 - 50)
	if next < 200 {
		next = 200
	}
	if next > 1500 {
		next = 1500
	}
	a.throughput = append(a.throughput[1:], next)

	for i := range a.buckets {
		b := &a.buckets[i]
		if riskScore >= b.Min && riskScore <= b.Max {
			b.Count++
			continue
		}
		if a.rnd.Float64() > 0.7 && b.Count > 0 {
			b.Count--
		}
	}
	a.publishLocked()
}

// Jitter perturbs every bucket by a uniform step in {-1,0,+1}, floored at
// zero. Applied on the periodic tick independent of real events.
func (a *Aggregator) Jitter() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.buckets {
		a.buckets[i].Count += a.rnd.IntN(3) - 1
		if a.buckets[i].Count < 0 {
			a.buckets[i].Count = 0
		}
	}
	a.publishLocked()
}

// Run drives the jitter tick until the context is canceled.
func (a *Aggregator) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			a.Jitter()
		}
	}
}

// Snapshot returns copies of the histogram and throughput series.
func (a *Aggregator) Snapshot() ([]Bucket, []float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	buckets := make([]Bucket, len(a.buckets))
	copy(buckets, a.buckets)
	series := make([]float64, len(a.throughput))
	copy(series, a.throughput)
	return buckets, series
}

func (a *Aggregator) publishLocked() {
	if a.bucketGauge == nil {
		return
	}
	for _, b := range a.buckets {
		a.bucketGauge.WithLabelValues(b.Label).Set(float64(b.Count))
	}
	a.throughputGauge.Set(a.throughput[len(a.throughput)-1])
}
