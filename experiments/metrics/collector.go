package metrics

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchEpisodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "othello_search_episodes",
		Help:    "Episodes simulated per tree search.",
		Buckets: prometheus.ExponentialBuckets(16, 4, 8),
	})
	searchSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "othello_search_duration_seconds",
		Help:    "Wall time spent per tree search.",
		Buckets: prometheus.DefBuckets,
	})
	treeResets = promauto.NewCounter(prometheus.CounterOpts{
		Name: "othello_search_tree_resets_total",
		Help: "Searches that could not reuse the previous tree.",
	})
)

// SearchMetric summarises a single call to the tree search.

type SearchMetric struct {
	Goroutines   int
	Duration     time.Duration
	Episodes     int
	Cutoff       int
	FullPlayouts int
	IsTreeReset  bool
}

// MoveMetric is one row of the per-move log written by experiments.
type MoveMetric struct {
	Step   int
	Player string // Side to move
	Move   string
	Reward int
	SearchMetric
}

type GameMetric struct {
	StartingPlayer string
	Winner         string // "Black", "White", "Tie" or "" when the turn limit was hit
	Black          int    // Final disc counts
	White          int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	Passes         int
}

// Collector is fed by concurrent search workers. Complete also reports
// the finished search to Prometheus.
type Collector interface {
	Start(goroutines, cutoff int)
	SetTreeReset(value bool)
	AddFullPlayout()
	AddEpisode()
	Complete() SearchMetric
}

type collector struct {
	goroutines   int
	cutoff       int
	startTime    time.Time
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
	isTreeReset  atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) SetTreeReset(value bool) {
	m.isTreeReset.Store(value)
}

// Start resets the counters for a new search.
func (m *collector) Start(goroutines, cutoff int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.cutoff = cutoff
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) Complete() SearchMetric {
	metric := SearchMetric{
		Goroutines:   m.goroutines,
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		Cutoff:       m.cutoff,
		IsTreeReset:  m.isTreeReset.Load(),
	}
	searchEpisodes.Observe(float64(metric.Episodes))
	searchSeconds.Observe(metric.Duration.Seconds())
	if metric.IsTreeReset {
		treeResets.Inc()
	}
	return metric
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, cutoff int) {}
func (m *dummyCollector) SetTreeReset(value bool)      {}
func (m *dummyCollector) AddFullPlayout()              {}
func (m *dummyCollector) AddEpisode()                  {}
func (m *dummyCollector) Complete() SearchMetric       { return SearchMetric{} }
