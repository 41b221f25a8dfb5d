package metrics

import (
	"sync/atomic"
	"time"
)

// BatchMetric summarises a batch of games.
type BatchMetric struct {
	Workers  int
	Games    int
	Wins     int // games won by the learning agent
	Plies    int
	Duration time.Duration
}

// GamesPerSecond is the batch throughput, 0 for an empty batch.
func (m BatchMetric) GamesPerSecond() float64 {
	if m.Duration <= 0 {
		return 0
	}
	return float64(m.Games) / m.Duration.Seconds()
}

// Collector counts finished games. It is safe for concurrent use by the workers of one batch.
type Collector interface {
	Start(workers int)
	AddGame(aiWon bool, plies int)
	Complete() BatchMetric
}

type collector struct {
	workers   int
	startTime time.Time
	games     atomic.Int32
	wins      atomic.Int32
	plies     atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(workers int) {
	m.startTime = time.Now()
	m.workers = workers
}

func (m *collector) AddGame(aiWon bool, plies int) {
	m.games.Add(1)
	if aiWon {
		m.wins.Add(1)
	}
	m.plies.Add(int32(plies))
}

func (m *collector) Complete() BatchMetric {
	return BatchMetric{
		Workers:  m.workers,
		Games:    int(m.games.Load()),
		Wins:     int(m.wins.Load()),
		Plies:    int(m.plies.Load()),
		Duration: time.Since(m.startTime),
	}
}
