// Package slideshow advances through images automatically.
package slideshow

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultInterval is used when no positive interval is given.
	DefaultInterval = 3 * time.Second
)

// Player calls an advance function at a fixed interval while playing.
// It is safe for concurrent use. The advance function runs on the player's
// goroutine.
type Player struct {
	mu                 sync.Mutex
	playing            bool
	wasPlayingBeforeOp bool // Tracks if the slideshow was playing before a temporary pause
	interval           time.Duration
	advance            func()
	stop               chan struct{}
	logger             logrus.FieldLogger
}

// NewPlayer creates a stopped Player calling advance every interval.
func NewPlayer(interval time.Duration, advance func(), logger logrus.FieldLogger) *Player {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Player{
		interval: interval,
		advance:  advance,
		logger:   logger,
	}
}

// Play starts the slideshow. The first advance happens one interval later.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.wasPlayingBeforeOp = false
	p.startLocked()
}

// Toggle plays a paused slideshow or pauses a playing one and reports
// whether it is now playing.
func (p *Player) Toggle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.wasPlayingBeforeOp = false // User toggle overrides any operation-specific state
	if p.playing {
		p.stopLocked()
	} else {
		p.startLocked()
	}
	return p.playing
}

// Pause stops the slideshow. If forOperation is true, it remembers whether
// the slideshow was playing so ResumeAfterOperation can restart it.
func (p *Player) Pause(forOperation bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if forOperation {
		p.wasPlayingBeforeOp = p.playing
	}
	p.stopLocked()
}

// ResumeAfterOperation resumes the slideshow only if it was playing before
// Pause(true) was called.
func (p *Player) ResumeAfterOperation() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.wasPlayingBeforeOp {
		p.startLocked()
	}
	p.wasPlayingBeforeOp = false
}

// IsPlaying reports whether the slideshow is running.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Interval returns the time between advances.
func (p *Player) Interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.interval
}

// SetInterval changes the time between advances, restarting a running
// slideshow with the new interval.
func (p *Player) SetInterval(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if interval == p.interval {
		return
	}
	p.interval = interval
	if p.playing {
		p.stopLocked()
		p.startLocked()
	}
}

func (p *Player) startLocked() {
	if p.playing {
		return
	}
	p.playing = true
	p.stop = make(chan struct{})
	go p.run(p.interval, p.stop)
	p.logger.WithField("interval", p.interval).Debug("Slideshow started")
}

func (p *Player) stopLocked() {
	if !p.playing {
		return
	}
	p.playing = false
	close(p.stop)
	p.stop = nil
	p.logger.Debug("Slideshow stopped")
}

func (p *Player) run(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			p.advance()
		}
	}
}
