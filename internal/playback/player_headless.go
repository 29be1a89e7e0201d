//go:build headless

package playback

import (
	"io"
	"time"
)

// Player is unavailable in headless builds.
type Player struct{}

// NewPlayer always fails with ErrUnavailable.
func NewPlayer(sampleRate, channels int, bufferSize time.Duration) (*Player, error) {
	return nil, ErrUnavailable
}

func (p *Player) Setup(r io.Reader) {}
func (p *Player) Start()            {}
func (p *Player) Stop()             {}
func (p *Player) Close() error      { return nil }
func (p *Player) IsStarted() bool   { return false }
