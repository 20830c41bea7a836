package cmd

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mikaelmello/rawsock/core"
)

// packetHandler is called for every packet the runner receives.
type packetHandler func(*core.Session, *core.CustomPacket)

// Runner is the struct that is responsible for running a receive loop on a session
type Runner struct {
	session  *core.Session
	onPacket packetHandler

	// limit is the amount of packets after which the runner stops, 0 means no limit.
	limit int

	sigch    chan os.Signal
	stopch   chan struct{}
	endch    chan error
	stopOnce sync.Once
}

// newRunner creates a runner with the initialized values. The session receive timeout bounds how
// long a stop request may go unnoticed.
func newRunner(session *core.Session, onPacket packetHandler, limit int) *Runner {
	return &Runner{
		session:  session,
		onPacket: onPacket,
		limit:    limit,
		sigch:    make(chan os.Signal, 1),
		stopch:   make(chan struct{}),
		endch:    make(chan error, 1),
	}
}

// Start starts the runner
func (r *Runner) Start() {
	r.handleSignals()

	go func() {
		err := r.receiveLoop()
		signal.Stop(r.sigch)
		r.RequestStop()
		r.endch <- err
	}()
}

// RequestStop requests the stop of the receive loop
func (r *Runner) RequestStop() {
	r.stopOnce.Do(func() {
		close(r.stopch)
	})
}

// Wait blocks the caller until the runner finishes
func (r *Runner) Wait() error {
	return <-r.endch
}

// receiveLoop receives packets until a stop is requested, the limit is reached or the session fails.
func (r *Runner) receiveLoop() error {
	received := 0
	for {
		select {
		case <-r.stopch:
			return nil
		default:
		}

		p, err := r.session.Receive()
		if err != nil {
			if core.IsTimeout(err) {
				continue
			}
			return err
		}

		r.onPacket(r.session, p)

		received++
		if r.limit > 0 && received >= r.limit {
			return nil
		}
	}
}

// handleSignals registers the runner to stop on interrupt and termination signals
func (r *Runner) handleSignals() {
	signal.Notify(r.sigch, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-r.sigch:
			r.RequestStop()
		case <-r.stopch:
		}
	}()
}
