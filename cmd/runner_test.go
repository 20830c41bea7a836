package cmd

import (
	"syscall"
	"testing"
	"time"

	"github.com/mikaelmello/rawsock/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitRunner(t *testing.T, r *Runner) error {
	t.Helper()

	ch := make(chan error, 1)
	go func() {
		ch <- r.Wait()
	}()

	select {
	case err := <-ch:
		return err
	case <-time.After(time.Second):
		require.Fail(t, "runner did not stop")
	}
	return nil
}

// TestNewRunner tests if a runner is properly initialized
func TestNewRunner(t *testing.T) {
	session, err := newLoopSession(&loopNative{})
	require.NoError(t, err)

	r := newRunner(session, func(*core.Session, *core.CustomPacket) {}, 0)

	assert.NotNil(t, r.session)
	assert.Empty(t, r.endch)
	assert.Empty(t, r.sigch)
}

// TestRequestStopWaitStops tests if when a runner is stopped, the receive loop has really finished
func TestRequestStopWaitStops(t *testing.T) {
	session, err := newLoopSession(&loopNative{})
	require.NoError(t, err)

	r := newRunner(session, func(*core.Session, *core.CustomPacket) {}, 0)
	r.Start()
	r.RequestStop()

	assert.NoError(t, waitRunner(t, r))
}

// TestSigTermHandling tests if the sigterm signal really stops the run
func TestSigTermHandling(t *testing.T) {
	session, err := newLoopSession(&loopNative{})
	require.NoError(t, err)

	r := newRunner(session, func(*core.Session, *core.CustomPacket) {}, 0)
	r.Start()
	r.sigch <- syscall.SIGTERM

	assert.NoError(t, waitRunner(t, r))
}

// TestRunnerLimit tests if the runner stops by itself once enough packets arrived
func TestRunnerLimit(t *testing.T) {
	native := &loopNative{}
	native.push([]byte{129, 0, 0, 0, 0, 1, 0, 1}, []byte{129, 0, 0, 0, 0, 1, 0, 2}, []byte{129, 0, 0, 0, 0, 1, 0, 3})
	session, err := newLoopSession(native)
	require.NoError(t, err)

	var received []*core.CustomPacket
	r := newRunner(session, func(_ *core.Session, p *core.CustomPacket) {
		received = append(received, p)
	}, 2)
	r.Start()

	require.NoError(t, waitRunner(t, r))
	require.Len(t, received, 2)
	assert.Equal(t, byte(2), received[1].PayloadData()[7])
	assert.Equal(t, uint32(2), session.Stats.GetTotalRecv())
}

// TestRunnerSessionFailure tests if a failing session ends the run with its error
func TestRunnerSessionFailure(t *testing.T) {
	native := &loopNative{failAfter: errSocketGone}
	native.push([]byte{129, 0, 0, 0, 0, 1, 0, 1})
	session, err := newLoopSession(native)
	require.NoError(t, err)

	count := 0
	r := newRunner(session, func(*core.Session, *core.CustomPacket) { count++ }, 0)
	r.Start()

	assert.ErrorIs(t, waitRunner(t, r), errSocketGone)
	assert.Equal(t, 1, count)
}
