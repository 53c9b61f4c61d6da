package dispatch

import (
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"github.com/pokermania/pokercli/internal/protocol"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestDispatchUnhandled(t *testing.T) {
	mux := Mux{}
	result := Dispatch(testLogger(), mux, &protocol.Serial{Serial: 1})
	assert.Equal(t, Unhandled, result)
}

func TestDispatchHandled(t *testing.T) {
	var got protocol.Packet
	mux := Mux{
		protocol.KindSerial: func(pkt protocol.Packet) error {
			got = pkt
			return nil
		},
	}
	result := Dispatch(testLogger(), mux, &protocol.Serial{Serial: 42})
	assert.Equal(t, Handled, result)
	assert.Equal(t, &protocol.Serial{Serial: 42}, got)
}

// A handler error is contained: logged, reported as Handled, and
// without effect on handlers for other kinds.
func TestDispatchHandlerErrorIsContained(t *testing.T) {
	calls := 0
	mux := Mux{
		protocol.KindSerial: func(protocol.Packet) error {
			return fmt.Errorf("boom")
		},
		protocol.KindStart: func(protocol.Packet) error {
			calls++
			return nil
		},
	}

	result := Dispatch(testLogger(), mux, &protocol.Serial{Serial: 1})
	assert.Equal(t, Handled, result)

	result = Dispatch(testLogger(), mux, &protocol.Start{GameID: 28, HandSerial: 1})
	assert.Equal(t, Handled, result)
	assert.Equal(t, 1, calls)
}
