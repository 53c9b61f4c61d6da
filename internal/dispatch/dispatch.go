// Package dispatch routes packets to per-kind handlers. It is shared by
// the session state machine and the table: each registers its own
// handler set and relies on the same three-way outcome: handled,
// unhandled, or faulted-but-contained.
package dispatch

import (
	"github.com/charmbracelet/log"

	"github.com/pokermania/pokercli/internal/protocol"
)

// Result is the outcome of a dispatch attempt.
type Result int

const (
	// Unhandled means no handler is registered for the packet's kind.
	// This is expected, not an error: not every packet is meaningful
	// to every component in every state.
	Unhandled Result = iota

	// Handled means a handler ran. A handler fault still reports
	// Handled: the fault is logged and contained so that one bad
	// packet cannot take the session down.
	Handled
)

// Handler processes one packet. A returned error is a contained fault,
// not a protocol signal; use Unhandled (absence from the Mux) for
// "not mine".
type Handler func(pkt protocol.Packet) error

// Mux maps packet kinds to handlers.
type Mux map[protocol.Kind]Handler

// Dispatch routes pkt to its handler, if any. Handler errors are logged
// with the packet's kind and encoded form, then swallowed.
func Dispatch(logger *log.Logger, mux Mux, pkt protocol.Packet) Result {
	h, ok := mux[pkt.Kind()]
	if !ok {
		return Unhandled
	}
	if err := h(pkt); err != nil {
		logger.Error("packet handler failed",
			"packet", pkt.Kind().String(),
			"line", protocol.Encode(pkt),
			"error", err)
	}
	return Handled
}
