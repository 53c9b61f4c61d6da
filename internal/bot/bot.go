// Package bot implements a self-driving session notifier: it joins the
// first advertised table with a free seat, buys in, and plays a fixed
// random policy. It exists to populate tables and to exercise the whole
// packet path without a human at the keyboard.
package bot

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/pokermania/pokercli/internal/protocol"
	"github.com/pokermania/pokercli/internal/session"
)

// rebuyThreshold is the chip count below which the bot tops up after a
// hand, in cents.
const rebuyThreshold = 10

// Bot drives a session through its Notifier signals.
type Bot struct {
	session *session.Session
	logger  *log.Logger
	rng     *rand.Rand
	joined  bool
}

// New creates a bot. The session is attached with Bind after
// construction: the session wants the bot as its notifier, so the two
// reference each other.
func New(logger *log.Logger, seed int64) *Bot {
	return &Bot{
		logger: logger.WithPrefix("bot"),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Bind attaches the session the bot issues commands to.
func (b *Bot) Bind(s *session.Session) { b.session = s }

// Start sends the login command; the rest of the bot's behavior is
// reactive.
func (b *Bot) Start() {
	b.session.ExecuteCmd("login")
}

// Line logs transcript lines at debug level.
func (b *Bot) Line(text string) {
	b.logger.Debug(text)
}

// TableAdvertised joins the first table that has a free seat.
func (b *Bot) TableAdvertised(info *protocol.Table) {
	if b.joined {
		return
	}
	if info.Seats-info.Players <= 0 {
		return
	}
	b.joined = true
	b.session.ExecuteCmd(fmt.Sprintf("join %d", info.ID))
}

// StateChanged grabs a seat and buys in once the table is joined.
func (b *Bot) StateChanged(state session.State) {
	if state == session.Join {
		b.session.ExecuteCmd("seat")
		b.session.ExecuteCmd("bi")
	}
}

// HandEnded tops the stack up when it runs low, or leaves when the
// bankroll is empty too.
func (b *Bot) HandEnded() {
	avatar := b.session.Avatar()
	if avatar.Chips() >= rebuyThreshold {
		return
	}
	if avatar.Money() > 0 {
		b.session.ExecuteCmd("bi")
	} else {
		b.session.ExecuteCmd("le")
	}
}

// YourTurn plays the fixed policy: raise 30% of the time, fold 10%,
// call the rest.
func (b *Bot) YourTurn(info string) {
	b.logger.Info("acting", "hand", info)
	switch r := b.rng.Float64(); {
	case r < 0.3:
		b.session.ExecuteCmd("raise 1000")
	case r < 0.4:
		b.session.ExecuteCmd("fold")
	default:
		b.session.ExecuteCmd("call")
	}
}
