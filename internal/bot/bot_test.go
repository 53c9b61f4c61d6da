package bot

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokermania/pokercli/internal/protocol"
	"github.com/pokermania/pokercli/internal/session"
)

type fakeSender struct {
	sent []protocol.Packet
}

func (f *fakeSender) Send(pkt protocol.Packet) {
	f.sent = append(f.sent, pkt)
}

func (f *fakeSender) kinds() []protocol.Kind {
	kinds := make([]protocol.Kind, len(f.sent))
	for i, p := range f.sent {
		kinds[i] = p.Kind()
	}
	return kinds
}

func newTestBot() (*Bot, *fakeSender) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	sender := &fakeSender{}
	b := New(logger, 1)
	s := session.New(sender, b, logger)
	s.SetCredentials("bot", "pass")
	b.Bind(s)
	return b, sender
}

func TestStartLogsIn(t *testing.T) {
	b, sender := newTestBot()
	b.Start()

	require.Len(t, sender.sent, 1)
	assert.Equal(t, protocol.KindLogin, sender.sent[0].Kind())
}

func TestJoinsFirstTableWithFreeSeat(t *testing.T) {
	b, sender := newTestBot()

	b.TableAdvertised(&protocol.Table{ID: 1, Seats: 10, Players: 10})
	assert.Empty(t, sender.sent, "a full table must not be joined")

	b.TableAdvertised(&protocol.Table{ID: 2, Seats: 10, Players: 3})
	require.Len(t, sender.sent, 1)
	join := sender.sent[0].(*protocol.TableJoin)
	assert.Equal(t, 2, join.GameID)

	// Only one table is ever joined.
	b.TableAdvertised(&protocol.Table{ID: 3, Seats: 10, Players: 0})
	assert.Len(t, sender.sent, 1)
}

func TestSeatsAndBuysInOnJoin(t *testing.T) {
	b, sender := newTestBot()
	b.session.OnPacket(&protocol.AuthOk{})
	b.session.OnPacket(&protocol.Serial{Serial: 7})
	sender.sent = nil

	b.session.OnPacket(&protocol.Table{
		ID: 28, Seats: 10, BettingStructure: "1-2_20-200_limit", PlayerSeated: -1,
	})

	// StateChanged(Join) fires inside the packet handler; the bot
	// reacts by requesting a seat and the buy-in.
	kinds := sender.kinds()
	assert.Contains(t, kinds, protocol.KindSeat)
	assert.Contains(t, kinds, protocol.KindBuyIn)
	assert.Contains(t, kinds, protocol.KindAutoBlindAnte)
	assert.Contains(t, kinds, protocol.KindSit)
}

func TestRebuysWhenShort(t *testing.T) {
	b, sender := newTestBot()
	b.session.OnPacket(&protocol.AuthOk{})
	b.session.OnPacket(&protocol.Serial{Serial: 7})
	b.session.OnPacket(&protocol.UserInfo{Serial: 7, Currencies: []int{1}, Amounts: []int{100000}})
	b.session.OnPacket(&protocol.Table{
		ID: 28, Seats: 10, BettingStructure: "1-2_20-200_limit", PlayerSeated: -1,
	})
	sender.sent = nil

	// Plenty of chips: no action at the hand boundary.
	b.session.Avatar().UpdateChips(5000, 0)
	b.HandEnded()
	assert.Empty(t, sender.sent)

	// Broke but bankrolled: buy back in.
	b.session.Avatar().UpdateChips(0, 0)
	b.HandEnded()
	assert.Contains(t, sender.kinds(), protocol.KindBuyIn)
}

func TestLeavesWhenBroke(t *testing.T) {
	b, sender := newTestBot()
	b.session.OnPacket(&protocol.AuthOk{})
	b.session.OnPacket(&protocol.Serial{Serial: 7})
	b.session.OnPacket(&protocol.Table{
		ID: 28, Seats: 10, BettingStructure: "1-2_20-200_limit", PlayerSeated: -1,
	})
	sender.sent = nil

	b.session.Avatar().UpdateChips(0, 0)
	b.HandEnded()

	kinds := sender.kinds()
	assert.Contains(t, kinds, protocol.KindFold)
	assert.Contains(t, kinds, protocol.KindTableQuit)
}

func TestTurnAlwaysActs(t *testing.T) {
	b, sender := newTestBot()
	b.session.OnPacket(&protocol.AuthOk{})
	b.session.OnPacket(&protocol.Serial{Serial: 7})
	b.session.OnPacket(&protocol.Table{
		ID: 28, Seats: 10, BettingStructure: "1-2_20-200_limit", PlayerSeated: -1,
	})
	b.session.Avatar().UpdateChips(20000, 0)
	b.session.OnPacket(&protocol.Start{GameID: 28, HandSerial: 1})
	b.session.OnPacket(&protocol.InGame{GameID: 28, Players: []int{7}})

	for i := 0; i < 50; i++ {
		before := len(sender.sent)
		b.YourTurn("")
		require.Len(t, sender.sent, before+1, "every turn must produce exactly one action")
		kind := sender.sent[before].Kind()
		assert.Contains(t, []protocol.Kind{protocol.KindRaise, protocol.KindFold, protocol.KindCall}, kind)
	}
}
