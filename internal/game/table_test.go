package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/pokermania/pokercli/internal/dispatch"
	"github.com/pokermania/pokercli/internal/protocol"
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

func newTestTable(t *testing.T) (*Table, *fakeSender) {
	t.Helper()
	sender := &fakeSender{}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	info := &protocol.Table{
		ID:               28,
		Seats:            10,
		Name:             "Test Table",
		Variant:          "holdem",
		BettingStructure: "1-2_20-200_limit",
		PlayerSeated:     -1,
	}
	table, err := NewTable(info, NewPlayer(7), sender, logger)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return table, sender
}

// seatOpponent admits a second player at seat 1 with the given chips
// and bet.
func seatOpponent(t *testing.T, table *Table, serial, chips, bet int) {
	t.Helper()
	table.Apply(&protocol.PlayerArrive{GameID: 28, Serial: serial, Name: "villain", Seat: 1, SitOut: false})
	table.Apply(&protocol.PlayerChips{GameID: 28, Serial: serial, Money: chips, Bet: bet})
}

func TestParseBettingStructure(t *testing.T) {
	table, _ := newTestTable(t)
	if table.SmallBlind != 100 || table.BigBlind != 200 {
		t.Errorf("expected blinds 100/200, got %d/%d", table.SmallBlind, table.BigBlind)
	}
	if table.MinBuyIn != 2000 || table.MaxBuyIn != 20000 {
		t.Errorf("expected buy-ins 2000/20000, got %d/%d", table.MinBuyIn, table.MaxBuyIn)
	}
}

func TestParseBettingStructureStakes(t *testing.T) {
	stakes, err := ParseBettingStructure("1-2_10-100_1000-pokermania")
	if err != nil {
		t.Fatalf("ParseBettingStructure: %v", err)
	}
	want := Stakes{SmallBlind: 100, BigBlind: 200, MinBuyIn: 1000, MaxBuyIn: 10000}
	if stakes != want {
		t.Errorf("expected %+v, got %+v", want, stakes)
	}
	if _, err := ParseBettingStructure("holdem"); err == nil {
		t.Error("expected an error for a malformed descriptor")
	}
}

func TestMalformedBettingStructure(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	info := &protocol.Table{ID: 28, Seats: 10, BettingStructure: "holdem", PlayerSeated: -1}
	if _, err := NewTable(info, NewPlayer(7), &fakeSender{}, logger); err == nil {
		t.Error("expected an error for a malformed betting structure")
	}
}

func TestPlayerSeatedBindsAvatar(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	avatar := NewPlayer(7)
	info := &protocol.Table{ID: 28, Seats: 10, BettingStructure: "1-2_20-200_limit", PlayerSeated: 3}
	table, err := NewTable(info, avatar, &fakeSender{}, logger)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	if avatar.Seat != 3 {
		t.Errorf("expected avatar at seat 3, got %d", avatar.Seat)
	}
	if table.Seats[3] != 7 {
		t.Errorf("expected seat 3 to hold serial 7, got %d", table.Seats[3])
	}
}

func TestUpdateSeatsAdmitsAndRemoves(t *testing.T) {
	table, sender := newTestTable(t)

	seats := make([]int, 10)
	seats[1] = 12
	table.Apply(&protocol.Seats{GameID: 28, Seats: seats})

	if table.Seats[1] != 12 {
		t.Errorf("expected seat 1 to hold 12, got %d", table.Seats[1])
	}
	// Unknown players are resolved asynchronously via an info request.
	if len(sender.sent) != 1 || sender.sent[0].Kind() != protocol.KindGetUserInfo {
		t.Errorf("expected one GET_USER_INFO request, got %v", sender.kinds())
	}

	table.Apply(&protocol.Seats{GameID: 28, Seats: make([]int, 10)})
	if table.Seats[1] != 0 {
		t.Errorf("expected seat 1 vacated, got %d", table.Seats[1])
	}
	if _, ok := table.Players[12]; ok {
		t.Error("expected player 12 removed with their seat")
	}
}

func TestUpdateSeatsBindsAvatarDirectly(t *testing.T) {
	table, sender := newTestTable(t)

	seats := make([]int, 10)
	seats[4] = 7
	table.Apply(&protocol.Seats{GameID: 28, Seats: seats})

	if table.Avatar().Seat != 4 {
		t.Errorf("expected avatar seat 4, got %d", table.Avatar().Seat)
	}
	if len(sender.sent) != 0 {
		t.Errorf("expected no info request for the avatar, got %v", sender.kinds())
	}
}

func TestSeatOwnerChangeIsRepaired(t *testing.T) {
	table, _ := newTestTable(t)

	seats := make([]int, 10)
	seats[1] = 12
	table.Apply(&protocol.Seats{GameID: 28, Seats: seats})

	seats[1] = 13
	table.Apply(&protocol.Seats{GameID: 28, Seats: seats})

	if table.Seats[1] != 13 {
		t.Errorf("expected seat 1 to hold 13, got %d", table.Seats[1])
	}
}

func TestArriveAtOccupiedSeatEvicts(t *testing.T) {
	table, _ := newTestTable(t)
	seatOpponent(t, table, 12, 20000, 0)

	table.Apply(&protocol.PlayerArrive{GameID: 28, Serial: 13, Name: "late", Seat: 1, SitOut: false})

	if table.Seats[1] != 13 {
		t.Errorf("expected seat 1 to hold 13, got %d", table.Seats[1])
	}
	if _, ok := table.Players[12]; ok {
		t.Error("expected stale occupant 12 evicted")
	}
	if _, ok := table.Players[13]; !ok {
		t.Error("expected player 13 admitted")
	}
}

func TestCallAmountPreFlopBigBlind(t *testing.T) {
	table, _ := newTestTable(t)
	table.Avatar().UpdateChips(20000, 0)
	seatOpponent(t, table, 12, 20000, 0)

	table.Apply(&protocol.State{GameID: 28, String: "pre-flop"})
	table.Apply(&protocol.InGame{GameID: 28, Players: []int{7, 12}})
	table.Apply(&protocol.Dealer{GameID: 28, Dealer: 1})
	table.Apply(&protocol.Position{GameID: 28, Position: 1, Serial: 12})

	// Nobody has bet; the big blind is still owed pre-flop.
	if got := table.CallAmount(table.Avatar()); got != 200 {
		t.Errorf("expected call amount 200, got %d", got)
	}
}

func TestCallAmountSmallBlindPreFlop(t *testing.T) {
	table, _ := newTestTable(t)
	table.Avatar().UpdateChips(20000, 0)
	seatOpponent(t, table, 12, 20000, 0)

	table.Apply(&protocol.State{GameID: 28, String: "pre-flop"})
	table.Apply(&protocol.InGame{GameID: 28, Players: []int{7, 12}})
	table.Apply(&protocol.Dealer{GameID: 28, Dealer: 1})
	// Acting position is the seat after the dealer: the small blind.
	table.Apply(&protocol.Position{GameID: 28, Position: 0, Serial: 7})

	if got := table.CallAmount(table.Avatar()); got != 0 {
		t.Errorf("expected call amount 0 in the small blind, got %d", got)
	}
}

func TestCallAmountPostFlop(t *testing.T) {
	table, _ := newTestTable(t)
	table.Avatar().UpdateChips(20000, 100)
	seatOpponent(t, table, 12, 19500, 500)

	table.Apply(&protocol.State{GameID: 28, String: "flop"})
	table.Apply(&protocol.InGame{GameID: 28, Players: []int{7, 12}})

	if got := table.CallAmount(table.Avatar()); got != 400 {
		t.Errorf("expected call amount 400, got %d", got)
	}
}

func TestCallAmountClampedToChips(t *testing.T) {
	table, _ := newTestTable(t)
	table.Avatar().UpdateChips(50, 0)
	seatOpponent(t, table, 12, 19500, 500)

	table.Apply(&protocol.State{GameID: 28, String: "flop"})
	table.Apply(&protocol.InGame{GameID: 28, Players: []int{7, 12}})

	if got := table.CallAmount(table.Avatar()); got != 50 {
		t.Errorf("expected call amount clamped to 50, got %d", got)
	}
}

func TestCallAmountNeverNegative(t *testing.T) {
	table, _ := newTestTable(t)
	table.Avatar().UpdateChips(20000, 500)
	seatOpponent(t, table, 12, 19800, 200)

	table.Apply(&protocol.State{GameID: 28, String: "flop"})
	table.Apply(&protocol.InGame{GameID: 28, Players: []int{7, 12}})

	if got := table.CallAmount(table.Avatar()); got != 0 {
		t.Errorf("expected call amount 0, got %d", got)
	}
}

func TestFoldedBetsAreIgnored(t *testing.T) {
	table, _ := newTestTable(t)
	table.Avatar().UpdateChips(20000, 100)
	seatOpponent(t, table, 12, 19500, 500)

	table.Apply(&protocol.InGame{GameID: 28, Players: []int{7, 12}})
	table.Apply(&protocol.Fold{GameID: 28, Serial: 12})

	if got := table.HighestBetNotFold(); got != 100 {
		t.Errorf("expected highest live bet 100, got %d", got)
	}
}

func TestHighestBetNotFoldBetweenHands(t *testing.T) {
	table, _ := newTestTable(t)

	// No hand running, in-game list empty.
	if got := table.HighestBetNotFold(); got != 0 {
		t.Errorf("expected highest bet 0 with no hand running, got %d", got)
	}

	seatOpponent(t, table, 12, 20000, 0)
	table.Apply(&protocol.InGame{GameID: 28, Players: []int{7, 12}})
	if got := table.HighestBetNotFold(); got != 0 {
		t.Errorf("expected highest bet 0 before any betting, got %d", got)
	}
}

func TestCallPacketAppliesInferredAmount(t *testing.T) {
	table, _ := newTestTable(t)
	table.Avatar().UpdateChips(20000, 100)
	seatOpponent(t, table, 12, 19500, 500)

	table.Apply(&protocol.State{GameID: 28, String: "flop"})
	table.Apply(&protocol.InGame{GameID: 28, Players: []int{7, 12}})
	table.Apply(&protocol.Call{GameID: 28, Serial: 7})

	if table.Avatar().CurrentBet() != 500 {
		t.Errorf("expected avatar bet 500 after calling, got %d", table.Avatar().CurrentBet())
	}
	if table.Avatar().Chips() != 19600 {
		t.Errorf("expected avatar chips 19600 after calling, got %d", table.Avatar().Chips())
	}
}

func TestStartResetsHandState(t *testing.T) {
	table, _ := newTestTable(t)
	table.Avatar().UpdateChips(20000, 0)
	seatOpponent(t, table, 12, 19500, 500)

	table.Apply(&protocol.BoardCards{GameID: 28, Cards: []int{10, 23, 40}})
	table.Apply(&protocol.Fold{GameID: 28, Serial: 12})
	table.Apply(&protocol.Start{GameID: 28, HandSerial: 99})

	if table.Board != nil {
		t.Errorf("expected board cleared, got %v", table.Board)
	}
	if table.HandSerial != 99 {
		t.Errorf("expected hand serial 99, got %d", table.HandSerial)
	}
	if table.Players[12].Folded {
		t.Error("expected fold flags cleared on hand start")
	}
	if table.Players[12].CurrentBet() != 0 {
		t.Errorf("expected bets cleared, got %d", table.Players[12].CurrentBet())
	}
}

func TestWrongGameIDIsRejected(t *testing.T) {
	table, _ := newTestTable(t)

	result := table.Apply(&protocol.InGame{GameID: 99, Players: []int{7}})

	// The handler claims the packet but refuses the mutation.
	if result != dispatch.Handled {
		t.Errorf("expected Handled, got %v", result)
	}
	if table.InGame != nil {
		t.Errorf("expected in-game list untouched, got %v", table.InGame)
	}
}

func TestAvatarCardsAreAnnounced(t *testing.T) {
	table, _ := newTestTable(t)
	var notes []string
	table.Notify = func(text string) { notes = append(notes, text) }

	table.Apply(&protocol.PlayerCards{GameID: 28, Serial: 7, Cards: []int{0, 51 | 128}})

	if len(notes) != 1 || notes[0] != "You got 2h As" {
		t.Errorf("expected card announcement, got %v", notes)
	}
}

func TestDoBuyIn(t *testing.T) {
	table, sender := newTestTable(t)
	table.DoBuyIn()

	if len(sender.sent) != 2 {
		t.Fatalf("expected 2 packets, got %v", sender.kinds())
	}
	buyIn, ok := sender.sent[0].(*protocol.BuyIn)
	if !ok || buyIn.Amount != table.MaxBuyIn {
		t.Errorf("expected a max buy-in request, got %v", sender.sent[0])
	}
	if sender.sent[1].Kind() != protocol.KindAutoBlindAnte {
		t.Errorf("expected auto blind-ante request, got %v", sender.sent[1].Kind())
	}
}

func TestDoAllIn(t *testing.T) {
	table, sender := newTestTable(t)
	table.Avatar().UpdateChips(4200, 0)
	table.DoAllIn()

	raise, ok := sender.sent[len(sender.sent)-1].(*protocol.Raise)
	if !ok || raise.Amount != 4200 {
		t.Errorf("expected a raise of 4200, got %v", sender.sent)
	}
}
