package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/pokermania/pokercli/internal/dispatch"
	"github.com/pokermania/pokercli/internal/protocol"
)

// Sender hands outbound packets to the transport, fire and forget.
// Send failures are the transport's to log; the table never blocks on
// them.
type Sender interface {
	Send(pkt protocol.Packet)
}

// Table is the local replica of one game session: seats, board, blind
// and buy-in structure, hand phase, acting position and the player
// collection. It is a read-mostly mirror of server-announced facts;
// the only client-side arithmetic is the call-amount inference.
type Table struct {
	ID               int
	Name             string
	BettingStructure string

	// blind and buy-in amounts in cents
	SmallBlind int
	BigBlind   int
	MinBuyIn   int
	MaxBuyIn   int

	// Seats holds one slot per chair: 0 when empty, else the occupying
	// player's serial. Players is kept consistent with it.
	Seats   []int
	Players map[int]*Player

	// InGame is the server's ordered list of serials still active in
	// the hand; Position indexes into it.
	InGame   []int
	Position int
	Dealer   int

	Board      []int
	HandSerial int

	phase  Phase
	avatar *Player
	sender Sender
	logger *log.Logger
	mux    dispatch.Mux

	// Notify surfaces human-readable lines (dealt cards, warnings) to
	// the caller's display. Optional.
	Notify func(text string)
}

// NewTable builds the table replica from a join confirmation. The
// betting-structure descriptor is "small-big_minBuy-maxBuy_limitKind"
// with values in big units; they are stored as cents.
func NewTable(info *protocol.Table, avatar *Player, sender Sender, logger *log.Logger) (*Table, error) {
	t := &Table{
		ID:               info.ID,
		Name:             info.Name,
		BettingStructure: info.BettingStructure,
		Seats:            make([]int, info.Seats),
		Players:          map[int]*Player{avatar.Serial: avatar},
		Position:         -1,
		Dealer:           -1,
		phase:            PhaseNull,
		avatar:           avatar,
		sender:           sender,
		logger:           logger.WithPrefix("table").With("game_id", info.ID),
	}
	stakes, err := ParseBettingStructure(info.BettingStructure)
	if err != nil {
		return nil, err
	}
	t.SmallBlind = stakes.SmallBlind
	t.BigBlind = stakes.BigBlind
	t.MinBuyIn = stakes.MinBuyIn
	t.MaxBuyIn = stakes.MaxBuyIn
	if seat := info.PlayerSeated; seat >= 0 && seat < len(t.Seats) {
		t.Seats[seat] = avatar.Serial
		avatar.Seat = seat
	}
	t.mux = t.buildMux()
	t.Reset()
	return t, nil
}

// Stakes are the blinds and buy-in bounds parsed from a table's
// betting structure descriptor, in cents.
type Stakes struct {
	SmallBlind int
	BigBlind   int
	MinBuyIn   int
	MaxBuyIn   int
}

// ParseBettingStructure parses a "blinds_buyins_name" descriptor such
// as "1-2_10-100_limit". Descriptor amounts are whole units; the
// returned Stakes are in cents.
func ParseBettingStructure(s string) (Stakes, error) {
	parts := strings.Split(s, "_")
	if len(parts) != 3 {
		return Stakes{}, fmt.Errorf("malformed betting structure %q", s)
	}
	var st Stakes
	var err error
	if st.SmallBlind, st.BigBlind, err = splitAmounts(parts[0]); err != nil {
		return Stakes{}, fmt.Errorf("betting structure %q: %w", s, err)
	}
	if st.MinBuyIn, st.MaxBuyIn, err = splitAmounts(parts[1]); err != nil {
		return Stakes{}, fmt.Errorf("betting structure %q: %w", s, err)
	}
	return st, nil
}

// splitAmounts parses "low-high" into cents.
func splitAmounts(s string) (int, int, error) {
	lowStr, highStr, found := strings.Cut(s, "-")
	if !found {
		return 0, 0, fmt.Errorf("expected low-high, got %q", s)
	}
	low, err := strconv.Atoi(lowStr)
	if err != nil {
		return 0, 0, err
	}
	high, err := strconv.Atoi(highStr)
	if err != nil {
		return 0, 0, err
	}
	return low * 100, high * 100, nil
}

func (t *Table) buildMux() dispatch.Mux {
	return dispatch.Mux{
		protocol.KindBuyInLimits:  t.handleBuyInLimits,
		protocol.KindSeats:        t.handleSeats,
		protocol.KindPlayerInfo:   t.handlePlayerUpdate,
		protocol.KindPlayerArrive: t.handlePlayerUpdate,
		protocol.KindPlayerLeave:  t.handlePlayerLeave,
		protocol.KindPlayerChips:  t.handlePlayerChips,
		protocol.KindPlayerCards:  t.handlePlayerCards,
		protocol.KindBoardCards:   t.handleBoardCards,
		protocol.KindSit:          t.handleSit,
		protocol.KindSitOut:       t.handleSitOut,
		protocol.KindRebuy:        t.handleRebuy,
		protocol.KindInGame:       t.handleInGame,
		protocol.KindPosition:     t.handlePosition,
		protocol.KindStart:        t.handleStart,
		protocol.KindDealer:       t.handleDealer,
		protocol.KindFold:         t.handleFold,
		protocol.KindRaise:        t.handleRaise,
		protocol.KindBlind:        t.handleBlind,
		protocol.KindCall:         t.handleCall,
		protocol.KindState:        t.handleState,
	}
}

// Apply routes a table-scoped packet to its handler. Packets with no
// handler are a silent no-op for the table.
func (t *Table) Apply(pkt protocol.Packet) dispatch.Result {
	return dispatch.Dispatch(t.logger, t.mux, pkt)
}

// Phase returns the current hand phase.
func (t *Table) Phase() Phase { return t.phase }

// Avatar returns the local player.
func (t *Table) Avatar() *Player { return t.avatar }

// Reset clears the board, the acting position and every player's
// per-hand state. Seating and ledgers survive; this runs at the start
// of every hand.
func (t *Table) Reset() {
	t.Board = nil
	t.Position = -1
	for _, p := range t.Players {
		p.ResetHand()
	}
}

func (t *Table) notify(text string) {
	if t.Notify != nil {
		t.Notify(text)
	}
}

func (t *Table) checkGame(gameID int) error {
	if gameID != t.ID {
		return fmt.Errorf("packet for game %d, joined to %d", gameID, t.ID)
	}
	return nil
}

// want asserts the concrete packet type behind a dispatch entry.
func want[T protocol.Packet](pkt protocol.Packet) (T, error) {
	p, ok := pkt.(T)
	if !ok {
		return p, fmt.Errorf("unexpected packet type %T", pkt)
	}
	return p, nil
}

func (t *Table) handleBuyInLimits(pkt protocol.Packet) error {
	p, err := want[*protocol.BuyInLimits](pkt)
	if err != nil {
		return err
	}
	t.MinBuyIn = p.Min
	t.MaxBuyIn = p.Max
	return nil
}

// handleSeats diffs a full seat snapshot against the current seats,
// admitting and removing players slot by slot.
func (t *Table) handleSeats(pkt protocol.Packet) error {
	p, err := want[*protocol.Seats](pkt)
	if err != nil {
		return err
	}
	return t.UpdateSeats(p.Seats)
}

// UpdateSeats applies a seat-array snapshot. An occupied slot changing
// owner without an intervening vacancy is not a normal sequence and is
// logged before being repaired.
func (t *Table) UpdateSeats(seats []int) error {
	n := len(t.Seats)
	if len(seats) < n {
		n = len(seats)
	}
	for i := 0; i < n; i++ {
		old, new_ := t.Seats[i], seats[i]
		switch {
		case old == 0 && new_ != 0:
			t.addPlayer(i, new_)
		case old != 0 && new_ == 0:
			t.removePlayer(i)
		case old != new_:
			t.logger.Warn("seat changed owner without vacancy", "seat", i, "old", old, "new", new_)
			t.removePlayer(i)
			t.addPlayer(i, new_)
		}
	}
	return nil
}

// addPlayer admits the occupant of a newly filled seat. The avatar is
// bound directly; for anyone else a player-info request goes out and
// the entry is created when the reply arrives.
func (t *Table) addPlayer(seat, serial int) {
	t.Seats[seat] = serial
	if serial == t.avatar.Serial {
		t.avatar.Seat = seat
		t.Players[serial] = t.avatar
		return
	}
	t.sender.Send(&protocol.GetUserInfo{Serial: serial})
}

func (t *Table) removePlayer(seat int) {
	if seat < 0 || seat >= len(t.Seats) {
		return
	}
	serial := t.Seats[seat]
	t.Seats[seat] = 0
	delete(t.Players, serial)
}

func (t *Table) handlePlayerUpdate(pkt protocol.Packet) error {
	switch p := pkt.(type) {
	case *protocol.PlayerArrive:
		t.getOrCreatePlayer(p.Serial, p.Seat).Update(p.Name, p.Seat, p.SitOut)
	case *protocol.PlayerInfo:
		player := t.getOrCreatePlayer(p.Serial, -1)
		player.Name = p.Name
	default:
		return fmt.Errorf("unexpected packet type %T", pkt)
	}
	return nil
}

func (t *Table) handlePlayerLeave(pkt protocol.Packet) error {
	p, err := want[*protocol.PlayerLeave](pkt)
	if err != nil {
		return err
	}
	t.removePlayer(p.Seat)
	return nil
}

func (t *Table) handlePlayerChips(pkt protocol.Packet) error {
	p, err := want[*protocol.PlayerChips](pkt)
	if err != nil {
		return err
	}
	t.getOrCreatePlayer(p.Serial, -1).UpdateChips(p.Money, p.Bet)
	return nil
}

func (t *Table) handlePlayerCards(pkt protocol.Packet) error {
	p, err := want[*protocol.PlayerCards](pkt)
	if err != nil {
		return err
	}
	player, err := t.getPlayer(p.Serial)
	if err != nil {
		return err
	}
	player.UpdateCards(p.Cards)
	if p.Serial == t.avatar.Serial {
		t.notify("You got " + CardsString(p.Cards))
	}
	return nil
}

func (t *Table) handleBoardCards(pkt protocol.Packet) error {
	p, err := want[*protocol.BoardCards](pkt)
	if err != nil {
		return err
	}
	t.Board = p.Cards
	return nil
}

func (t *Table) handleSit(pkt protocol.Packet) error {
	p, err := want[*protocol.Sit](pkt)
	if err != nil {
		return err
	}
	player, err := t.getPlayer(p.Serial)
	if err != nil {
		return err
	}
	player.Sit()
	return nil
}

func (t *Table) handleSitOut(pkt protocol.Packet) error {
	p, err := want[*protocol.SitOut](pkt)
	if err != nil {
		return err
	}
	player, err := t.getPlayer(p.Serial)
	if err != nil {
		return err
	}
	player.SitOutNow()
	return nil
}

func (t *Table) handleRebuy(pkt protocol.Packet) error {
	p, err := want[*protocol.Rebuy](pkt)
	if err != nil {
		return err
	}
	if err := t.checkGame(p.GameID); err != nil {
		return err
	}
	player, err := t.getPlayer(p.Serial)
	if err != nil {
		return err
	}
	player.Rebuy(p.Amount)
	return nil
}

func (t *Table) handleInGame(pkt protocol.Packet) error {
	p, err := want[*protocol.InGame](pkt)
	if err != nil {
		return err
	}
	if err := t.checkGame(p.GameID); err != nil {
		return err
	}
	t.InGame = p.Players
	return nil
}

func (t *Table) handlePosition(pkt protocol.Packet) error {
	p, err := want[*protocol.Position](pkt)
	if err != nil {
		return err
	}
	if err := t.checkGame(p.GameID); err != nil {
		return err
	}
	t.Position = p.Position
	return nil
}

func (t *Table) handleStart(pkt protocol.Packet) error {
	p, err := want[*protocol.Start](pkt)
	if err != nil {
		return err
	}
	if err := t.checkGame(p.GameID); err != nil {
		return err
	}
	t.Reset()
	t.HandSerial = p.HandSerial
	return nil
}

func (t *Table) handleDealer(pkt protocol.Packet) error {
	p, err := want[*protocol.Dealer](pkt)
	if err != nil {
		return err
	}
	if err := t.checkGame(p.GameID); err != nil {
		return err
	}
	t.Dealer = p.Dealer
	return nil
}

func (t *Table) handleFold(pkt protocol.Packet) error {
	p, err := want[*protocol.Fold](pkt)
	if err != nil {
		return err
	}
	player, err := t.getPlayer(p.Serial)
	if err != nil {
		return err
	}
	player.Folded = true
	return nil
}

// handleRaise applies a server-confirmed wager, not a local guess.
func (t *Table) handleRaise(pkt protocol.Packet) error {
	p, err := want[*protocol.Raise](pkt)
	if err != nil {
		return err
	}
	player, err := t.getPlayer(p.Serial)
	if err != nil {
		return err
	}
	player.Bet(p.Amount)
	return nil
}

func (t *Table) handleBlind(pkt protocol.Packet) error {
	p, err := want[*protocol.Blind](pkt)
	if err != nil {
		return err
	}
	player, err := t.getPlayer(p.Serial)
	if err != nil {
		return err
	}
	player.Bet(p.Amount)
	return nil
}

// handleCall infers the call amount locally; the packet does not carry
// it. See CallAmount.
func (t *Table) handleCall(pkt protocol.Packet) error {
	p, err := want[*protocol.Call](pkt)
	if err != nil {
		return err
	}
	player, err := t.getPlayer(p.Serial)
	if err != nil {
		return err
	}
	player.Bet(t.CallAmount(player))
	return nil
}

func (t *Table) handleState(pkt protocol.Packet) error {
	p, err := want[*protocol.State](pkt)
	if err != nil {
		return err
	}
	t.phase = PhaseFromString(p.String)
	return nil
}

// CallAmount computes what a player must add to call: the gap between
// the highest outstanding bet (or the effective big blind) and the
// player's current bet, bounded by the chips in front of them.
//
// Upstream revisions disagreed on whether the bankroll or the chips
// bound the call; chips are the funds actually wagerable this hand, so
// they are used here.
func (t *Table) CallAmount(player *Player) int {
	owed := t.HighestBetNotFold()
	if blind := t.effectiveBigBlind(); blind > owed {
		owed = blind
	}
	amount := owed - player.CurrentBet()
	if amount > player.Chips() {
		amount = player.Chips()
	}
	if amount < 0 {
		amount = 0
	}
	return amount
}

// effectiveBigBlind is the big blind while the hand is pre-flop and the
// acting player is not in the small-blind seat (the small blind already
// owes less); otherwise 0.
func (t *Table) effectiveBigBlind() int {
	if t.phase == PhasePreFlop && !t.InSmallBlindPosition() {
		return t.BigBlind
	}
	return 0
}

// InSmallBlindPosition reports whether the acting position is the seat
// immediately after the dealer in turn order.
func (t *Table) InSmallBlindPosition() bool {
	if len(t.InGame) == 0 || t.Dealer < 0 {
		return false
	}
	return (t.Dealer+1)%len(t.InGame) == t.Position
}

// HighestBetNotFold returns the maximum bet among players still in the
// hand and not folded; 0 when no eligible bettor exists.
func (t *Table) HighestBetNotFold() int {
	highest := 0
	for _, serial := range t.InGame {
		p, ok := t.Players[serial]
		if !ok || p.Folded {
			continue
		}
		if p.CurrentBet() > highest {
			highest = p.CurrentBet()
		}
	}
	return highest
}

// IndexInGame returns the 0-based index of serial in the in-game list,
// or -1 when absent.
func (t *Table) IndexInGame(serial int) int {
	for i, s := range t.InGame {
		if s == serial {
			return i
		}
	}
	return -1
}

// InPosition reports whether it is serial's turn to act.
func (t *Table) InPosition(serial int) bool {
	i := t.IndexInGame(serial)
	return i != -1 && i == t.Position
}

// getOrCreatePlayer resolves a player by serial, creating it on first
// reference. A seat-qualified reference whose seat is occupied by a
// different serial evicts the stale occupant first.
func (t *Table) getOrCreatePlayer(serial, seat int) *Player {
	if seat >= 0 && seat < len(t.Seats) && t.Seats[seat] != 0 && t.Seats[seat] != serial {
		t.logger.Warn("seat already occupied, evicting", "seat", seat, "old", t.Seats[seat], "new", serial)
		delete(t.Players, t.Seats[seat])
		t.Seats[seat] = serial
	}
	if p, ok := t.Players[serial]; ok {
		return p
	}
	p := NewPlayer(serial)
	if seat >= 0 {
		p.Seat = seat
	}
	t.Players[serial] = p
	return p
}

func (t *Table) getPlayer(serial int) (*Player, error) {
	p, ok := t.Players[serial]
	if !ok {
		return nil, fmt.Errorf("no player with serial %d", serial)
	}
	return p, nil
}

// Outbound commands. All of them are fire-and-forget sends built from
// the avatar and table identifiers.

func (t *Table) serialAndGame() (int, int) {
	return t.avatar.Serial, t.ID
}

// DoBuyIn requests the maximum buy-in and automatic blind posting.
func (t *Table) DoBuyIn() {
	serial, game := t.serialAndGame()
	t.sender.Send(&protocol.BuyIn{Serial: serial, GameID: game, Amount: t.MaxBuyIn})
	t.sender.Send(&protocol.AutoBlindAnte{Serial: serial, GameID: game})
}

// DoRebuy requests a rebuy of the given amount.
func (t *Table) DoRebuy(amount int) {
	serial, game := t.serialAndGame()
	t.sender.Send(&protocol.Rebuy{Serial: serial, GameID: game, Amount: amount})
}

// DoSit requests to sit in.
func (t *Table) DoSit() {
	serial, game := t.serialAndGame()
	t.sender.Send(&protocol.Sit{Serial: serial, GameID: game})
}

// DoSitOut requests to sit out.
func (t *Table) DoSitOut() {
	serial, game := t.serialAndGame()
	t.sender.Send(&protocol.SitOut{Serial: serial, GameID: game})
}

// DoQuit leaves the table.
func (t *Table) DoQuit() {
	serial, game := t.serialAndGame()
	t.sender.Send(&protocol.TableQuit{Serial: serial, GameID: game})
}

// DoFold requests a fold.
func (t *Table) DoFold() {
	serial, game := t.serialAndGame()
	t.sender.Send(&protocol.Fold{Serial: serial, GameID: game})
}

// DoCheck requests a check.
func (t *Table) DoCheck() {
	serial, game := t.serialAndGame()
	t.sender.Send(&protocol.Check{Serial: serial, GameID: game})
}

// DoCall requests a call; the server computes the amount.
func (t *Table) DoCall() {
	serial, game := t.serialAndGame()
	t.sender.Send(&protocol.Call{Serial: serial, GameID: game})
}

// DoRaise requests a raise. If the amount is below the table minimum
// the server raises by the minimum instead and announces the amount it
// used.
func (t *Table) DoRaise(amount int) {
	serial, game := t.serialAndGame()
	t.sender.Send(&protocol.Raise{Serial: serial, GameID: game, Amount: amount})
}

// DoAllIn raises by everything the avatar has in front of them.
func (t *Table) DoAllIn() {
	t.DoRaise(t.avatar.Chips())
}

// AvatarInfo returns human-readable lines about the avatar's hand:
// hole cards, board, and the best makeable hand when a board is out.
func (t *Table) AvatarInfo() []string {
	var lines []string
	if len(t.avatar.Cards) > 0 {
		lines = append(lines, "hand: "+CardsString(t.avatar.Cards))
	}
	if len(t.Board) > 0 {
		lines = append(lines, "board: "+CardsString(t.Board))
		if len(t.avatar.Cards) > 0 {
			desc, err := BestHand(append(t.avatar.CardIDs(), CardIDs(t.Board)...))
			if err != nil {
				lines = append(lines, "best hand: "+err.Error())
			} else {
				lines = append(lines, "best hand: "+desc)
			}
		}
	}
	return lines
}

// AvatarInfoLine returns AvatarInfo joined into one line.
func (t *Table) AvatarInfoLine() string {
	return strings.Join(t.AvatarInfo(), ", ")
}

// DebugLines returns the debug sidebar: table config, call inference
// inputs, avatar hand and per-player ledger dumps.
func (t *Table) DebugLines() []string {
	lines := []string{
		fmt.Sprintf("blinds: small:%d big:%d", t.SmallBlind, t.BigBlind),
		fmt.Sprintf("buy_ins: min:%d max:%d", t.MinBuyIn, t.MaxBuyIn),
		fmt.Sprintf("bs: %s", t.BettingStructure),
		fmt.Sprintf("highestbet = %d", t.HighestBetNotFold()),
		fmt.Sprintf("bigb = %d", t.effectiveBigBlind()),
	}
	lines = append(lines, t.AvatarInfo()...)
	for _, p := range t.Players {
		lines = append(lines, p.Describe())
	}
	return lines
}

// LogPlayers surfaces every player's ledger dump through Notify.
func (t *Table) LogPlayers() {
	t.notify("Players:")
	for _, p := range t.Players {
		t.notify(p.Describe())
	}
}
