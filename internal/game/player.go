package game

import "fmt"

// ChipsCurrency is the only currency gameplay logic reads from the
// bankroll.
const ChipsCurrency = 1

// Player is one participant at the table: identity, seating, cards and
// ledger. Chips and bet are kept unexported so every transfer goes
// through the ledger methods and their invariants.
type Player struct {
	Serial int
	Name   string
	Seat   int // -1 when unseated
	SitOut bool

	// Bankroll is money not at the table, keyed by currency serial.
	Bankroll map[int]int

	Cards  []int
	Folded bool

	chips int
	bet   int
}

// NewPlayer creates a player known only by serial. Name, seat and
// sit-state arrive later via arrive/info packets; until then the player
// is unseated and sat out.
func NewPlayer(serial int) *Player {
	return &Player{
		Serial:   serial,
		Name:     "unknown",
		Seat:     -1,
		SitOut:   true,
		Bankroll: make(map[int]int),
	}
}

// Update applies identity fields from an arrive/info packet.
func (p *Player) Update(name string, seat int, sitOut bool) {
	p.Name = name
	p.Seat = seat
	p.SitOut = sitOut
}

// Chips returns the amount currently in front of the player.
func (p *Player) Chips() int { return p.chips }

// CurrentBet returns the amount committed to the current betting round.
func (p *Player) CurrentBet() int { return p.bet }

// Money returns the player's chip-currency bankroll.
func (p *Player) Money() int {
	return p.Bankroll[ChipsCurrency]
}

// UpdateMoney replaces bankroll entries from parallel currency/amount
// lists.
func (p *Player) UpdateMoney(currencies, amounts []int) {
	for i, c := range currencies {
		if i < len(amounts) {
			p.Bankroll[c] = amounts[i]
		}
	}
}

// UpdateChips sets chips and bet from server-announced absolute values.
// This is the authoritative correction path; it overrides any local
// arithmetic. Negative arguments leave the respective value untouched.
func (p *Player) UpdateChips(chips, bet int) {
	if chips >= 0 {
		p.chips = chips
	}
	if bet >= 0 {
		p.bet = bet
	}
}

// Bet transfers amount from chips to the current bet. The transfer is
// atomic and must never drive chips negative: a caller asking for more
// than the player has in front of them means our model and the server
// have diverged, and that is not recoverable.
func (p *Player) Bet(amount int) {
	if amount > p.chips {
		panic(fmt.Sprintf("game: player %d bet %d exceeds chips %d", p.Serial, amount, p.chips))
	}
	p.chips -= amount
	p.bet += amount
}

// Rebuy moves amount from the bankroll onto the table. The transfer is
// zero-sum: chips gain exactly what the bankroll loses.
func (p *Player) Rebuy(amount int) {
	p.chips += amount
	if _, ok := p.Bankroll[ChipsCurrency]; ok {
		p.Bankroll[ChipsCurrency] -= amount
	}
}

// UpdateCards replaces the hole cards wholesale.
func (p *Player) UpdateCards(cards []int) {
	p.Cards = cards
}

// CardIDs returns the hole cards with visibility flags stripped.
func (p *Player) CardIDs() []int {
	return CardIDs(p.Cards)
}

// NotFolded reports whether the player is still in contention.
func (p *Player) NotFolded() bool { return !p.Folded }

// Sit marks the player as sitting in.
func (p *Player) Sit() { p.SitOut = false }

// SitOutNow marks the player as sat out.
func (p *Player) SitOutNow() { p.SitOut = true }

// ResetHand clears the per-hand state (bet, cards, fold flag) while
// preserving identity, seating and ledgers.
func (p *Player) ResetHand() {
	p.bet = 0
	p.Cards = nil
	p.Folded = false
}

// Describe returns a one-line ledger dump for debug output.
func (p *Player) Describe() string {
	return fmt.Sprintf("%q %d seat:%d m:%d c:%d b:%d", p.Name, p.Serial, p.Seat, p.Money(), p.chips, p.bet)
}
