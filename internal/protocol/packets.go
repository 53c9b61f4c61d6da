package protocol

// Packet is a typed, schema-described message exchanged with the server.
// Field order and names are fixed by the `packet` struct tags, which the
// textual codec uses to encode and decode lines. The tag option
// "optbyte" marks a seat/position style field where the wire value 255
// means "none" and is represented as -1 here.
type Packet interface {
	Kind() Kind
}

// AuthOk is sent by the server when authentication succeeds.
type AuthOk struct{}

func (AuthOk) Kind() Kind { return KindAuthOk }

// AuthRefused is sent by the server when authentication fails.
type AuthRefused struct{}

func (AuthRefused) Kind() Kind { return KindAuthRefused }

// Serial announces the serial the server assigned to this connection's
// player.
type Serial struct {
	Serial int `packet:"serial"`
}

func (Serial) Kind() Kind { return KindSerial }

// PlayerInfo carries the display attributes of a player.
type PlayerInfo struct {
	Serial int    `packet:"serial"`
	Name   string `packet:"name"`
	Outfit string `packet:"outfit"`
	URL    string `packet:"url"`
}

func (PlayerInfo) Kind() Kind { return KindPlayerInfo }

// UserInfo carries a player's bankroll, one entry per currency.
// Currencies and Amounts are parallel lists; gameplay only ever reads
// currency 1 (chips).
type UserInfo struct {
	Serial     int    `packet:"serial"`
	Name       string `packet:"name"`
	Currencies []int  `packet:"currencies"`
	Amounts    []int  `packet:"amounts"`
}

func (UserInfo) Kind() Kind { return KindUserInfo }

// TableList carries one nested Table packet per advertised table.
type TableList struct {
	Packets []Packet `packet:"packets"`
}

func (TableList) Kind() Kind { return KindTableList }

// Table describes one table. It doubles as the "table joined"
// confirmation, in which case PlayerSeated is the avatar's seat
// (or -1 when observing).
type Table struct {
	ID               int    `packet:"id"`
	Seats            int    `packet:"seats"`
	AveragePot       int    `packet:"average_pot"`
	HandsPerHour     int    `packet:"hands_per_hour"`
	PercentFlop      int    `packet:"percent_flop"`
	Players          int    `packet:"players"`
	Observers        int    `packet:"observers"`
	Waiting          int    `packet:"waiting"`
	PlayerTimeout    int    `packet:"player_timeout"`
	MuckTimeout      int    `packet:"muck_timeout"`
	CurrencySerial   int    `packet:"currency_serial"`
	Name             string `packet:"name"`
	Variant          string `packet:"variant"`
	BettingStructure string `packet:"betting_structure"`
	Skin             string `packet:"skin"`
	Reason           string `packet:"reason"`
	TourneySerial    int    `packet:"tourney_serial"`
	PlayerSeated     int    `packet:"player_seated"`
}

func (Table) Kind() Kind { return KindTable }

// BuyInLimits announces the table's buy-in bounds.
type BuyInLimits struct {
	GameID int `packet:"game_id"`
	Min    int `packet:"min"`
	Max    int `packet:"max"`
	Best   int `packet:"best"`
}

func (BuyInLimits) Kind() Kind { return KindBuyInLimits }

// Start announces the start of a hand.
type Start struct {
	GameID     int `packet:"game_id"`
	HandSerial int `packet:"hand_serial"`
}

func (Start) Kind() Kind { return KindStart }

// Position announces whose turn it is, as an index into the in-game
// list. -1 (wire 255) means nobody is in position.
type Position struct {
	GameID   int `packet:"game_id"`
	Position int `packet:"position,optbyte"`
	Serial   int `packet:"serial"`
}

func (Position) Kind() Kind { return KindPosition }

// Seats is a full snapshot of the seat array: 0 for an empty slot, else
// the occupying player's serial.
type Seats struct {
	GameID int   `packet:"game_id"`
	Seats  []int `packet:"seats"`
}

func (Seats) Kind() Kind { return KindSeats }

// PlayerArrive announces a player joining the table.
type PlayerArrive struct {
	GameID int    `packet:"game_id"`
	Serial int    `packet:"serial"`
	Name   string `packet:"name"`
	Seat   int    `packet:"seat,optbyte"`
	SitOut bool   `packet:"sit_out"`
}

func (PlayerArrive) Kind() Kind { return KindPlayerArrive }

// PlayerLeave announces a player leaving the table.
type PlayerLeave struct {
	GameID int `packet:"game_id"`
	Serial int `packet:"serial"`
	Seat   int `packet:"seat,optbyte"`
}

func (PlayerLeave) Kind() Kind { return KindPlayerLeave }

// PlayerChips is the authoritative chips/bet snapshot for one player.
// Money is the amount in front of the player, Bet the amount committed
// to the current betting round.
type PlayerChips struct {
	GameID int `packet:"game_id"`
	Serial int `packet:"serial"`
	Money  int `packet:"money"`
	Bet    int `packet:"bet"`
}

func (PlayerChips) Kind() Kind { return KindPlayerChips }

// PlayerCards replaces a player's hole cards. Card codes carry
// visibility flags in the high bits; identity is the low 6 bits.
type PlayerCards struct {
	GameID int   `packet:"game_id"`
	Serial int   `packet:"serial"`
	Cards  []int `packet:"cards"`
}

func (PlayerCards) Kind() Kind { return KindPlayerCards }

// BoardCards replaces the community cards.
type BoardCards struct {
	GameID int   `packet:"game_id"`
	Cards  []int `packet:"cards"`
}

func (BoardCards) Kind() Kind { return KindBoardCards }

// State announces the hand phase by name ("pre-flop", "flop", ...).
type State struct {
	GameID int    `packet:"game_id"`
	String string `packet:"string"`
}

func (State) Kind() Kind { return KindState }

// InGame is the authoritative ordered list of serials still active in
// the current hand; its order defines turn order.
type InGame struct {
	GameID  int   `packet:"game_id"`
	Players []int `packet:"players"`
}

func (InGame) Kind() Kind { return KindInGame }

// Dealer announces the dealer button seat.
type Dealer struct {
	GameID         int `packet:"game_id"`
	Dealer         int `packet:"dealer"`
	PreviousDealer int `packet:"previous_dealer"`
}

func (Dealer) Kind() Kind { return KindDealer }

// Sit announces, or requests, that a player sits in.
type Sit struct {
	GameID int `packet:"game_id"`
	Serial int `packet:"serial"`
}

func (Sit) Kind() Kind { return KindSit }

// SitOut announces, or requests, that a player sits out.
type SitOut struct {
	GameID int `packet:"game_id"`
	Serial int `packet:"serial"`
}

func (SitOut) Kind() Kind { return KindSitOut }

// Rebuy moves funds from a player's bankroll onto the table.
type Rebuy struct {
	GameID int `packet:"game_id"`
	Serial int `packet:"serial"`
	Amount int `packet:"amount"`
}

func (Rebuy) Kind() Kind { return KindRebuy }

// Fold announces, or requests, a fold.
type Fold struct {
	GameID int `packet:"game_id"`
	Serial int `packet:"serial"`
}

func (Fold) Kind() Kind { return KindFold }

// Check announces, or requests, a check.
type Check struct {
	GameID int `packet:"game_id"`
	Serial int `packet:"serial"`
}

func (Check) Kind() Kind { return KindCheck }

// Call announces, or requests, a call. The amount is not carried: the
// client derives it from local state (see game.Table).
type Call struct {
	GameID int `packet:"game_id"`
	Serial int `packet:"serial"`
}

func (Call) Kind() Kind { return KindCall }

// Raise announces a server-confirmed wager, or requests one.
type Raise struct {
	GameID int `packet:"game_id"`
	Serial int `packet:"serial"`
	Amount int `packet:"amount"`
}

func (Raise) Kind() Kind { return KindRaise }

// Blind announces a posted blind.
type Blind struct {
	GameID int `packet:"game_id"`
	Serial int `packet:"serial"`
	Amount int `packet:"amount"`
	Dead   int `packet:"dead"`
}

func (Blind) Kind() Kind { return KindBlind }

// Login authenticates with the server.
type Login struct {
	Name     string `packet:"name"`
	Password string `packet:"password"`
}

func (Login) Kind() Kind { return KindLogin }

// SetRole selects the connection role after authentication.
type SetRole struct {
	Roles string `packet:"roles"`
}

func (SetRole) Kind() Kind { return KindSetRole }

// GetPlayerInfo requests the avatar's player info.
type GetPlayerInfo struct{}

func (GetPlayerInfo) Kind() Kind { return KindGetPlayerInfo }

// GetUserInfo requests bankroll information for a serial.
type GetUserInfo struct {
	Serial int `packet:"serial"`
}

func (GetUserInfo) Kind() Kind { return KindGetUserInfo }

// TableSelect requests a table list filtered by a currency/variant
// selector string.
type TableSelect struct {
	String string `packet:"string"`
}

func (TableSelect) Kind() Kind { return KindTableSelect }

// TableJoin requests to join a table.
type TableJoin struct {
	Serial int `packet:"serial"`
	GameID int `packet:"game_id"`
}

func (TableJoin) Kind() Kind { return KindTableJoin }

// Seat requests a seat; 255 asks the server to pick one.
type Seat struct {
	Serial int `packet:"serial"`
	GameID int `packet:"game_id"`
	Seat   int `packet:"seat"`
}

func (Seat) Kind() Kind { return KindSeat }

// BuyIn requests a buy-in for the avatar.
type BuyIn struct {
	Serial int `packet:"serial"`
	GameID int `packet:"game_id"`
	Amount int `packet:"amount"`
}

func (BuyIn) Kind() Kind { return KindBuyIn }

// AutoBlindAnte asks the server to post blinds and antes automatically.
type AutoBlindAnte struct {
	Serial int `packet:"serial"`
	GameID int `packet:"game_id"`
}

func (AutoBlindAnte) Kind() Kind { return KindAutoBlindAnte }

// TableQuit leaves the current table.
type TableQuit struct {
	Serial int `packet:"serial"`
	GameID int `packet:"game_id"`
}

func (TableQuit) Kind() Kind { return KindTableQuit }
