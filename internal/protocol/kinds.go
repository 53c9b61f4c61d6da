package protocol

// Kind identifies a packet variant. Dispatch tables are keyed by Kind so
// that "no handler registered" is an explicit branch rather than a
// reflection miss.
type Kind int

const (
	KindUnknown Kind = iota

	// Server to client
	KindAuthOk
	KindAuthRefused
	KindSerial
	KindPlayerInfo
	KindUserInfo
	KindTableList
	KindTable
	KindBuyInLimits
	KindStart
	KindPosition
	KindSeats
	KindPlayerArrive
	KindPlayerLeave
	KindPlayerChips
	KindPlayerCards
	KindBoardCards
	KindState
	KindInGame
	KindDealer

	// Both directions
	KindSit
	KindSitOut
	KindRebuy
	KindFold
	KindCheck
	KindCall
	KindRaise
	KindBlind

	// Client to server
	KindLogin
	KindSetRole
	KindGetPlayerInfo
	KindGetUserInfo
	KindTableSelect
	KindTableJoin
	KindSeat
	KindBuyIn
	KindAutoBlindAnte
	KindTableQuit
)

var kindNames = map[Kind]string{
	KindAuthOk:        "AUTH_OK",
	KindAuthRefused:   "AUTH_REFUSED",
	KindSerial:        "SERIAL",
	KindPlayerInfo:    "POKER_PLAYER_INFO",
	KindUserInfo:      "POKER_USER_INFO",
	KindTableList:     "POKER_TABLE_LIST",
	KindTable:         "POKER_TABLE",
	KindBuyInLimits:   "POKER_BUY_IN_LIMITS",
	KindStart:         "POKER_START",
	KindPosition:      "POKER_POSITION",
	KindSeats:         "POKER_SEATS",
	KindPlayerArrive:  "POKER_PLAYER_ARRIVE",
	KindPlayerLeave:   "POKER_PLAYER_LEAVE",
	KindPlayerChips:   "POKER_PLAYER_CHIPS",
	KindPlayerCards:   "POKER_PLAYER_CARDS",
	KindBoardCards:    "POKER_BOARD_CARDS",
	KindState:         "POKER_STATE",
	KindInGame:        "POKER_IN_GAME",
	KindDealer:        "POKER_DEALER",
	KindSit:           "POKER_SIT",
	KindSitOut:        "POKER_SIT_OUT",
	KindRebuy:         "POKER_REBUY",
	KindFold:          "POKER_FOLD",
	KindCheck:         "POKER_CHECK",
	KindCall:          "POKER_CALL",
	KindRaise:         "POKER_RAISE",
	KindBlind:         "POKER_BLIND",
	KindLogin:         "LOGIN",
	KindSetRole:       "POKER_SET_ROLE",
	KindGetPlayerInfo: "POKER_GET_PLAYER_INFO",
	KindGetUserInfo:   "POKER_GET_USER_INFO",
	KindTableSelect:   "POKER_TABLE_SELECT",
	KindTableJoin:     "POKER_TABLE_JOIN",
	KindSeat:          "POKER_SEAT",
	KindBuyIn:         "POKER_BUY_IN",
	KindAutoBlindAnte: "POKER_AUTO_BLIND_ANTE",
	KindTableQuit:     "POKER_TABLE_QUIT",
}

// String returns the wire name of the kind, as it appears at the start
// of an encoded packet line.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}
