// Package session drives the top-level connection state machine:
// authenticate, search for a table, join it, play. Each state owns a
// dispatch table; packets no state claims fall through to the table
// replica so bookkeeping stays current regardless of state.
package session

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/pokermania/pokercli/internal/dispatch"
	"github.com/pokermania/pokercli/internal/game"
	"github.com/pokermania/pokercli/internal/protocol"
)

// State is the top-level connection state.
type State int

const (
	Login State = iota
	Search
	Join
	Playing
)

// String returns the state's name.
func (s State) String() string {
	switch s {
	case Login:
		return "login"
	case Search:
		return "search"
	case Join:
		return "join"
	case Playing:
		return "playing"
	default:
		return "unknown"
	}
}

// legalTransitions lists the only state changes the protocol allows.
// Anything else is a programming-contract violation and panics rather
// than being silently coerced.
var legalTransitions = map[State][]State{
	Login:  {Search},
	Search: {Login, Join},
	Join:   {Playing},
}

// Notifier receives the session's caller-facing signals: transcript
// lines, table advertisements, state changes, hand boundaries and turn
// notifications. The TUI and the bot policy both implement it.
type Notifier interface {
	Line(text string)
	TableAdvertised(info *protocol.Table)
	StateChanged(state State)
	HandEnded()
	YourTurn(info string)
}

// Session replicates one server connection: the avatar, the joined
// table (nil until a join confirmation arrives) and the current state.
// All packet handling is serialized by the caller; see OnPacket.
type Session struct {
	state    State
	avatar   *game.Player
	table    *game.Table
	gameID   int
	sender   game.Sender
	notifier Notifier
	logger   *log.Logger
	muxes    map[State]dispatch.Mux

	defaultName     string
	defaultPassword string
}

// New creates a session in the Login state. Outbound packets go through
// sender; caller-facing signals through notifier.
func New(sender game.Sender, notifier Notifier, logger *log.Logger) *Session {
	s := &Session{
		state:    Login,
		avatar:   game.NewPlayer(-1),
		gameID:   -1,
		notifier: notifier,
		logger:   logger.WithPrefix("session"),
	}
	s.sender = &echoSender{inner: sender, notify: notifier.Line}
	s.muxes = map[State]dispatch.Mux{
		Login: {
			protocol.KindAuthOk:      s.handleAuthOk,
			protocol.KindAuthRefused: s.handleAuthRefused,
		},
		Search: {
			protocol.KindSerial:     s.handleSerial,
			protocol.KindPlayerInfo: s.handlePlayerInfo,
			protocol.KindUserInfo:   s.handleUserInfo,
			protocol.KindTableList:  s.handleTableList,
			protocol.KindTable:      s.handleTable,
		},
		Join: {
			protocol.KindBuyInLimits: s.handleBuyInLimits,
			protocol.KindStart:       s.handleStart,
		},
		Playing: {
			protocol.KindPosition: s.handlePlayingPosition,
		},
	}
	return s
}

// echoSender mirrors every outbound packet to the transcript with a
// "< " prefix, the same format replay tooling consumes.
type echoSender struct {
	inner  game.Sender
	notify func(string)
}

func (e *echoSender) Send(pkt protocol.Packet) {
	e.inner.Send(pkt)
	e.notify("< " + protocol.Encode(pkt))
}

// SetCredentials sets the name and password the bare "login" command
// uses.
func (s *Session) SetCredentials(name, password string) {
	s.defaultName = name
	s.defaultPassword = password
}

// State returns the current top-level state.
func (s *Session) State() State { return s.state }

// Avatar returns the local player.
func (s *Session) Avatar() *game.Player { return s.avatar }

// Table returns the joined table, or nil.
func (s *Session) Table() *game.Table { return s.table }

// HasTable reports whether a table is joined.
func (s *Session) HasTable() bool { return s.table != nil }

// ChangeState moves the state machine. Illegal targets panic: the
// server and client disagree about the protocol and recovery cannot
// safely paper over that.
func (s *Session) ChangeState(to State) {
	legal := false
	for _, t := range legalTransitions[s.state] {
		if t == to {
			legal = true
			break
		}
	}
	if !legal {
		panic(fmt.Sprintf("session: illegal state transition %s -> %s", s.state, to))
	}
	s.logger.Info("state change", "from", s.state.String(), "to", to.String())
	s.state = to
	s.notifier.StateChanged(to)
}

// OnPacket is the single entry point for inbound packets. It must be
// called from one goroutine only: all replica mutation happens in
// packet-arrival order.
func (s *Session) OnPacket(pkt protocol.Packet) {
	s.notifier.Line("> " + protocol.Encode(pkt))

	if dispatch.Dispatch(s.logger, s.muxes[s.state], pkt) == dispatch.Unhandled {
		s.fallthroughToTable(pkt)
	}

	// Hand boundary signal for rebuy policies, regardless of which
	// handler claimed the packet.
	if st, ok := pkt.(*protocol.State); ok && st.String == game.PhaseEnd.String() {
		s.notifier.HandEnded()
	}
}

// fallthroughToTable forwards a packet no state handler claimed to the
// table replica. Packets the table does not know either are a silent
// no-op: not every packet type is meaningful in every state.
func (s *Session) fallthroughToTable(pkt protocol.Packet) {
	if s.table == nil {
		s.logger.Debug("no table for packet", "packet", pkt.Kind().String())
		return
	}
	if s.table.Apply(pkt) == dispatch.Unhandled {
		s.logger.Debug("unhandled packet", "state", s.state.String(), "packet", pkt.Kind().String())
	}
}

// MyPosition returns the avatar's index in the in-game order, or -1
// when the avatar is not in the hand (or no table is joined).
func (s *Session) MyPosition() int {
	if s.table == nil || s.avatar.Serial == -1 {
		return -1
	}
	return s.table.IndexInGame(s.avatar.Serial)
}

// DebugLines returns the debug summary for the active table, empty when
// none is joined.
func (s *Session) DebugLines() []string {
	if s.table == nil {
		return nil
	}
	return s.table.DebugLines()
}

// Login-state handlers

func (s *Session) handleAuthOk(protocol.Packet) error {
	s.sender.Send(&protocol.SetRole{Roles: "PLAY"})
	s.ChangeState(Search)
	return nil
}

func (s *Session) handleAuthRefused(protocol.Packet) error {
	s.notifier.Line("authentication refused")
	return nil
}

// Search-state handlers

func (s *Session) handleSerial(pkt protocol.Packet) error {
	p, ok := pkt.(*protocol.Serial)
	if !ok {
		return fmt.Errorf("unexpected packet type %T", pkt)
	}
	s.avatar.Serial = p.Serial
	s.sender.Send(&protocol.GetPlayerInfo{})
	s.sender.Send(&protocol.GetUserInfo{Serial: p.Serial})
	return nil
}

func (s *Session) handlePlayerInfo(protocol.Packet) error {
	// Name/outfit updates would go here; nothing to do for now.
	return nil
}

func (s *Session) handleUserInfo(pkt protocol.Packet) error {
	p, ok := pkt.(*protocol.UserInfo)
	if !ok {
		return fmt.Errorf("unexpected packet type %T", pkt)
	}
	s.avatar.UpdateMoney(p.Currencies, p.Amounts)
	selector := ""
	if _, ok := s.avatar.Bankroll[game.ChipsCurrency]; ok {
		selector = fmt.Sprintf("%d\tholdem", game.ChipsCurrency)
	}
	s.sender.Send(&protocol.TableSelect{String: selector})
	return nil
}

func (s *Session) handleTableList(pkt protocol.Packet) error {
	p, ok := pkt.(*protocol.TableList)
	if !ok {
		return fmt.Errorf("unexpected packet type %T", pkt)
	}
	for _, nested := range p.Packets {
		if info, ok := nested.(*protocol.Table); ok {
			s.notifier.TableAdvertised(info)
		}
	}
	return nil
}

// handleTable reacts to a successful table join: build the replica and
// move to the Join state.
func (s *Session) handleTable(pkt protocol.Packet) error {
	p, ok := pkt.(*protocol.Table)
	if !ok {
		return fmt.Errorf("unexpected packet type %T", pkt)
	}
	table, err := game.NewTable(p, s.avatar, s.sender, s.logger)
	if err != nil {
		return fmt.Errorf("joining table %d: %w", p.ID, err)
	}
	table.Notify = s.notifier.Line
	s.table = table
	s.gameID = p.ID
	s.ChangeState(Join)
	return nil
}

// Join-state handlers

func (s *Session) handleBuyInLimits(pkt protocol.Packet) error {
	// The table replica takes the values; nothing else to do here.
	if s.table != nil {
		s.table.Apply(pkt)
	}
	return nil
}

func (s *Session) handleStart(pkt protocol.Packet) error {
	if s.table != nil {
		s.table.Apply(pkt)
	}
	s.ChangeState(Playing)
	return nil
}

// Playing-state handlers

// handlePlayingPosition keeps the replica's position current and
// signals the caller when it is the avatar's turn.
func (s *Session) handlePlayingPosition(pkt protocol.Packet) error {
	p, ok := pkt.(*protocol.Position)
	if !ok {
		return fmt.Errorf("unexpected packet type %T", pkt)
	}
	if s.table != nil {
		s.table.Apply(pkt)
	}
	if p.Position != -1 && p.Position == s.MyPosition() {
		s.notifier.YourTurn(s.table.AvatarInfoLine())
	}
	return nil
}
