package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pokermania/pokercli/internal/game"
	"github.com/pokermania/pokercli/internal/protocol"
	"github.com/pokermania/pokercli/internal/session"
)

// sender abstracts tea.Program.Send so tests can capture messages.
type sender interface {
	Send(msg tea.Msg)
}

// Notifier bridges session signals onto the Bubble Tea event loop. Its
// methods run on the session goroutine; Program.Send is safe to call
// from there.
type Notifier struct {
	program sender
	session *session.Session
}

// NewNotifier creates the bridge. Bind attaches the session once it is
// constructed, since the session itself wants the notifier at creation.
func NewNotifier(program sender) *Notifier {
	return &Notifier{program: program}
}

// Bind attaches the session whose debug state feeds the sidebar.
func (n *Notifier) Bind(s *session.Session) { n.session = s }

// Line appends a transcript line and refreshes the sidebar.
func (n *Notifier) Line(text string) {
	n.program.Send(LineMsg(text))
	if n.session != nil {
		n.program.Send(SidebarMsg(n.session.DebugLines()))
	}
}

// smallStakesMax is the maximum buy-in, in cents, below which a table
// counts as small stakes and gets highlighted in the listing.
const smallStakesMax = 500000

// smallStakes reports whether a betting structure descriptor is below
// the small-stakes buy-in threshold. Unparseable descriptors are not
// highlighted.
func smallStakes(bettingStructure string) bool {
	stakes, err := game.ParseBettingStructure(bettingStructure)
	return err == nil && stakes.MaxBuyIn < smallStakesMax
}

// TableAdvertised shows an advertised table on the transcript,
// highlighting the small-stakes ones.
func (n *Notifier) TableAdvertised(info *protocol.Table) {
	line := fmt.Sprintf("table %d %q %s %s seats %d/%d",
		info.ID, info.Name, info.Variant, info.BettingStructure,
		info.Players, info.Seats)
	if smallStakes(info.BettingStructure) {
		line = TurnStyle.Render(line)
	}
	n.program.Send(LineMsg(line))
}

// StateChanged updates the header.
func (n *Notifier) StateChanged(state session.State) {
	n.program.Send(StateMsg(state.String()))
}

// HandEnded marks the hand boundary on the transcript.
func (n *Notifier) HandEnded() {
	n.program.Send(LineMsg(InfoStyle.Render("--- hand over ---")))
}

// YourTurn prompts for an action.
func (n *Notifier) YourTurn(info string) {
	n.program.Send(TurnMsg(info))
}
