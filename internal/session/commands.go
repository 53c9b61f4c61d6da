package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pokermania/pokercli/internal/protocol"
)

// defaultJoinTable is the table joined by a bare "join" with no id.
const defaultJoinTable = 28

var errNoTable = fmt.Errorf("no table joined")

// ExecuteCmd runs one command line from the UI or the bot policy.
// Unknown verbs and failing commands are reported on the transcript and
// never interrupt the session.
func (s *Session) ExecuteCmd(cmd string) {
	s.notifier.Line(">>> " + cmd)
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return
	}
	verb, args := fields[0], fields[1:]
	if err := s.runCommand(verb, args); err != nil {
		s.notifier.Line(fmt.Sprintf(" EEE cmd failed: %q: %v", cmd, err))
	}
}

func (s *Session) runCommand(verb string, args []string) error {
	switch verb {
	case "l", "login":
		name, password := s.defaultName, s.defaultPassword
		if len(args) >= 2 {
			name, password = args[0], args[1]
		}
		s.sender.Send(&protocol.Login{Name: name, Password: password})
		s.avatar.Name = name

	case "j", "join":
		gameID := defaultJoinTable
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("bad table id %q", args[0])
			}
			gameID = n
		}
		s.gameID = gameID
		s.sender.Send(&protocol.TableJoin{Serial: s.avatar.Serial, GameID: gameID})

	case "s", "seat":
		// seat 255 asks the server to pick any free seat
		s.sender.Send(&protocol.Seat{Serial: s.avatar.Serial, GameID: s.gameID, Seat: 255})

	case "bi", "buyin":
		if s.table == nil {
			return errNoTable
		}
		s.table.DoBuyIn()
		s.table.DoSit()

	case "si", "sit":
		if s.table == nil {
			return errNoTable
		}
		s.table.DoSit()

	case "so", "sitout":
		if s.table == nil {
			return errNoTable
		}
		s.table.DoSitOut()

	case "ch", "check":
		if s.table == nil {
			return errNoTable
		}
		s.table.DoCheck()

	case "c", "call":
		if s.table == nil {
			return errNoTable
		}
		s.table.DoCall()

	case "f", "fold":
		if s.table == nil {
			return errNoTable
		}
		s.table.DoFold()

	case "r", "raise":
		if s.table == nil {
			return errNoTable
		}
		if len(args) == 0 {
			return fmt.Errorf("raise needs an amount")
		}
		amount, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("bad amount %q", args[0])
		}
		s.table.DoRaise(amount)

	case "ai", "allin":
		if s.table == nil {
			return errNoTable
		}
		s.table.DoAllIn()

	case "rb", "rebuy":
		if s.table == nil {
			return errNoTable
		}
		if len(args) == 0 {
			return fmt.Errorf("rebuy needs an amount")
		}
		amount, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("bad amount %q", args[0])
		}
		s.table.DoRebuy(amount)

	case "le", "leave":
		if s.table == nil {
			return errNoTable
		}
		s.table.DoFold()
		s.table.DoQuit()

	case "pp", "players":
		if s.table == nil {
			return errNoTable
		}
		s.table.LogPlayers()

	case "ci", "info":
		if s.table == nil {
			return errNoTable
		}
		s.notifier.Line(s.table.AvatarInfoLine())

	default:
		s.notifier.Line(fmt.Sprintf("commando %q unknown", verb))
	}
	return nil
}
