package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/pokermania/pokercli/internal/protocol"
	"github.com/pokermania/pokercli/internal/session"
)

type ReplayCmd struct {
	File    string `arg:"" help:"Transcript file; inbound packet lines are replayed"`
	Verbose bool   `help:"Also print outbound packets recorded in the transcript"`
}

func (c *ReplayCmd) Run() error {
	f, err := os.Open(c.File)
	if err != nil {
		return err
	}
	defer f.Close()

	logger := log.NewWithOptions(io.Discard, log.Options{})
	notifier := &replayNotifier{out: os.Stdout, verbose: c.Verbose}
	sess := session.New(discardSender{}, notifier, logger)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if !strings.HasPrefix(line, "> ") {
			continue
		}
		pkt, err := protocol.Decode(strings.TrimPrefix(line, "> "))
		if err != nil {
			fmt.Fprintf(os.Stdout, "line %d: %v\n", lineNo, err)
			continue
		}
		sess.OnPacket(pkt)
	}
	return scanner.Err()
}

// discardSender swallows the packets the replayed session tries to send;
// there is no server on the other end of a transcript.
type discardSender struct{}

func (discardSender) Send(protocol.Packet) {}

// replayNotifier narrates the replayed session on stdout.
type replayNotifier struct {
	out     io.Writer
	verbose bool
}

func (n *replayNotifier) Line(text string) {
	if !n.verbose && strings.HasPrefix(text, "< ") {
		return
	}
	fmt.Fprintln(n.out, text)
}

func (n *replayNotifier) TableAdvertised(info *protocol.Table) {
	fmt.Fprintf(n.out, "table %d %q %s %s seats %d/%d\n",
		info.ID, info.Name, info.Variant, info.BettingStructure,
		info.Players, info.Seats)
}

func (n *replayNotifier) StateChanged(state session.State) {
	fmt.Fprintf(n.out, "=== state: %s\n", state)
}

func (n *replayNotifier) HandEnded() {
	fmt.Fprintln(n.out, "=== hand over")
}

func (n *replayNotifier) YourTurn(info string) {
	fmt.Fprintf(n.out, "=== your turn: %s\n", info)
}
