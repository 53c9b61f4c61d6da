package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/pokermania/pokercli/internal/config"
	"github.com/pokermania/pokercli/internal/protocol"
	"github.com/pokermania/pokercli/internal/session"
	"github.com/pokermania/pokercli/internal/transport"
	"github.com/pokermania/pokercli/internal/tui"
)

type PlayCmd struct {
	Config string `kong:"default='pokercli.hcl',help='Path to the HCL config file'"`
	Server string `kong:"default='',help='Override the server URL from the config'"`
}

func (c *PlayCmd) Run() error {
	cfg, err := loadConfig(c.Config)
	if err != nil {
		return err
	}
	if c.Server != "" {
		cfg.Server.URL = c.Server
	}

	logger, closer, err := newFileLogger(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	creds := config.LoadCredentials()
	if cfg.Player.Name != "" {
		creds.Username = cfg.Player.Name
	}

	// The session owns all mutable state and runs on a single
	// goroutine: inbound packets and typed commands are funneled
	// through channels so packet-arrival order is preserved.
	packets := make(chan protocol.Packet, 64)
	commands := make(chan string, 16)

	model := tui.NewModel(logger, func(cmd string) {
		select {
		case commands <- cmd:
		default:
			logger.Warn("command dropped, queue full", "cmd", cmd)
		}
	})
	program := tea.NewProgram(model, tea.WithAltScreen())

	notifier := tui.NewNotifier(program)
	trans := transport.New(cfg.Server.URL, func(pkt protocol.Packet) {
		packets <- pkt
	}, logger, quartz.NewReal())

	sess := session.New(trans, notifier, logger)
	sess.SetCredentials(creds.Username, creds.Password)
	notifier.Bind(sess)

	if err := trans.Connect(); err != nil {
		return fmt.Errorf("connecting to %s: %w", cfg.Server.URL, err)
	}
	defer trans.Close()

	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		defer program.Send(tui.QuitMsg{})
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-trans.Done():
				return fmt.Errorf("connection closed")
			case pkt := <-packets:
				sess.OnPacket(pkt)
			case cmd := <-commands:
				if cmd == "quit" {
					return nil
				}
				sess.ExecuteCmd(cmd)
			}
		}
	})

	g.Go(func() error {
		_, err := program.Run()
		trans.Close()
		return err
	})

	if cfg.Player.AutoLogin {
		commands <- "login"
	}

	if err := g.Wait(); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
