package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/pokermania/pokercli/internal/bot"
	"github.com/pokermania/pokercli/internal/config"
	"github.com/pokermania/pokercli/internal/protocol"
	"github.com/pokermania/pokercli/internal/session"
	"github.com/pokermania/pokercli/internal/transport"
)

type BotCmd struct {
	Config  string        `kong:"default='pokercli.hcl',help='Path to the HCL config file'"`
	Server  string        `kong:"default='',help='Override the server URL from the config'"`
	Count   int           `kong:"default='1',help='Number of bots to run'"`
	Stagger time.Duration `kong:"default='500ms',help='Delay between bot connections'"`
	Seed    int64         `kong:"default='0',help='Policy RNG seed (0 seeds from the clock)'"`
}

func (c *BotCmd) Run() error {
	cfg, err := loadConfig(c.Config)
	if err != nil {
		return err
	}
	if c.Server != "" {
		cfg.Server.URL = c.Server
	}
	if c.Count < 1 {
		return fmt.Errorf("count must be at least 1")
	}

	level, err := log.ParseLevel(cfg.UI.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})

	creds := config.LoadCredentials()
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var g errgroup.Group
	for i := 0; i < c.Count; i++ {
		i := i
		g.Go(func() error {
			// Stagger connections so the bots don't race each
			// other for the same seat.
			time.Sleep(time.Duration(i) * c.Stagger)
			return runBot(cfg, creds, logger.With("bot", i), seed+int64(i), i)
		})
	}
	return g.Wait()
}

// runBot runs one bot to completion. The transport's read pump delivers
// packets serially, so the session needs no extra funneling here; every
// command the bot issues runs inside a packet handler on that same
// goroutine.
func runBot(cfg *config.Config, creds config.Credentials, logger *log.Logger, seed int64, index int) error {
	b := bot.New(logger, seed)

	var sess *session.Session
	trans := transport.New(cfg.Server.URL, func(pkt protocol.Packet) {
		sess.OnPacket(pkt)
	}, logger, quartz.NewReal())

	sess = session.New(trans, b, logger)
	sess.SetCredentials(fmt.Sprintf("%s%d", creds.Username, index), creds.Password)
	b.Bind(sess)

	if err := trans.Connect(); err != nil {
		return fmt.Errorf("connecting to %s: %w", cfg.Server.URL, err)
	}
	defer trans.Close()

	b.Start()
	<-trans.Done()
	return nil
}
