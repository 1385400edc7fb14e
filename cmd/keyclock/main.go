// keyclock shows a live clock while echoing the last key pressed, with a
// "no activity" notice after a quiet period. It runs until the quit key is
// pressed or the process is interrupted.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jask/keyclock/internal/config"
	"github.com/jask/keyclock/internal/coord"
	"github.com/jask/keyclock/internal/term"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	term.ConfigureEscDelay(cfg.Term.EscDelay)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := coord.New(coord.Config{
		Period:        cfg.Clock.Period,
		PollInterval:  cfg.Input.PollInterval,
		ResetDelay:    cfg.Reset.Delay,
		QueueCapacity: cfg.Clock.QueueCapacity,
		QuitKey:       cfg.QuitCode(),
		Decoupled:     cfg.Decoupled(),
		Layout:        term.DefaultLayout(),
	}, term.NewScreen(os.Stdout))

	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("keyclock: %v", err)
	}
}
