package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/wolfeidau/hrconsole/internal/inactivity"
)

type BrowseCmd struct {
	Timeout time.Duration `help:"Idle period before forced logout (0 uses config)"`
}

// Run drives an interactive session: each input line navigates to a view and
// counts as activity. When the idle countdown expires the session is logged
// out, the user is told once, and the loop drops back to the login view.
func (b *BrowseCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := buildApp(globals)
	if err != nil {
		return err
	}

	timeout := b.Timeout
	if timeout == 0 {
		timeout = app.cfg.InactivityTimeout
	}

	expired := make(chan struct{})
	monitor := inactivity.NewMonitor(inactivity.Config{Timeout: timeout}, func() {
		// The clear must finish before the redirect, so a re-read of the
		// store on the login view never sees stale state.
		app.authn.Logout()
		app.router.ForceLogin(sessionExpiredNotice)
		close(expired)
	})
	monitor.OnWarning(func(remaining time.Duration) {
		fmt.Printf("\nInactive session: logging out in %s\n> ", remaining)
	})
	monitor.Start()
	defer monitor.Stop()

	fmt.Printf("Current view: %s (type a path to navigate, 'quit' to exit)\n", app.router.Current())

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- strings.TrimSpace(scanner.Text())
		}
		close(lines)
	}()

	for {
		fmt.Print("> ")
		select {
		case <-expired:
			app.printNotice()
			fmt.Printf("Current view: %s\n", app.router.Current())
			return nil

		case <-ctx.Done():
			return ctx.Err()

		case line, ok := <-lines:
			if !ok || line == "quit" {
				return nil
			}
			monitor.Touch(inactivity.SignalKeyPress)
			if line == "" {
				continue
			}

			rendered := app.router.Navigate(line)
			app.printNotice()
			fmt.Printf("Current view: %s\n", rendered)
		}
	}
}
