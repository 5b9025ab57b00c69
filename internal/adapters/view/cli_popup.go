package view

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mikey/mail-sorter/internal/core"
	"github.com/mikey/mail-sorter/internal/ports"
	"github.com/mikey/mail-sorter/internal/utils"
	"go.uber.org/zap"
)

// CliPopup draws the popup as text cards on a terminal
type CliPopup struct {
	service      *core.PopupService
	opener       ports.BrowserOpener
	text         *utils.TextProcessor
	logger       *zap.Logger
	out          io.Writer
	subjectWidth int
}

// NewCliPopup creates a new terminal popup
func NewCliPopup(
	service *core.PopupService,
	opener ports.BrowserOpener,
	text *utils.TextProcessor,
	logger *zap.Logger,
	out io.Writer,
	subjectWidth int,
) *CliPopup {
	return &CliPopup{
		service:      service,
		opener:       opener,
		text:         text,
		logger:       logger,
		out:          out,
		subjectWidth: subjectWidth,
	}
}

// Refresh shows the loading line, reloads, and replaces it with the result
func (p *CliPopup) Refresh(ctx context.Context) (*core.PopupState, error) {
	fmt.Fprintln(p.out, core.MsgLoading)
	state := p.service.Load(ctx)
	p.render(state)
	return state, nil
}

// OpenLogin opens the login page, printing the URL if no browser could be started
func (p *CliPopup) OpenLogin(ctx context.Context) error {
	loginURL := p.service.LoginURL()
	if err := p.opener.Open(ctx, loginURL); err != nil {
		p.logger.Warn("Failed to open browser", zap.Error(err))
		fmt.Fprintf(p.out, "Open this page to log in: %s\n", loginURL)
		return err
	}
	fmt.Fprintln(p.out, "Login page opened in your browser. Refresh once you are signed in.")
	return nil
}

// Run refreshes once, then handles one command per input line:
// "r" or an empty line refreshes, "l" opens the login page, "q" quits.
// Cancelling ctx quits cleanly even while waiting for input.
func (p *CliPopup) Run(ctx context.Context, in io.Reader) error {
	state, _ := p.Refresh(ctx)
	p.prompt(state)

	done := make(chan struct{})
	defer close(done)
	lines, scanErr := readLines(in, done)

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(p.out)
			p.logger.Debug("Popup closed", zap.Error(ctx.Err()))
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-scanErr
			}

			switch strings.ToLower(strings.TrimSpace(line)) {
			case "", "r", "refresh":
				state, _ = p.Refresh(ctx)
			case "l", "login":
				_ = p.OpenLogin(ctx)
			case "q", "quit", "exit":
				return nil
			default:
				fmt.Fprintln(p.out, "Unknown command.")
			}
			p.prompt(state)
		}
	}
}

// readLines scans in on its own goroutine so a blocked read never holds up
// the caller. lines is closed at EOF, after the scan error has been sent.
func readLines(in io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		scanErr <- scanner.Err()
		close(lines)
	}()
	return lines, scanErr
}

func (p *CliPopup) prompt(state *core.PopupState) {
	if state != nil && state.Status == core.StateNotLoggedIn {
		fmt.Fprint(p.out, "[r]efresh [l]ogin [q]uit> ")
		return
	}
	fmt.Fprint(p.out, "[r]efresh [q]uit> ")
}

func (p *CliPopup) render(state *core.PopupState) {
	switch state.Status {
	case core.StateEmails:
		if state.Identity != "" {
			fmt.Fprintf(p.out, "Signed in as %s\n", p.text.SanitizeText(state.Identity))
		}
		fmt.Fprintf(p.out, "Threshold: %.2f\n\n", state.Threshold)
		for _, card := range state.Cards {
			p.renderCard(card)
		}
	case core.StateNotLoggedIn:
		fmt.Fprintln(p.out, state.Message())
		fmt.Fprintf(p.out, "Log in at %s\n", state.LoginURL)
	default:
		fmt.Fprintln(p.out, state.Message())
	}
}

func (p *CliPopup) renderCard(card core.Card) {
	fmt.Fprintln(p.out, p.text.ProcessText(card.Subject, p.subjectWidth))
	if card.From != "" {
		fmt.Fprintf(p.out, "From: %s\n", p.text.ProcessText(card.From, p.subjectWidth))
	}
	fmt.Fprintln(p.out, p.text.SanitizeText(card.Label))
	fmt.Fprintf(p.out, "Confidence: %.2f%%\n", card.Confidence)
	fmt.Fprintln(p.out, "---")
}
