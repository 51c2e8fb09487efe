package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"
	"golang.org/x/term"

	"userportal/cli/internal/authstate"
	"userportal/cli/internal/backend"
	apperrors "userportal/cli/internal/errors"
	"userportal/cli/internal/httperrors"
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

// startSpinner shows text next to a rotating frame until the returned function
// is called. Nothing is drawn when stdout is not a terminal.
func startSpinner(text string) func() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return func() {}
	}

	cursor.Hide()
	area, err := pterm.DefaultArea.WithRemoveWhenDone(true).Start()
	if err != nil {
		cursor.Show()
		return func() {}
	}

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		t := time.NewTicker(120 * time.Millisecond)
		defer t.Stop()
		i := 0
		for {
			select {
			case <-t.C:
				area.Update(fmt.Sprintf("%s %s", spinnerFrames[i%len(spinnerFrames)], text))
				i++
			case <-stop:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			wg.Wait()
			area.Stop()
			cursor.Show()
		})
	}
}

// printEnvelope renders an envelope as the backend returned it.
func printEnvelope(w io.Writer, env *backend.Envelope) {
	if env == nil {
		return
	}
	status := pterm.Green(env.Code)
	if !env.OK() {
		status = pterm.Yellow(env.Code)
	}
	pterm.Fprintln(w, pterm.Sprintf("Code:    %s", status))
	if env.Message != "" {
		pterm.Fprintln(w, pterm.Sprintf("Message: %s", env.Message))
	}
	if data := formatData(env.Data); data != "" {
		pterm.Fprintln(w, "Data:")
		pterm.Fprintln(w, data)
	}
}

// formatData indents a JSON payload. Empty and null payloads yield "".
func formatData(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	var out bytes.Buffer
	if err := json.Indent(&out, trimmed, "  ", "  "); err != nil {
		return "  " + string(trimmed)
	}
	return "  " + out.String()
}

// printFlags renders the login and authorization flags.
func printFlags(w io.Writer, f authstate.Flags) {
	pterm.Fprintln(w, pterm.Sprintf("Logged in:  %s", yesNo(f.LoggedIn)))
	pterm.Fprintln(w, pterm.Sprintf("Authorized: %s", yesNo(f.Authorized)))
}

func yesNo(b bool) string {
	if b {
		return pterm.Green("yes")
	}
	return pterm.Red("no")
}

// presentError prints err, naming the backend host when it could not be reached.
func presentError(err error, action string) {
	httperrors.Present(err, action)
	if currentBaseURL != "" && apperrors.Is(err, apperrors.Transport) {
		pterm.Println(pterm.Gray(fmt.Sprintf("   Server: %s", httperrors.ExtractHostFromURL(currentBaseURL))))
	}
}
