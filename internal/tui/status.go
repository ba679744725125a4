package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// runStatus is the line above the result pane. It animates while an entry
// runs and then shows the outcome with the elapsed time.
type runStatus struct {
	spinner spinner.Model
	title   string
	started time.Time
	elapsed time.Duration
	done    bool
	outcome string
	err     error
}

func newRunStatus(title string, now time.Time) runStatus {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle
	return runStatus{spinner: s, title: title, started: now}
}

func (s runStatus) tick() tea.Cmd {
	return s.spinner.Tick
}

// update advances the animation. Ticks arriving after the run finished are
// dropped so the spinner stops scheduling itself.
func (s runStatus) update(msg tea.Msg) (runStatus, tea.Cmd) {
	tick, ok := msg.(spinner.TickMsg)
	if !ok || s.done {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(tick)
	return s, cmd
}

func (s runStatus) succeed(outcome string, now time.Time) runStatus {
	s.done, s.outcome, s.err = true, outcome, nil
	s.elapsed = now.Sub(s.started)
	return s
}

func (s runStatus) fail(err error, now time.Time) runStatus {
	s.done, s.outcome, s.err = true, "", err
	s.elapsed = now.Sub(s.started)
	return s
}

func (s runStatus) view() string {
	if !s.done {
		return s.spinner.View() + " " + fmt.Sprintf("Running %s...", s.title)
	}
	took := MutedStyle.Render(fmt.Sprintf("(%s)", s.elapsed.Round(time.Millisecond)))
	if s.err != nil {
		return ErrorStyle.Render(SymbolCross+" "+s.title+" failed") + " " + took
	}
	return SuccessStyle.Render(SymbolCheck+" "+s.outcome) + " " + took
}
