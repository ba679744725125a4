package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/ecomadmin/internal/catalog"
	"github.com/vvka-141/ecomadmin/internal/tui/components"
	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

// RunFunc executes a catalog entry with raw form values.
type RunFunc func(ctx context.Context, name string, args map[string]string) (*catalog.Result, error)

// RenderFunc turns a result into the text shown in the result pane.
type RenderFunc func(*catalog.Result) (string, error)

type browserState int

const (
	stateSelect browserState = iota
	stateForm
	stateRunning
	stateResult
)

// queryDoneMsg carries the outcome of a RunFunc call back into Update.
type queryDoneMsg struct {
	entry  string
	result *catalog.Result
	err    error
}

// Browser is the interactive catalog: pick an entry, fill its parameters,
// watch it run, then scroll the rendered result and go back for another.
type Browser struct {
	ctx     context.Context
	catalog *catalog.Catalog
	run     RunFunc
	render  RenderFunc
	keys    KeyMap

	state    browserState
	selector components.Selector
	form     components.Form
	status   runStatus
	result   viewport.Model
	entry    *catalog.Entry
	now      func() time.Time

	width  int
	height int
}

// NewBrowser creates a Browser over every entry of cat. Panics on nil
// dependencies.
func NewBrowser(ctx context.Context, cat *catalog.Catalog, run RunFunc, render RenderFunc) *Browser {
	if cat == nil {
		panic("catalog cannot be nil")
	}
	if run == nil {
		panic("run cannot be nil")
	}
	if render == nil {
		panic("render cannot be nil")
	}

	entries := cat.Entries()
	options := make([]components.Option, 0, len(entries))
	for _, e := range entries {
		options = append(options, components.Option{
			Label:       e.Title,
			Description: e.Description,
			Value:       e.Name,
			Group:       string(e.Group),
		})
	}

	return &Browser{
		ctx:      ctx,
		catalog:  cat,
		run:      run,
		render:   render,
		keys:     DefaultKeyMap(),
		state:    stateSelect,
		selector: components.NewSelector("E-commerce admin catalog", options),
		result:   viewport.New(80, 20),
		now:      time.Now,
		width:    80,
		height:   24,
	}
}

// Init implements tea.Model.
func (b *Browser) Init() tea.Cmd {
	return b.selector.Init()
}

// Update implements tea.Model.
func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width, b.height = msg.Width, msg.Height
		b.result.Width = msg.Width
		b.result.Height = max(1, msg.Height-4)
		var cmd tea.Cmd
		b.selector, cmd = b.selector.Update(msg)
		return b, cmd
	case tea.KeyMsg:
		if key.Matches(msg, b.keys.Abort) {
			return b, tea.Quit
		}
	case components.OptionSelectedMsg:
		return b.open(msg.Option.Value)
	case components.SelectionCancelledMsg:
		return b, tea.Quit
	case components.FormSubmittedMsg:
		return b.start(msg.Values)
	case components.FormCancelledMsg:
		return b.back()
	case queryDoneMsg:
		return b.finish(msg)
	}

	var cmd tea.Cmd
	switch b.state {
	case stateSelect:
		b.selector, cmd = b.selector.Update(msg)
	case stateForm:
		b.form, cmd = b.form.Update(msg)
	case stateRunning:
		b.status, cmd = b.status.update(msg)
	case stateResult:
		if km, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(km, b.keys.Quit):
				return b, tea.Quit
			case key.Matches(km, b.keys.Back), key.Matches(km, b.keys.Select):
				return b.back()
			}
		}
		b.result, cmd = b.result.Update(msg)
	}
	return b, cmd
}

// open shows the parameter form of the named entry, or runs it straight
// away when it takes no parameters.
func (b *Browser) open(name string) (tea.Model, tea.Cmd) {
	entry, err := b.catalog.Lookup(name)
	if err != nil {
		return b.finish(queryDoneMsg{entry: name, err: err})
	}
	b.entry = entry
	if len(entry.Params) == 0 {
		return b.start(map[string]string{})
	}

	fields := make([]components.TextField, 0, len(entry.Params))
	for _, p := range entry.Params {
		fields = append(fields, paramField(p))
	}
	b.form = components.NewForm(entry.Title, fields...)
	b.state = stateForm
	return b, b.form.Init()
}

func (b *Browser) start(values map[string]string) (tea.Model, tea.Cmd) {
	entry := b.entry
	b.state = stateRunning
	b.status = newRunStatus(entry.Title, b.now())

	ctx, run := b.ctx, b.run
	exec := func() tea.Msg {
		result, err := run(ctx, entry.Name, values)
		return queryDoneMsg{entry: entry.Name, result: result, err: err}
	}
	return b, tea.Batch(b.status.tick(), exec)
}

func (b *Browser) finish(msg queryDoneMsg) (tea.Model, tea.Cmd) {
	b.state = stateResult

	if msg.err != nil {
		b.status = b.status.fail(msg.err, b.now())
		b.result.SetContent(ErrorStyle.Render(describeError(msg.err)))
		b.result.GotoTop()
		return b, nil
	}

	content, err := b.render(msg.result)
	if err != nil {
		b.status = b.status.fail(err, b.now())
		b.result.SetContent(ErrorStyle.Render(err.Error()))
		return b, nil
	}
	b.status = b.status.succeed(summary(msg.entry, msg.result), b.now())
	b.result.SetContent(content)
	b.result.GotoTop()
	return b, nil
}

func (b *Browser) back() (tea.Model, tea.Cmd) {
	b.state = stateSelect
	b.entry = nil
	b.selector = b.selector.Reset()
	return b, nil
}

// View implements tea.Model.
func (b *Browser) View() string {
	switch b.state {
	case stateForm:
		var s strings.Builder
		if b.entry.Description != "" {
			s.WriteString(SubtitleStyle.Render(b.entry.Description))
			s.WriteString("\n")
		}
		s.WriteString(b.form.View())
		return s.String()
	case stateRunning:
		return "\n  " + b.status.view() + "\n"
	case stateResult:
		return b.status.view() + "\n\n" + b.result.View() + "\n" + HelpStyle.Render(b.keys.ResultHelpText())
	default:
		return b.selector.View()
	}
}

func paramField(p catalog.Param) components.TextField {
	label := p.Label
	if label == "" {
		label = p.Name
	}
	placeholder := p.Kind.String()
	if p.Optional {
		placeholder += " (optional)"
	}
	return components.NewTextField(label, placeholder).
		WithName(p.Name).
		WithRequired(!p.Optional).
		WithValidator(func(v string) error {
			err := p.Check(v)
			var ve *ecomadmin.ValidationError
			if errors.As(err, &ve) {
				return components.FieldError(ve.Reason)
			}
			return err
		})
}

func summary(entry string, res *catalog.Result) string {
	if res == nil {
		return entry
	}
	switch res.Shape {
	case catalog.ShapeInsert:
		return fmt.Sprintf("%s: inserted id %d", entry, res.InsertedID)
	case catalog.ShapeMetrics:
		return fmt.Sprintf("%s: %d metrics", entry, len(res.Metrics))
	default:
		return fmt.Sprintf("%s: %d rows", entry, len(res.Rows))
	}
}

func describeError(err error) string {
	msg := err.Error()
	if errors.Is(err, ecomadmin.ErrValidation) {
		return "Invalid input:\n" + msg
	}
	return msg
}

// RunBrowser runs b full-screen until the user quits or ctx is cancelled.
func RunBrowser(ctx context.Context, b *Browser) error {
	p := tea.NewProgram(b, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("catalog browser failed: %w", err)
	}
	return nil
}
