package status

import (
	"errors"
	"fmt"
	"io"

	"github.com/bnema/daily-activity-cli/internal/application"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type frameRenderedMsg struct {
	frame string
}

// frameModel renders a single dashboard frame and quits.
type frameModel struct {
	render tea.Cmd
	frame  string
}

func renderFrame(dashboard application.Dashboard, opts RenderOptions) tea.Cmd {
	return func() tea.Msg {
		return frameRenderedMsg{frame: renderView(dashboard, opts, newStyles())}
	}
}

func (m frameModel) Init() tea.Cmd {
	return m.render
}

func (m frameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if rendered, ok := msg.(frameRenderedMsg); ok {
		m.frame = rendered.frame
		return m, tea.Quit
	}
	return m, nil
}

func (m frameModel) View() string {
	return m.frame
}

// Render returns the dashboard as styled terminal text.
func Render(dashboard application.Dashboard, opts RenderOptions) (string, error) {
	program := tea.NewProgram(
		frameModel{render: renderFrame(dashboard, opts)},
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
	)

	finalModel, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("render dashboard: %w", err)
	}

	frame, ok := finalModel.(frameModel)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}
	return frame.frame, nil
}
