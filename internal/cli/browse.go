package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/yuletree/pkg/config"
	"github.com/matzehuels/yuletree/pkg/render"
	"github.com/matzehuels/yuletree/pkg/shell"
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var flags treeFlags

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the tree's messages in the terminal",
		Long: `Open the tree's messages in the terminal.

Every ornament is listed with its colour; select one to reveal its
message, as clicking it on the page would. Esc hides the message again.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			flags.apply(&cfg)
			return c.runBrowse(cmd.Context(), cfg)
		},
	}
	flags.register(cmd)

	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, cfg config.Config) error {
	opts, err := pipelineOptions(cfg)
	if err != nil {
		return err
	}
	runner, closeAll, err := c.newRunner(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer closeAll()

	scene, err := runner.Scene(ctx, opts)
	if err != nil {
		return err
	}
	if len(scene.Items()) == 0 {
		printInfo("No messages to browse; the tree is bare")
		return nil
	}

	_, err = tea.NewProgram(newBrowseModel(scene), tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}

// =============================================================================
// browseModel - interactive ornament selection
// =============================================================================

type browseKeys struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Dismiss key.Binding
	Quit    key.Binding
}

func (k browseKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Dismiss, k.Quit}
}

func (k browseKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var defaultBrowseKeys = browseKeys{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Select:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("⏎", "open")),
	Dismiss: key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "close")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

var (
	browseSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGold)
	browseNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	browseDialogStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorRed).Padding(1, 3)
)

// burstRecorder keeps the last burst the shell requested.
type burstRecorder struct {
	last *shell.Burst
}

func (r *burstRecorder) Celebrate(b shell.Burst) error {
	r.last = &b
	return nil
}

type browseModel struct {
	scene  render.Scene
	items  []shell.Item
	shell  *shell.Shell
	bursts *burstRecorder
	keys   browseKeys
	help   help.Model

	cursor int
	offset int
	height int
	width  int
}

func newBrowseModel(scene render.Scene) browseModel {
	rec := &burstRecorder{}
	m := browseModel{
		scene:  scene,
		items:  scene.Items(),
		shell:  shell.New(rec),
		bursts: rec,
		keys:   defaultBrowseKeys,
		help:   help.New(),
		height: 12,
		width:  60,
	}
	m.shell.SetBurst(terminalBurst(m.width))
	return m
}

// terminalBurst scales the default burst to a terminal width so the
// confetti line spans about half of it.
func terminalBurst(width int) shell.Burst {
	b := shell.DefaultBurst()
	b.ParticleCount = max(width, 10)
	return b
}

func (m browseModel) Init() tea.Cmd { return nil }

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case key.Matches(msg, m.keys.Select):
			if len(m.items) > 0 {
				it := m.items[m.cursor]
				m.shell.SelectItem(it, clickEvent(m.scene, it))
			}
		case key.Matches(msg, m.keys.Dismiss):
			m.shell.Dismiss()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.shell.SetBurst(terminalBurst(msg.Width))
		m.height = max(msg.Height-14, 5)
	}
	return m, nil
}

// clickEvent describes a click on it with the tree's view box as the
// viewport.
func clickEvent(scene render.Scene, it shell.Item) shell.ClickEvent {
	x, y := it.Placed.X, it.Placed.Y
	if it.Kind == shell.KindStar {
		x, y = scene.Spec.Star.X, scene.Spec.Star.Y
	}
	return shell.ClickEvent{
		TargetX:        x,
		TargetY:        y,
		ViewportWidth:  scene.Spec.ViewBox.Width,
		ViewportHeight: scene.Spec.ViewBox.Height,
	}
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("★ " + m.scene.Spec.Name + " tree"))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.items))
	for i := m.offset; i < end; i++ {
		b.WriteString(m.itemLine(i))
		b.WriteString("\n")
	}
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.items))))
	b.WriteString("\n\n")

	if msg, ok := m.shell.Selected(); ok {
		if m.bursts.last != nil {
			b.WriteString(confetti(*m.bursts.last, m.width))
			b.WriteString("\n")
		}
		b.WriteString(browseDialogStyle.Render(msg.Text))
		b.WriteString("\n\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m browseModel) itemLine(i int) string {
	it := m.items[i]
	cursor := "  "
	if i == m.cursor {
		cursor = "▸ "
	}

	var swatch, label string
	if it.Kind == shell.KindStar {
		swatch = lipgloss.NewStyle().Foreground(lipgloss.Color(m.scene.Spec.Star.Color)).Render("★")
		label = "star topper"
	} else {
		swatch = lipgloss.NewStyle().Foreground(lipgloss.Color(it.Placed.Color)).Render("●")
		label = fmt.Sprintf("ornament %-2d row %d", it.Placed.Index+1, it.Placed.Row+1)
	}

	style := browseNormalStyle
	if i == m.cursor {
		style = browseSelectedStyle
	}
	return cursor + swatch + " " + style.Render(label)
}

// confetti draws a burst as a line of particles centred on its origin.
func confetti(b shell.Burst, width int) string {
	if len(b.Colors) == 0 || b.ParticleCount <= 0 || width <= 0 {
		return ""
	}
	glyphs := []string{"✦", "•", "✧", "*"}
	n := min(b.ParticleCount/2, width)
	start := int(b.OriginX*float64(width)) - n/2
	start = max(0, min(start, width-n))

	var s strings.Builder
	s.WriteString(strings.Repeat(" ", start))
	for i := range n {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(b.Colors[i%len(b.Colors)]))
		s.WriteString(style.Render(glyphs[i%len(glyphs)]))
	}
	return s.String()
}
