package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/techdex-labs/techdex-cli/internal/core/domain"
)

// maxVisibleResults caps how many matches are rendered at once.
const maxVisibleResults = 10

// searchCompleted carries search results back to the model.
type searchCompleted struct {
	matches []domain.SearchMatch
	err     error
}

// App is the TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *Styles

	// input is the query input field.
	input textinput.Model

	// query is the last submitted search query.
	query string

	// matches holds the current search results.
	matches []domain.SearchMatch

	// selected is the index of the highlighted result.
	selected int

	// focusInput indicates whether keystrokes go to the input field.
	focusInput bool

	// searching indicates a search is in flight.
	searching bool

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	ti := textinput.New()
	ti.Placeholder = "Search service documentation..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	return &App{
		ports:      ports,
		ctx:        context.Background(),
		styles:     DefaultStyles(),
		input:      ti,
		focusInput: true,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.SetWindowTitle("techdex - Service Documentation"),
	)
}

// performSearch returns a command that runs the search asynchronously.
func (a *App) performSearch(query string) tea.Cmd {
	return func() tea.Msg {
		matches, err := a.ports.Search.Search(a.ctx, query, domain.SearchFilters{}, maxVisibleResults)
		return searchCompleted{matches: matches, err: err}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		inputWidth := msg.Width - 14
		if inputWidth < 20 {
			inputWidth = 20
		}
		a.input.Width = inputWidth
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case searchCompleted:
		a.searching = false
		if msg.err != nil {
			a.err = msg.err
			a.matches = nil
			return a, nil
		}
		a.err = nil
		a.matches = msg.matches
		a.selected = 0
		if len(a.matches) > 0 {
			a.focusInput = false
			a.input.Blur()
		}
		return a, nil
	}

	if a.focusInput {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

// handleKeyMsg routes key presses depending on focus.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	if a.focusInput {
		switch msg.Type {
		case tea.KeyEnter:
			query := strings.TrimSpace(a.input.Value())
			if query == "" {
				return a, nil
			}
			a.query = query
			a.searching = true
			a.err = nil
			return a, a.performSearch(query)

		case tea.KeyEsc:
			return a, tea.Quit
		}

		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit

	case "esc", "n", "/":
		a.focusInput = true
		a.input.Reset()
		return a, a.input.Focus()

	case "up", "k":
		if a.selected > 0 {
			a.selected--
		}
		return a, nil

	case "down", "j":
		if a.selected < len(a.matches)-1 {
			a.selected++
		}
		return a, nil
	}

	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	sections := []string{
		a.styles.Title.Render("techdex"),
		"",
		a.renderInput(),
		"",
		a.renderResults(),
		"",
		a.renderStatus(),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) renderInput() string {
	label := a.styles.Title.Render("Search: ")
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, a.styles.InputField.Render(a.input.View()))
}

func (a *App) renderResults() string {
	if a.err != nil {
		return a.styles.Error.Render(fmt.Sprintf("Error: %v", a.err))
	}
	if a.searching {
		return a.styles.Muted.Render("Searching...")
	}
	if a.query == "" {
		return a.styles.Muted.Render("Type a query and press Enter.")
	}
	if len(a.matches) == 0 {
		return a.styles.Muted.Render(fmt.Sprintf("No results for %q.", a.query))
	}

	lines := make([]string, 0, len(a.matches)*2)
	for i, m := range a.matches {
		if i >= maxVisibleResults {
			break
		}
		header := fmt.Sprintf("%d. %s (%.3f)", i+1, m.DocumentTitle, m.Score)
		if i == a.selected {
			lines = append(lines, a.styles.Selected.Render(header))
		} else {
			lines = append(lines, a.styles.Normal.Render(header))
		}
		lines = append(lines, a.styles.Muted.Render("   "+truncate(m.Snippet, a.snippetWidth())))
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderStatus() string {
	var status string
	switch {
	case a.searching:
		status = "searching"
	case a.err != nil:
		status = "error"
	case a.query != "":
		status = fmt.Sprintf("%d results for %q", len(a.matches), a.query)
	default:
		status = "ready"
	}

	help := "enter search | j/k navigate | n new search | q quit"
	bar := a.styles.StatusBar.Render(status)
	return lipgloss.JoinVertical(lipgloss.Left, bar, a.styles.Help.Render(help))
}

// snippetWidth returns the space available for snippet text.
func (a *App) snippetWidth() int {
	w := a.width - 6
	if w < 20 {
		w = 20
	}
	return w
}

func truncate(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// Query returns the last submitted query.
func (a *App) Query() string {
	return a.query
}

// Results returns the current search results.
func (a *App) Results() []domain.SearchMatch {
	return a.matches
}

// SelectedIndex returns the index of the highlighted result.
func (a *App) SelectedIndex() int {
	return a.selected
}

// Err returns the last error, if any.
func (a *App) Err() error {
	return a.err
}
