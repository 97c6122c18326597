package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/torrentio/cli/internal/catalog"
	"github.com/torrentio/cli/internal/models"
	"github.com/torrentio/cli/internal/session"
	"github.com/torrentio/cli/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoadingView ViewState = iota
	GameListView
	GameDetailView
	DeveloperListView
	SearchView
)

// Model represents the TUI application state.
type Model struct {
	ctx           context.Context
	view          ViewState
	engine        *tasks.CatalogEngine
	session       *session.Manager
	width         int
	height        int
	pageSize      int
	criterion     catalog.Criterion
	genres        []string
	genreIdx      int // 0 selects all genres
	page          int
	cursor        int
	selectedGame  *models.Game
	developerList list.Model
	searchInput   textinput.Model
	searchQuery   string
	progressChan  chan tasks.ProgressUpdate
	progress      tasks.ProgressUpdate
	result        *tasks.RefreshResult
	err           error
	help          help.Model
	keys          keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
//
// The session manager is optional; when nil the account line is omitted.
func NewModel(ctx context.Context, engine *tasks.CatalogEngine, sess *session.Manager, pageSize int) *Model {
	if pageSize <= 0 {
		pageSize = catalog.DefaultPageSize
	}

	input := textinput.New()
	input.Placeholder = "search games"
	input.CharLimit = 64

	return &Model{
		ctx:         ctx,
		view:        LoadingView,
		engine:      engine,
		session:     sess,
		pageSize:    pageSize,
		page:        1,
		searchInput: input,
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

// Init starts the initial catalog refresh.
func (m *Model) Init() tea.Cmd {
	return m.startRefresh()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.developerList.Width() == 0 {
			m.developerList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case GameListView:
			return m.handleGameListKeys(msg)
		case GameDetailView:
			return m.handleDetailKeys(msg)
		case DeveloperListView:
			return m.handleDeveloperListKeys(msg)
		case SearchView:
			return m.handleSearchKeys(msg)
		case LoadingView:
			if msg.String() == "q" || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
		}
		return m, nil

	case catalogLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.result = msg.result
		m.genres = catalog.Genres(m.engine.Games().All())
		m.genreIdx = 0
		m.criterion = catalog.None()
		m.page = 1
		m.cursor = 0
		m.searchQuery = ""
		m.view = GameListView
		return m, nil

	case searchDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = GameListView
			return m, nil
		}
		m.searchQuery = msg.query
		m.genres = catalog.Genres(msg.games)
		m.genreIdx = 0
		m.criterion = catalog.None()
		m.page = 1
		m.cursor = 0
		m.view = GameListView
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()
	}

	if m.view == DeveloperListView {
		var cmd tea.Cmd
		m.developerList, cmd = m.developerList.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != GameListView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case LoadingView:
		return m.renderLoading()
	case GameListView:
		return m.renderGameList()
	case GameDetailView:
		return m.renderGameDetail()
	case DeveloperListView:
		return m.renderDeveloperList()
	case SearchView:
		return m.renderSearch()
	default:
		return ""
	}
}

// currentPage derives the visible page from the store and active criterion.
func (m *Model) currentPage() catalog.Page[models.Game] {
	games := catalog.Apply(m.engine.Games().All(), m.criterion)
	return catalog.Paginate(games, m.pageSize, m.page)
}

func (m *Model) handleGameListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := m.currentPage()

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.down):
		if m.cursor < len(page.Items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.prevPage):
		if page.CurrentPage > 1 {
			m.page = page.CurrentPage - 1
			m.cursor = 0
		}

	case key.Matches(msg, m.keys.nextPage):
		if page.CurrentPage < page.TotalPages {
			m.page = page.CurrentPage + 1
			m.cursor = 0
		}

	case key.Matches(msg, m.keys.enter):
		if m.cursor < len(page.Items) {
			game := page.Items[m.cursor]
			m.selectedGame = &game
			m.view = GameDetailView
		}

	case key.Matches(msg, m.keys.filter):
		m.genreIdx = (m.genreIdx + 1) % (len(m.genres) + 1)
		if m.genreIdx == 0 {
			m.criterion = catalog.None()
		} else {
			m.criterion = catalog.ByGenre(m.genres[m.genreIdx-1])
		}
		m.page = 1
		m.cursor = 0

	case key.Matches(msg, m.keys.search):
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		m.view = SearchView

	case key.Matches(msg, m.keys.developers):
		m.openDeveloperList()

	case key.Matches(msg, m.keys.refresh):
		m.err = nil
		m.view = LoadingView
		return m, m.startRefresh()
	}

	return m, nil
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.selectedGame = nil
		m.view = GameListView
	}
	return m, nil
}

func (m *Model) handleDeveloperListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = GameListView
		return m, nil
	}

	var cmd tea.Cmd
	m.developerList, cmd = m.developerList.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.searchInput.Blur()
		m.view = GameListView
		return m, nil
	case "enter":
		query := strings.TrimSpace(m.searchInput.Value())
		m.searchInput.Blur()
		if query == "" {
			m.view = GameListView
			return m, nil
		}
		return m, m.runSearch(query)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) openDeveloperList() {
	developers := m.engine.Developers().All()
	items := make([]list.Item, len(developers))
	for i, dev := range developers {
		items[i] = developerItem{developer: dev}
	}
	m.developerList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.developerList.Title = "Developers"
	m.developerList.SetSize(m.width-4, m.height-8)
	m.view = DeveloperListView
}

func (m *Model) startRefresh() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)

	go func() {
		result, err := m.engine.Refresh(m.ctx, m.progressChan)
		m.result = result
		m.err = err
		close(m.progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return catalogLoadedMsg{result: m.result, err: m.err}
		}

		update, ok := <-m.progressChan
		if !ok {
			m.progressChan = nil
			return catalogLoadedMsg{result: m.result, err: m.err}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) runSearch(query string) tea.Cmd {
	return func() tea.Msg {
		games, err := m.engine.Search(m.ctx, nil, query)
		return searchDoneMsg{query: query, games: games, err: err}
	}
}

func (m *Model) renderLoading() string {
	title := styles.title.Render("Loading Catalog")
	return fmt.Sprintf("%s\n\n%s\n%s", title, m.progress.Phase, m.progress.Message)
}

func (m *Model) renderGameList() string {
	page := m.currentPage()

	heading := "Games"
	if m.searchQuery != "" {
		heading = fmt.Sprintf("Games matching %q", m.searchQuery)
	}
	if m.criterion.Kind() == catalog.KindGenre {
		heading = fmt.Sprintf("%s - %s", heading, m.criterion.Genre())
	}
	title := styles.title.Render(heading)

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(styles.err.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	if len(page.Items) == 0 {
		b.WriteString(styles.warn.Render("No games found."))
		b.WriteString("\n")
	} else {
		for i, game := range page.Items {
			line := fmt.Sprintf("  %s", game.Title)
			if game.Genre != "" {
				line = fmt.Sprintf("%s %s", line, styles.help.Render("("+game.Genre+")"))
			}
			if i == m.cursor {
				line = styles.selected.Render("›") + line[1:]
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderWindow(page))
	b.WriteString("\n")
	b.WriteString(m.renderAccountLine())

	helpKeys := []key.Binding{m.keys.enter, m.keys.filter, m.keys.search, m.keys.developers, m.keys.quit}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(helpKeys))

	return b.String()
}

// renderWindow renders the pagination footer: a bounded run of page numbers
// plus an ellipsis shortcut to the final page when more pages exist.
func (m *Model) renderWindow(page catalog.Page[models.Game]) string {
	w := page.Window
	if len(w.Pages) == 0 {
		return ""
	}

	parts := []string{}
	if page.CurrentPage > 1 {
		parts = append(parts, "«")
	}
	for _, p := range w.Pages {
		label := fmt.Sprintf("%d", p)
		if p == page.CurrentPage {
			label = styles.selected.Render(fmt.Sprintf("[%d]", p))
		}
		parts = append(parts, label)
	}
	if w.Ellipsis {
		parts = append(parts, "…", fmt.Sprintf("%d", w.LastPage))
	}
	if page.CurrentPage < page.TotalPages {
		parts = append(parts, "»")
	}

	return strings.Join(parts, " ")
}

func (m *Model) renderAccountLine() string {
	if m.session == nil {
		return ""
	}
	if m.session.Authenticated() {
		return styles.ok.Render("● signed in")
	}
	return styles.help.Render("○ anonymous")
}

func (m *Model) renderGameDetail() string {
	if m.selectedGame == nil {
		return styles.err.Render("No game selected\n\nPress esc to go back")
	}

	game := m.selectedGame
	title := styles.title.Render(game.Title)

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	if game.Genre != "" {
		b.WriteString(fmt.Sprintf("Genre: %s\n", game.Genre))
	}
	if game.Description != "" {
		b.WriteString(fmt.Sprintf("\n%s\n", game.Description))
	}

	req := game.Requirements
	if req.GPU != "" || req.RAM != "" || req.CPU != "" {
		b.WriteString("\nRequirements\n")
		if req.GPU != "" {
			b.WriteString(fmt.Sprintf("  GPU: %s\n", req.GPU))
		}
		if req.RAM != "" {
			b.WriteString(fmt.Sprintf("  RAM: %s\n", req.RAM))
		}
		if req.CPU != "" {
			b.WriteString(fmt.Sprintf("  CPU: %s\n", req.CPU))
		}
	}

	if game.Download != "" {
		b.WriteString(fmt.Sprintf("\nDownload: %s\n", game.Download))
	}

	backKey := key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))
	helpKeys := []key.Binding{backKey, m.keys.quit}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(helpKeys))

	return b.String()
}

func (m *Model) renderDeveloperList() string {
	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.developerList.View(), helpView)
}

func (m *Model) renderSearch() string {
	title := styles.title.Render("Search Games")

	enterKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search"))
	helpKeys := []key.Binding{enterKey, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s", title, m.searchInput.View(), helpView)
}
