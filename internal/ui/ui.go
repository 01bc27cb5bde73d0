package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/damx/internal/catalog"
	"github.com/desertthunder/damx/internal/models"
	"github.com/desertthunder/damx/internal/prefs"
	"github.com/desertthunder/damx/internal/preview"
	"github.com/desertthunder/damx/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LibraryView ViewState = iota
	TypeFilterView
	DetailView
)

// Model represents the TUI application state.
type Model struct {
	ctx         context.Context
	view        ViewState
	engine      *tasks.LibraryEngine
	store       *prefs.Store
	downloadDir string
	width       int
	height      int

	catalog   *tasks.Catalog
	libView   catalog.View
	page      catalog.Page
	mediaList list.Model
	typeList  list.Model
	search    textinput.Model
	searching bool
	selected  *models.MediaItem

	status string
	err    error
	help   help.Model
	keys   keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, engine *tasks.LibraryEngine, store *prefs.Store, downloadDir string) *Model {
	search := textinput.New()
	search.Placeholder = "Search by title or extension"
	search.CharLimit = 120

	return &Model{
		ctx:         ctx,
		view:        LibraryView,
		engine:      engine,
		store:       store,
		downloadDir: downloadDir,
		libView:     catalog.View{Page: 1},
		search:      search,
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

// Init initializes the TUI by fetching the media catalog.
func (m *Model) Init() tea.Cmd {
	return m.fetchCatalog()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.mediaList.Width() == 0 {
			m.mediaList.SetSize(msg.Width-4, msg.Height-10)
		}
		if m.typeList.Width() == 0 {
			m.typeList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchKeys(msg)
		}
		switch m.view {
		case LibraryView:
			return m.handleLibraryKeys(msg)
		case TypeFilterView:
			return m.handleTypeFilterKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}

	case catalogFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		if !m.engine.Apply(msg.catalog) {
			return m, nil
		}
		m.catalog = msg.catalog
		m.rebuildTypeList()
		m.recompute()
		return m, nil

	case downloadDoneMsg:
		if msg.err != nil {
			m.status = styles.err.Render(fmt.Sprintf("Download failed: %v", msg.err))
			return m, nil
		}
		m.status = styles.ok.Render(fmt.Sprintf("Saved %s", msg.result.Path))
		m.recompute()
		return m, nil

	case favoriteToggledMsg:
		if msg.err != nil {
			m.status = styles.err.Render(fmt.Sprintf("Favorite failed: %v", msg.err))
			return m, nil
		}
		if msg.favorite {
			m.status = "Added to favorites"
		} else {
			m.status = "Removed from favorites"
		}
		m.recompute()
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress r to retry, q to quit", m.err))
	}

	switch m.view {
	case LibraryView:
		return m.renderLibrary()
	case TypeFilterView:
		return m.renderTypeFilter()
	case DetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.libView.Search = m.search.Value()
	m.libView.Page = 1
	m.recompute()
	return m, cmd
}

func (m *Model) handleLibraryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	case "t":
		m.view = TypeFilterView
		return m, nil
	case "v":
		m.libView.Mode = (m.libView.Mode + 1) % 3
		m.libView.Page = 1
		m.recompute()
		return m, nil
	case "s":
		if m.libView.Sort == catalog.SortRecent {
			m.libView.Sort = catalog.SortName
		} else {
			m.libView.Sort = catalog.SortRecent
		}
		m.recompute()
		return m, nil
	case "left", "h":
		if m.libView.Page > 1 {
			m.libView.Page--
			m.recompute()
		}
		return m, nil
	case "right", "l":
		if m.libView.Page < m.page.TotalPages {
			m.libView.Page++
			m.recompute()
		}
		return m, nil
	case "f":
		if item, ok := m.selectedMedia(); ok {
			return m, m.toggleFavorite(item.ID)
		}
		return m, nil
	case "d":
		if item, ok := m.selectedMedia(); ok {
			m.status = fmt.Sprintf("Downloading %s...", item.Title)
			return m, m.downloadItem(item)
		}
		return m, nil
	case "r":
		m.err = nil
		m.status = "Refreshing catalog..."
		return m, m.fetchCatalog()
	case "enter":
		if item, ok := m.selectedMedia(); ok {
			m.selected = &item
			m.view = DetailView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.mediaList, cmd = m.mediaList.Update(msg)
	return m, cmd
}

func (m *Model) handleTypeFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = LibraryView
		return m, nil
	case "enter", " ":
		selected := m.typeList.SelectedItem()
		if ti, ok := selected.(typeListItem); ok {
			tag := catalog.NormalizeType(ti.tag)
			if m.libView.TypeFilters == nil {
				m.libView.TypeFilters = map[string]bool{}
			}
			m.libView.TypeFilters[tag] = !m.libView.TypeFilters[tag]
			m.libView.Page = 1
			m.rebuildTypeList()
			m.recompute()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.typeList, cmd = m.typeList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.selected = nil
		m.view = LibraryView
		return m, nil
	case "f":
		if m.selected != nil {
			return m, m.toggleFavorite(m.selected.ID)
		}
		return m, nil
	case "d":
		if m.selected != nil {
			m.status = fmt.Sprintf("Downloading %s...", m.selected.Title)
			return m, m.downloadItem(*m.selected)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case LibraryView:
		m.mediaList, cmd = m.mediaList.Update(msg)
	case TypeFilterView:
		m.typeList, cmd = m.typeList.Update(msg)
	}
	return m, cmd
}

// selectedMedia returns the highlighted library item, if any.
func (m *Model) selectedMedia() (models.MediaItem, bool) {
	selected := m.mediaList.SelectedItem()
	if selected == nil {
		return models.MediaItem{}, false
	}
	mi, ok := selected.(mediaListItem)
	return mi.item, ok
}

// recompute reruns the pipeline over the current snapshot and rebuilds the
// visible list for the active page.
func (m *Model) recompute() {
	if m.catalog == nil {
		return
	}

	favorites := m.store.Favorites()
	downloads := m.store.Downloads()
	m.page = catalog.Compute(m.catalog.Items, m.libView, favorites, downloads)
	m.libView.Page = m.page.Number

	items := make([]list.Item, len(m.page.Items))
	for i, item := range m.page.Items {
		items[i] = mediaListItem{
			item:       item,
			favorite:   favorites.Has(item.ID),
			downloaded: downloads.Has(item.ID),
		}
	}

	if m.mediaList.Items() == nil {
		m.mediaList = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-10)
		m.mediaList.SetShowHelp(false)
		m.mediaList.SetFilteringEnabled(false)
	} else {
		m.mediaList.SetItems(items)
	}
	m.mediaList.Title = m.listTitle()
}

func (m *Model) rebuildTypeList() {
	if m.catalog == nil {
		return
	}

	tags := catalog.Types(m.catalog.Items)
	items := make([]list.Item, len(tags))
	for i, tag := range tags {
		items[i] = typeListItem{
			tag:      tag,
			selected: m.libView.TypeFilters[catalog.NormalizeType(tag)],
		}
	}

	if m.typeList.Items() == nil {
		m.typeList = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-8)
		m.typeList.Title = "Filter by Type"
		m.typeList.SetShowHelp(false)
		m.typeList.SetFilteringEnabled(false)
	} else {
		m.typeList.SetItems(items)
	}
}

func (m *Model) listTitle() string {
	title := fmt.Sprintf("Media Library • %s • %s", m.libView.Mode, m.libView.Sort)
	if m.page.TotalPages > 1 {
		title = fmt.Sprintf("%s • page %d/%d", title, m.page.Number, m.page.TotalPages)
	}
	return fmt.Sprintf("%s • %d items", title, m.page.TotalItems)
}

func (m *Model) fetchCatalog() tea.Cmd {
	return func() tea.Msg {
		c, err := m.engine.Refresh(m.ctx)
		return catalogFetchedMsg{catalog: c, err: err}
	}
}

func (m *Model) downloadItem(item models.MediaItem) tea.Cmd {
	return func() tea.Msg {
		result, err := m.engine.Download(m.ctx, item, m.downloadDir)
		return downloadDoneMsg{result: result, err: err}
	}
}

func (m *Model) toggleFavorite(id models.ItemID) tea.Cmd {
	return func() tea.Msg {
		favorite, err := m.store.ToggleFavorite(id)
		return favoriteToggledMsg{favorite: favorite, err: err}
	}
}

func (m *Model) renderLibrary() string {
	header := ""
	if m.searching || m.search.Value() != "" {
		header = m.search.View() + "\n"
	}

	status := ""
	if m.status != "" {
		status = m.status + "\n"
	}

	helpKeys := []key.Binding{
		m.keys.search, m.keys.types, m.keys.mode, m.keys.sort,
		m.keys.favorite, m.keys.download, m.keys.quit,
	}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s%s\n%s%s", header, m.mediaList.View(), status, helpView)
}

func (m *Model) renderTypeFilter() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.typeList.View(), helpView)
}

func (m *Model) renderDetail() string {
	if m.selected == nil {
		return styles.err.Render("No item selected\n\nPress esc to go back")
	}

	item := *m.selected
	strategy, _ := preview.Resolve(item)
	resolver := m.engine.Resolver()

	title := styles.title.Render(item.Title)
	badge := NewBold(string(TypeColor(item.Type))).Render(item.Badge())

	info := fmt.Sprintf(
		"%s\nExtension: .%s\nPreview: %s\nSource: %s\nCreated: %s",
		badge,
		item.Ext(),
		strategy,
		resolver.Source(item),
		item.CreatedAt.Format("2006-01-02"),
	)
	if item.Description != "" {
		info = fmt.Sprintf("%s\n\n%s", info, item.Description)
	}
	if m.store.IsFavorite(item.ID) {
		info = fmt.Sprintf("%s\n\n%s", info, styles.warn.Render("★ Favorited"))
	}

	status := ""
	if m.status != "" {
		status = "\n" + m.status
	}

	helpKeys := []key.Binding{m.keys.favorite, m.keys.download, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, status, helpView)
}
