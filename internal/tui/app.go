package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"akiba/internal/api"
	"akiba/internal/config"
	"akiba/internal/debuglog"
	"akiba/internal/discovery"
	"akiba/internal/launcher"
	"akiba/internal/ledger"
	"akiba/internal/search"
	"akiba/internal/session"
)

type App struct {
	config   *config.Config
	client   *api.Client
	details  *api.DetailCache
	sessions *session.Store
	launcher *launcher.Launcher
	searcher search.Searcher

	keyHandler *KeyHandler
	log        zerolog.Logger

	view         View
	previousView View
	width        int
	height       int

	// Login
	identInput textinput.Model
	passInput  textinput.Model
	loginFocus int // 0 identifier, 1 password
	signingIn  bool
	user       *api.User

	// Library: server-side filtering via the discovery engine. The engine is
	// created on entering the section and discarded on leaving it; engineGen
	// stamps every async message so late responses for a discarded engine
	// are dropped here rather than applied.
	engine      *discovery.Engine
	engineGen   int
	searchInput textinput.Model
	contentList list.Model

	// Reader
	viewport        viewport.Model
	currentContent  *api.ContentSummary
	currentDetail   *api.ContentDetail
	loadingContent  bool
	glamourRenderer *glamour.TermRenderer
	rendererWidth   int

	// Full-list sections, filtered client-side through the Searcher.
	paths           []api.LearningPath
	webinars        []api.Webinar
	challenges      []api.Challenge
	certificates    []api.Certificate
	pathList        list.Model
	webinarList     list.Model
	challengeList   list.Model
	certificateList list.Model
	filterInput     textinput.Model
	filterApplied   bool

	// Transactions: simple accumulating pager plus derived summary.
	transactions []api.Transaction
	txTotal      int
	txPage       int
	txLoading    bool
	txList       list.Model
	txSummary    ledger.Summary

	status     string
	statusKind StatusKind
	err        error
}

func newSectionList(title string) list.Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	return l
}

func NewApp(cfg *config.Config, client *api.Client, sessions *session.Store) *App {
	ApplyTheme(cfg)

	details, err := api.NewDetailCache(client)
	if err != nil {
		details = nil
	}

	searcher, err := search.NewSearcher(cfg)
	if err != nil {
		searcher = search.NewEngine(cfg.Search.MinQueryLen)
	}

	opener, err := launcher.NewLauncher()
	if err != nil {
		opener = nil
	}

	identInput := textinput.New()
	identInput.Placeholder = "Email or phone number"
	identInput.Focus()

	passInput := textinput.New()
	passInput.Placeholder = "Password"
	passInput.EchoMode = textinput.EchoPassword
	passInput.EchoCharacter = '•'

	searchInput := textinput.New()
	searchInput.Placeholder = "Search the library…"

	filterInput := textinput.New()
	filterInput.Placeholder = "Filter…"

	app := &App{
		config:          cfg,
		client:          client,
		details:         details,
		sessions:        sessions,
		launcher:        opener,
		searcher:        searcher,
		log:             debuglog.Component("tui"),
		view:            ViewLogin,
		previousView:    ViewLogin,
		identInput:      identInput,
		passInput:       passInput,
		searchInput:     searchInput,
		filterInput:     filterInput,
		contentList:     newSectionList("› library"),
		pathList:        newSectionList("› learning paths"),
		webinarList:     newSectionList("› webinars"),
		challengeList:   newSectionList("› challenges"),
		certificateList: newSectionList("› certificates"),
		txList:          newSectionList("› transactions"),
		viewport:        viewport.New(0, 0),
		txPage:          1,
	}

	app.keyHandler = NewKeyHandler(app, cfg)

	return app
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.restoreSession(),
		tea.EnterAltScreen,
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		return a.keyHandler.HandleKey(msg)

	case sessionRestoredMsg:
		a.user = &msg.session.User
		a.setStatus(MsgWelcome(msg.session.User.Name), StatusSuccess)
		return a, a.enterLibrary()

	case noSessionMsg:
		a.view = ViewLogin
		a.identInput.Focus()

	case loginResultMsg:
		a.signingIn = false
		if msg.err != nil {
			a.err = fmt.Errorf("sign in failed: %w", msg.err)
			return a, nil
		}
		a.user = &msg.session.User
		a.passInput.Reset()
		a.setStatus(MsgWelcome(msg.session.User.Name), StatusSuccess)
		return a, a.enterLibrary()

	case logoutDoneMsg:
		a.user = nil
		a.discardEngine()
		a.view = ViewLogin
		a.identInput.Reset()
		a.passInput.Reset()
		a.identInput.Focus()
		a.setStatus(MsgSignedOut, StatusInfo)

	case debounceFiredMsg:
		if msg.engineGen != a.engineGen || a.engine == nil {
			return a, nil
		}
		if fetch, ok := a.engine.FireDebounce(msg.debounceGen); ok {
			return a, a.runFetch(fetch)
		}

	case contentFetchedMsg:
		if msg.engineGen != a.engineGen || a.engine == nil {
			a.log.Debug().Int("gen", msg.engineGen).Msg("fetch result for discarded engine dropped")
			return a, nil
		}
		if a.engine.Apply(msg.fetch, msg.page) {
			a.syncContentList()
			a.setStatus(MsgResultsCount(len(a.engine.Items()), a.engine.Total()), StatusInfo)
		}

	case contentFetchFailedMsg:
		if msg.engineGen != a.engineGen || a.engine == nil {
			return a, nil
		}
		if a.engine.Fail(msg.fetch, msg.err) {
			a.err = fmt.Errorf("loading library failed: %w", msg.err)
		}

	case detailRenderedMsg:
		if a.view == ViewReader {
			a.viewport.SetContent(msg.content)
			a.viewport.GotoTop()
			a.loadingContent = false
		}

	case pathsLoadedMsg:
		a.paths = msg.paths
		a.syncPathList(a.paths)
		a.indexSection()

	case webinarsLoadedMsg:
		a.webinars = msg.webinars
		a.syncWebinarList(a.webinars)
		a.indexSection()

	case webinarRegisteredMsg:
		for i := range a.webinars {
			if a.webinars[i].ID == msg.webinar.ID {
				a.webinars[i] = *msg.webinar
			}
		}
		a.syncWebinarList(a.webinars)
		a.setStatus(MsgRegistered(msg.webinar.Title), StatusSuccess)

	case challengesLoadedMsg:
		a.challenges = msg.challenges
		a.syncChallengeList()

	case challengeJoinedMsg:
		for i := range a.challenges {
			if a.challenges[i].ID == msg.challenge.ID {
				a.challenges[i] = *msg.challenge
			}
		}
		a.syncChallengeList()
		a.setStatus(MsgJoined(msg.challenge.Title), StatusSuccess)

	case certificatesLoadedMsg:
		a.certificates = msg.certificates
		a.syncCertificateList()

	case transactionsLoadedMsg:
		a.txLoading = false
		if msg.page <= 1 {
			a.transactions = append([]api.Transaction(nil), msg.result.Results...)
		} else {
			a.transactions = append(a.transactions, msg.result.Results...)
		}
		a.txPage = msg.page
		a.txTotal = msg.result.Total
		a.txSummary = ledger.Summarize(a.transactions)
		a.syncTxList()

	case errorMsg:
		a.txLoading = false
		a.signingIn = false
		if api.IsUnauthorized(msg.err) {
			a.user = nil
			a.discardEngine()
			a.view = ViewLogin
			a.identInput.Focus()
			a.err = fmt.Errorf("session expired, sign in again")
			return a, nil
		}
		a.err = msg.err
	}

	// Delegate remaining messages to the active view's component.
	switch a.view {
	case ViewLibrary:
		newList, cmd := a.contentList.Update(msg)
		a.contentList = newList
		cmds = append(cmds, cmd)
	case ViewPaths:
		newList, cmd := a.pathList.Update(msg)
		a.pathList = newList
		cmds = append(cmds, cmd)
	case ViewWebinars:
		newList, cmd := a.webinarList.Update(msg)
		a.webinarList = newList
		cmds = append(cmds, cmd)
	case ViewChallenges:
		newList, cmd := a.challengeList.Update(msg)
		a.challengeList = newList
		cmds = append(cmds, cmd)
	case ViewCertificates:
		newList, cmd := a.certificateList.Update(msg)
		a.certificateList = newList
		cmds = append(cmds, cmd)
	case ViewTransactions:
		newList, cmd := a.txList.Update(msg)
		a.txList = newList
		cmds = append(cmds, cmd)
	case ViewReader:
		switch msg.(type) {
		case tea.WindowSizeMsg, tea.MouseMsg:
			newViewport, cmd := a.viewport.Update(msg)
			a.viewport = newViewport
			cmds = append(cmds, cmd)
		}
	}

	return a, tea.Batch(cmds...)
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height

	// Library keeps 6 lines for search input and facet chrome.
	libraryHeight := height - 9
	if libraryHeight < 5 {
		libraryHeight = 5
	}
	a.contentList.SetSize(width, libraryHeight)

	sectionHeight := height - 6
	if sectionHeight < 5 {
		sectionHeight = 5
	}
	a.pathList.SetSize(width, sectionHeight)
	a.webinarList.SetSize(width, sectionHeight)
	a.challengeList.SetSize(width, sectionHeight)
	a.certificateList.SetSize(width, sectionHeight)
	a.txList.SetSize(width, sectionHeight-2)

	a.viewport.Width = width
	a.viewport.Height = height - 3

	inputWidth := width - 8
	if inputWidth < 20 {
		inputWidth = width
	}
	a.searchInput.Width = inputWidth
	a.filterInput.Width = inputWidth
	a.identInput.Width = 40
	a.passInput.Width = 40
}

// enterLibrary boots the section: a fresh engine, a fresh generation, the
// mount-time fetch.
func (a *App) enterLibrary() tea.Cmd {
	a.engineGen++
	a.engine = discovery.New(discovery.Options{
		PageSize: a.config.API.PageSize,
		Debounce: a.config.API.SearchDebounce,
	})
	a.searchInput.Reset()
	a.searchInput.Blur()
	a.view = ViewLibrary
	a.err = nil
	a.setStatus(MsgLoadingLibrary, StatusInfo)
	return a.runFetch(a.engine.Start())
}

// discardEngine abandons the library engine; any in-flight fetch lands with
// a stale generation and is dropped in Update.
func (a *App) discardEngine() {
	a.engine = nil
	a.engineGen++
}

func (a *App) getRenderer() (*glamour.TermRenderer, error) {
	wordWrapWidth := (a.width * 9) / 10
	if wordWrapWidth > a.config.UI.List.WordWrapMaxWidth {
		wordWrapWidth = a.config.UI.List.WordWrapMaxWidth
	}
	if wordWrapWidth < a.config.UI.List.WordWrapMinWidth {
		wordWrapWidth = a.config.UI.List.WordWrapMinWidth
	}
	if a.width < 50 {
		wordWrapWidth = a.width - 4
		if wordWrapWidth < 20 {
			wordWrapWidth = 20
		}
	}

	if a.glamourRenderer == nil || abs(a.rendererWidth-wordWrapWidth) > 10 {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wordWrapWidth),
		)
		if err != nil {
			return nil, err
		}
		a.glamourRenderer = r
		a.rendererWidth = wordWrapWidth
	}

	return a.glamourRenderer, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (a *App) setStatus(msg string, kind StatusKind) {
	a.status = msg
	a.statusKind = kind
	a.err = nil
}

func (a *App) syncContentList() {
	items := make([]list.Item, len(a.engine.Items()))
	for i, c := range a.engine.Items() {
		items[i] = contentItem{content: c, maxDesc: a.config.UI.List.MaxDescriptionLength}
	}
	a.contentList.SetItems(items)
}

func (a *App) syncPathList(paths []api.LearningPath) {
	items := make([]list.Item, len(paths))
	for i, p := range paths {
		items[i] = pathItem{path: p}
	}
	a.pathList.SetItems(items)
}

func (a *App) syncWebinarList(webinars []api.Webinar) {
	items := make([]list.Item, len(webinars))
	for i, w := range webinars {
		items[i] = webinarItem{webinar: w}
	}
	a.webinarList.SetItems(items)
}

func (a *App) syncChallengeList() {
	items := make([]list.Item, len(a.challenges))
	for i, c := range a.challenges {
		items[i] = challengeItem{challenge: c}
	}
	a.challengeList.SetItems(items)
}

func (a *App) syncCertificateList() {
	items := make([]list.Item, len(a.certificates))
	for i, c := range a.certificates {
		items[i] = certificateItem{cert: c}
	}
	a.certificateList.SetItems(items)
}

func (a *App) syncTxList() {
	items := make([]list.Item, len(a.transactions))
	for i, tx := range a.transactions {
		items[i] = txItem{tx: tx}
	}
	a.txList.SetItems(items)
}

// indexSection feeds the active full-list section into the client-side
// searcher so the filter input works over it.
func (a *App) indexSection() {
	var docs []search.Document

	switch a.view {
	case ViewPaths:
		for _, p := range a.paths {
			docs = append(docs, search.Document{
				ID:          p.ID,
				Title:       p.Title,
				Description: p.Description,
				Tags:        p.Tags,
			})
		}
	case ViewWebinars:
		for _, w := range a.webinars {
			docs = append(docs, search.Document{
				ID:          w.ID,
				Title:       w.Title,
				Description: w.Description,
				Tags:        []string{w.Presenter},
			})
		}
	default:
		return
	}

	if err := a.searcher.SetDocuments(docs); err != nil {
		a.log.Warn().Err(err).Msg("indexing section failed")
	}
}

// applySectionFilter narrows the active full-list section to the documents
// matching the filter input. An empty query restores the full list.
func (a *App) applySectionFilter() {
	query := strings.TrimSpace(a.filterInput.Value())

	if query == "" {
		a.filterApplied = false
		switch a.view {
		case ViewPaths:
			a.syncPathList(a.paths)
		case ViewWebinars:
			a.syncWebinarList(a.webinars)
		}
		return
	}

	results, err := a.searcher.Search(query, 100)
	if err != nil {
		a.err = fmt.Errorf("filter failed: %w", err)
		return
	}

	matched := make(map[string]bool, len(results))
	for _, r := range results {
		matched[r.Doc.ID] = true
	}
	a.filterApplied = true

	switch a.view {
	case ViewPaths:
		var filtered []api.LearningPath
		for _, p := range a.paths {
			if matched[p.ID] {
				filtered = append(filtered, p)
			}
		}
		a.syncPathList(filtered)
	case ViewWebinars:
		var filtered []api.Webinar
		for _, w := range a.webinars {
			if matched[w.ID] {
				filtered = append(filtered, w)
			}
		}
		a.syncWebinarList(filtered)
	}
}

func (a *App) View() string {
	var content string

	switch a.view {
	case ViewLogin:
		content = a.viewLogin()
	case ViewLibrary:
		content = a.viewLibrary()
	case ViewReader:
		if a.loadingContent {
			content = renderCentered(a.width, a.height-3,
				renderMuted(MsgLoadingContent))
		} else {
			content = a.viewport.View()
		}
	case ViewPaths:
		content = a.viewFilterableSection(&a.pathList)
	case ViewWebinars:
		content = a.viewFilterableSection(&a.webinarList)
	case ViewChallenges:
		content = a.challengeList.View()
	case ViewCertificates:
		content = a.certificateList.View()
	case ViewTransactions:
		content = a.viewTransactions()
	}

	statusBar := a.statusBarView()
	if statusBar == "" {
		return content
	}

	separatorWidth := a.width
	if separatorWidth < 0 {
		separatorWidth = 0
	}
	separator := SeparatorStyle.Render(strings.Repeat("─", separatorWidth))

	return lipgloss.JoinVertical(lipgloss.Top, content, separator, statusBar)
}

func (a *App) viewLogin() string {
	form := lipgloss.JoinVertical(
		lipgloss.Center,
		GetWelcomeMessage(),
		"",
		renderInputFrame(a.identInput.View(), a.identInput.Focused(), 40),
		renderInputFrame(a.passInput.View(), a.passInput.Focused(), 40),
		"",
		renderHelp("Enter: sign in • Tab: next field • Ctrl+C: quit"),
	)

	if a.signingIn {
		form = lipgloss.JoinVertical(lipgloss.Center, form, "", renderMuted(MsgSigningIn))
	}

	return renderCentered(a.width, a.height-3, form)
}

func (a *App) viewLibrary() string {
	if a.engine == nil {
		return renderCentered(a.width, a.height-3, renderMuted(MsgLoadingLibrary))
	}

	facets := a.engine.Facets()
	facetLine := fmt.Sprintf(
		"category: %s • difficulty: %s • type: %s • sort: %s",
		strings.ToLower(string(facets.Category)),
		strings.ToLower(string(facets.Difficulty)),
		strings.ToLower(string(facets.ContentType)),
		string(facets.Sort),
	)

	counter := MsgResultsCount(len(a.engine.Items()), a.engine.Total())
	if a.engine.Loading() {
		counter = MsgLoadingLibrary
	} else if a.engine.Total() == 0 {
		counter = MsgNoResults
	}

	header := lipgloss.JoinVertical(
		lipgloss.Top,
		renderHeader("› library", facetLine, a.width),
		renderInputFrame(a.searchInput.View(), a.searchInput.Focused(), a.searchInput.Width),
		renderMuted(counter),
	)

	return lipgloss.JoinVertical(lipgloss.Top, header, a.contentList.View())
}

func (a *App) viewFilterableSection(l *list.Model) string {
	header := renderInputFrame(a.filterInput.View(), a.filterInput.Focused(), a.filterInput.Width)
	return lipgloss.JoinVertical(lipgloss.Top, header, l.View())
}

func (a *App) viewTransactions() string {
	summary := fmt.Sprintf(
		"in %s • out %s • net %s • %d movements",
		ledger.FormatAmount(a.txSummary.InflowCents, ""),
		ledger.FormatAmount(a.txSummary.OutflowCents, ""),
		ledger.FormatAmount(a.txSummary.NetCents, ""),
		a.txSummary.Count,
	)

	counter := fmt.Sprintf("%d of %d", len(a.transactions), a.txTotal)
	if a.txLoading {
		counter = MsgLoadingMore
	}

	header := lipgloss.JoinVertical(
		lipgloss.Top,
		renderHeader("› transactions", summary, a.width),
		renderMuted(counter),
	)

	return lipgloss.JoinVertical(lipgloss.Top, header, a.txList.View())
}

func (a *App) statusBarView() string {
	if a.err != nil {
		return StatusBarStyle.Width(a.width).Render(
			ErrorMessageStyle.Render(fmt.Sprintf("✗ %v", a.err)))
	}

	parts := a.keyHandler.GetHelpForCurrentView()
	if a.status != "" {
		statusStyle := StatusInfoStyle
		switch a.statusKind {
		case StatusSuccess:
			statusStyle = StatusSuccessStyle
		case StatusWarn:
			statusStyle = StatusWarnStyle
		case StatusError:
			statusStyle = StatusErrorStyle
		}
		parts = append([]string{statusStyle.Render(a.status)}, parts...)
	}

	if len(parts) == 0 {
		return ""
	}

	return StatusBarStyle.Width(a.width).Render(strings.Join(parts, " • "))
}
