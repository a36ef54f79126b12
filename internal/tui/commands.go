package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"akiba/internal/api"
	"akiba/internal/discovery"
	"akiba/internal/session"
	"akiba/internal/validation"
)

type sessionRestoredMsg struct {
	session *api.Session
}

type noSessionMsg struct{}

type loginResultMsg struct {
	session *api.Session
	err     error
}

type logoutDoneMsg struct {
	err error
}

type debounceFiredMsg struct {
	engineGen   int
	debounceGen int
}

type contentFetchedMsg struct {
	engineGen int
	fetch     discovery.Fetch
	page      *api.ContentPage
}

type contentFetchFailedMsg struct {
	engineGen int
	fetch     discovery.Fetch
	err       error
}

type detailRenderedMsg struct {
	id      string
	content string
}

type pathsLoadedMsg struct {
	paths []api.LearningPath
}

type webinarsLoadedMsg struct {
	webinars []api.Webinar
}

type webinarRegisteredMsg struct {
	webinar *api.Webinar
}

type challengesLoadedMsg struct {
	challenges []api.Challenge
}

type challengeJoinedMsg struct {
	challenge *api.Challenge
}

type certificatesLoadedMsg struct {
	certificates []api.Certificate
}

type transactionsLoadedMsg struct {
	page   int
	result *api.TransactionPage
}

type errorMsg struct {
	err error
}

// failMsg tags a command failure with the action that was underway.
func failMsg(action string, err error) errorMsg {
	return errorMsg{err: fmt.Errorf("%s: %w", action, err)}
}

func (a *App) restoreSession() tea.Cmd {
	return func() tea.Msg {
		stored, err := a.sessions.Load()
		if err != nil {
			if !errors.Is(err, session.ErrNoSession) {
				a.log.Warn().Err(err).Msg("loading stored session failed")
			}
			return noSessionMsg{}
		}

		a.client.SetToken(stored.Token)
		return sessionRestoredMsg{session: stored}
	}
}

func (a *App) login(identifier, password string) tea.Cmd {
	return func() tea.Msg {
		normalized, _, err := validation.NormalizeIdentifier(identifier)
		if err != nil {
			return loginResultMsg{err: err}
		}
		if password == "" {
			return loginResultMsg{err: fmt.Errorf("password cannot be empty")}
		}

		sess, err := a.client.Login(context.Background(), normalized, password)
		if err != nil {
			return loginResultMsg{err: err}
		}

		if saveErr := a.sessions.Save(sess); saveErr != nil {
			a.log.Warn().Err(saveErr).Msg("persisting session failed")
		}

		return loginResultMsg{session: sess}
	}
}

func (a *App) logout() tea.Cmd {
	return func() tea.Msg {
		if err := a.client.Logout(context.Background()); err != nil {
			a.log.Warn().Err(err).Msg("server-side logout failed")
		}
		return logoutDoneMsg{err: a.sessions.Delete()}
	}
}

// runFetch performs one engine-directed catalog request. The result carries
// the engine generation it was issued under; Update drops it if the library
// was left in the meantime.
func (a *App) runFetch(fetch discovery.Fetch) tea.Cmd {
	gen := a.engineGen
	return func() tea.Msg {
		page, err := a.client.ListContent(context.Background(), fetch.Filters, fetch.Page, fetch.PageSize)
		if err != nil {
			return contentFetchFailedMsg{engineGen: gen, fetch: fetch, err: err}
		}
		return contentFetchedMsg{engineGen: gen, fetch: fetch, page: page}
	}
}

// scheduleDebounce arms the quiet-period timer for a typed query. The token
// generation makes superseded timers fire inert.
func (a *App) scheduleDebounce(token discovery.Debounce) tea.Cmd {
	gen := a.engineGen
	return tea.Tick(token.Delay, func(time.Time) tea.Msg {
		return debounceFiredMsg{engineGen: gen, debounceGen: token.Gen}
	})
}

// renderDetail fetches the full record (through the LRU cache) and renders
// its markdown body for the reader viewport.
func (a *App) renderDetail(summary api.ContentSummary) tea.Cmd {
	return func() tea.Msg {
		if a.details == nil {
			return failMsg("loading content", fmt.Errorf("content cache unavailable"))
		}
		detail, err := a.details.Get(context.Background(), summary.ID)
		if err != nil {
			return failMsg("loading content", err)
		}

		var body strings.Builder
		body.WriteString(fmt.Sprintf("# %s\n\n", detail.Title))
		if detail.Author != "" {
			body.WriteString(fmt.Sprintf("*%s — %s*\n\n", detail.Author, detail.PublishedAt.Format("Jan 2, 2006")))
		}
		if detail.SourceURL != "" {
			body.WriteString(fmt.Sprintf("[Source](%s)\n\n", detail.SourceURL))
		}
		body.WriteString("---\n\n")
		if detail.Body != "" {
			body.WriteString(detail.Body)
		} else {
			body.WriteString(detail.Description)
		}

		r, err := a.getRenderer()
		if err != nil {
			return detailRenderedMsg{id: detail.ID, content: "Error initializing renderer: " + err.Error()}
		}

		rendered, err := r.Render(body.String())
		if err != nil {
			return detailRenderedMsg{
				id:      detail.ID,
				content: fmt.Sprintf("# Error\n\nFailed to render content: %s\n\nPress Escape to go back.", err.Error()),
			}
		}

		return detailRenderedMsg{id: detail.ID, content: rendered}
	}
}

func (a *App) loadPaths() tea.Cmd {
	return func() tea.Msg {
		paths, err := a.client.ListPaths(context.Background())
		if err != nil {
			return failMsg("loading learning paths", err)
		}
		return pathsLoadedMsg{paths: paths}
	}
}

func (a *App) loadWebinars() tea.Cmd {
	return func() tea.Msg {
		webinars, err := a.client.ListWebinars(context.Background())
		if err != nil {
			return failMsg("loading webinars", err)
		}
		return webinarsLoadedMsg{webinars: webinars}
	}
}

func (a *App) registerWebinar(id string) tea.Cmd {
	return func() tea.Msg {
		webinar, err := a.client.RegisterWebinar(context.Background(), id)
		if err != nil {
			return failMsg("registering", err)
		}
		return webinarRegisteredMsg{webinar: webinar}
	}
}

func (a *App) loadChallenges() tea.Cmd {
	return func() tea.Msg {
		challenges, err := a.client.ListChallenges(context.Background())
		if err != nil {
			return failMsg("loading challenges", err)
		}
		return challengesLoadedMsg{challenges: challenges}
	}
}

func (a *App) joinChallenge(id string) tea.Cmd {
	return func() tea.Msg {
		challenge, err := a.client.JoinChallenge(context.Background(), id)
		if err != nil {
			return failMsg("joining challenge", err)
		}
		return challengeJoinedMsg{challenge: challenge}
	}
}

func (a *App) loadCertificates() tea.Cmd {
	return func() tea.Msg {
		certificates, err := a.client.ListCertificates(context.Background())
		if err != nil {
			return failMsg("loading certificates", err)
		}
		return certificatesLoadedMsg{certificates: certificates}
	}
}

func (a *App) loadTransactions(page int) tea.Cmd {
	return func() tea.Msg {
		result, err := a.client.ListTransactions(context.Background(), "", page, a.config.API.PageSize)
		if err != nil {
			return failMsg("loading transactions", err)
		}
		return transactionsLoadedMsg{page: page, result: result}
	}
}

func (a *App) openTarget(target string) tea.Cmd {
	return func() tea.Msg {
		if a.launcher == nil {
			return errorMsg{err: fmt.Errorf("no opener available")}
		}
		if err := a.launcher.Open(target); err != nil {
			return failMsg("opening "+truncateMiddle(target, 40), err)
		}
		return nil
	}
}
