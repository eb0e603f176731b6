// Package tui интерактивный список чек-листов (bubbletea).
package tui

import (
	"Checklister/internal/cli/builder"
	"Checklister/internal/cli/model"
	"Checklister/internal/cli/notify"
	"Checklister/internal/cli/prompt"
	"Checklister/internal/cli/views"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Deps зависимости экрана.
type Deps struct {
	List      *views.ListView
	Submitter *builder.Submitter
	Snackbar  *notify.Snackbar
	UploadURL func(uploadID int64) string
}

type listItem struct {
	c model.Checklist
}

func (i listItem) Title() string       { return i.c.Title }
func (i listItem) Description() string { return i.c.Description }
func (i listItem) FilterValue() string { return i.c.Title }

var (
	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	mutedStyle    = lipgloss.NewStyle().Faint(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	frameStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(listItem)
	line := fmt.Sprintf("%s %s", it.c.Title, views.Badge(&it.c))
	if it.c.Description != "" {
		line += "  " + mutedStyle.Render(it.c.Description)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

// сообщения асинхронных команд
type (
	loadedMsg struct{ err error }
	doneMsg   struct{ verr *builder.ValidationError }
	snackMsg  struct{}
)

var (
	viewBind    = key.NewBinding(key.WithKeys("enter", "v"), key.WithHelp("enter", "view"))
	editBind    = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit title"))
	publicBind  = key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "make public"))
	linkBind    = key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "copy link"))
	cloneBind   = key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clone"))
	deleteBind  = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	refreshBind = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh"))
)

type Model struct {
	ctx  context.Context
	deps Deps
	list list.Model

	// подтверждение удаления: id чек-листа, 0 — нет вопроса
	confirmID    int64
	confirmTitle string

	// правка заголовка
	editing bool
	editID  int64
	ti      textinput.Model
	verr    *builder.ValidationError
}

func New(ctx context.Context, deps Deps) Model {
	l := list.New(nil, itemDelegate{}, 80, 20)
	l.Title = "Checklists"
	l.SetShowHelp(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.HelpStyle = helpStyle
	l.SetStatusBarItemName("checklist", "checklists")
	l.FilterInput.Prompt = "/ "
	extra := func() []key.Binding {
		return []key.Binding{viewBind, editBind, publicBind, linkBind, cloneBind, deleteBind, refreshBind}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Checklist title..."
	ti.CharLimit = 200

	m := Model{ctx: ctx, deps: deps, list: l, ti: ti}
	m.refresh()
	return m
}

// Run запускает экран до выхода пользователя.
func Run(ctx context.Context, deps Deps) error {
	p := tea.NewProgram(New(ctx, deps), tea.WithAltScreen(), tea.WithContext(ctx))
	if deps.Snackbar != nil {
		deps.Snackbar.OnChange = func(string) { p.Send(snackMsg{}) }
		defer func() { deps.Snackbar.OnChange = nil }()
	}
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) Init() tea.Cmd { return m.load() }

func (m Model) load() tea.Cmd {
	lv, ctx := m.deps.List, m.ctx
	return func() tea.Msg { return loadedMsg{err: lv.Load(ctx)} }
}

func (m *Model) refresh() {
	all := m.deps.List.Items()
	items := make([]list.Item, 0, len(all))
	for _, c := range all {
		items = append(items, listItem{c: c})
	}
	m.list.SetItems(items)
}

func (m Model) selected() (model.Checklist, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	return it.c, ok
}

func (m Model) show(msg string) {
	if m.deps.Snackbar != nil {
		m.deps.Snackbar.Show(msg)
	}
}

// action выполняет действие списка в фоне; ошибки сети уже ушли в snackbar.
func (m Model) action(fn func() error) tea.Cmd {
	show := m.show
	return func() tea.Msg {
		if err := fn(); err != nil {
			switch {
			case errors.Is(err, views.ErrAlreadyPublic), errors.Is(err, views.ErrNotPublic), errors.Is(err, views.ErrNotInList):
				show(capitalize(err.Error()))
			}
		}
		return doneMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-10)
		return m, nil
	case loadedMsg, snackMsg:
		m.refresh()
		return m, nil
	case doneMsg:
		m.verr = msg.verr
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		if m.editing {
			return m.updateEdit(msg)
		}
		if m.confirmID != 0 {
			return m.updateConfirm(msg)
		}
		if m.list.FilterState() == list.Filtering {
			break
		}
		lv, ctx := m.deps.List, m.ctx
		c, ok := m.selected()
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc", "x":
			if _, viewing := lv.Viewing(); viewing {
				lv.CloseView()
				return m, nil
			}
			if msg.String() == "esc" {
				return m, tea.Quit
			}
			return m, nil
		case "r":
			return m, m.load()
		case "enter", "v":
			if ok {
				_, _ = lv.View(c.ID)
			}
			return m, nil
		case "p":
			if ok {
				return m, m.action(func() error { _, err := lv.MakePublic(ctx, c.ID); return err })
			}
			return m, nil
		case "l":
			if ok {
				return m, m.action(func() error { _, err := lv.CopyPublicLink(c.ID); return err })
			}
			return m, nil
		case "c":
			if ok {
				return m, m.action(func() error { _, err := lv.Clone(ctx, c.ID); return err })
			}
			return m, nil
		case "d":
			if ok {
				m.confirmID, m.confirmTitle = c.ID, c.Title
			}
			return m, nil
		case "e":
			if ok && m.deps.Submitter != nil {
				m.editing, m.editID, m.verr = true, c.ID, nil
				m.ti.SetValue(c.Title)
				m.ti.CursorEnd()
				m.ti.Focus()
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.confirmID
	m.confirmID, m.confirmTitle = 0, ""
	switch msg.String() {
	case "y", "Y":
		lv, ctx := m.deps.List, m.ctx
		// пользователь уже ответил "да" в самом экране
		return m, m.action(func() error { return lv.Delete(ctx, prompt.Yes, id) })
	default:
		return m, nil
	}
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.ti.Blur()
		return m, nil
	case "enter":
		m.editing = false
		m.ti.Blur()
		title, id := m.ti.Value(), m.editID
		lv, sub, ctx := m.deps.List, m.deps.Submitter, m.ctx
		return m, func() tea.Msg {
			d, err := lv.Edit(id)
			if err != nil {
				return doneMsg{}
			}
			d.Title = title
			res, err := sub.Submit(ctx, d)
			var verr *builder.ValidationError
			if errors.As(err, &verr) {
				return doneMsg{verr: verr}
			}
			if res != nil {
				lv.Open(res.Checklist)
				_ = lv.Load(ctx)
			}
			return doneMsg{}
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	lv := m.deps.List
	var b strings.Builder
	switch {
	case lv.Loading() && len(lv.Items()) == 0:
		b.WriteString(mutedStyle.Render("Loading..."))
	case lv.Err() != "":
		b.WriteString(views.RenderError(lv.Err()) + "\n" + helpStyle.Render("r: retry  q: quit"))
	default:
		b.WriteString(m.list.View())
	}
	if c, ok := lv.Viewing(); ok {
		b.WriteString("\n" + views.RenderPanel(c, m.deps.UploadURL))
		b.WriteString("\n" + helpStyle.Render("esc: close"))
	}
	if m.confirmID != 0 {
		b.WriteString("\n" + fmt.Sprintf("Delete checklist %q? (y/n)", m.confirmTitle))
	}
	if m.editing {
		b.WriteString("\n" + frameStyle.Render("Edit title\n"+m.ti.View()))
	}
	if m.verr != nil {
		b.WriteString("\n" + views.RenderValidation(m.verr, nil))
	}
	if m.deps.Snackbar != nil {
		if s := views.RenderSnackbar(m.deps.Snackbar.Message()); s != "" {
			b.WriteString("\n" + s)
		}
	}
	return frameStyle.Render(b.String())
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
