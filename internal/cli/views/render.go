package views

import (
	"Checklister/internal/cli/builder"
	"Checklister/internal/cli/model"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const MsgNoCategories = "No categories. This checklist will be deleted."

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	publicBadge  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	privateBadge = lipgloss.NewStyle().Faint(true)
	snackStyle   = lipgloss.NewStyle().Reverse(true).Padding(0, 1)
	panelStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	boxUnchecked = "☐"
)

// Badge метка видимости чек-листа.
func Badge(c *model.Checklist) string {
	if c.IsPublic {
		return publicBadge.Render("[Public]")
	}
	return privateBadge.Render("[Private]")
}

// RenderCard строка списка: заголовок, метка видимости и описание.
func RenderCard(c *model.Checklist) string {
	line := fmt.Sprintf("#%d %s %s", c.ID, titleStyle.Render(c.Title), Badge(c))
	if c.Description != "" {
		line += "\n   " + mutedStyle.Render(c.Description)
	}
	return line
}

// RenderList все карточки; пустой список — подсказка.
func RenderList(list []model.Checklist) string {
	if len(list) == 0 {
		return mutedStyle.Render("No checklists yet.")
	}
	cards := make([]string, 0, len(list))
	for i := range list {
		cards = append(cards, RenderCard(&list[i]))
	}
	return strings.Join(cards, "\n")
}

// RenderPanel чек-лист только для чтения: пункты с неактивными чекбоксами и ссылки на файлы.
// uploadURL может быть nil, тогда ссылки не выводятся.
func RenderPanel(c *model.Checklist, uploadURL func(int64) string) string {
	lines := []string{titleStyle.Render(c.Title)}
	if c.Description != "" {
		lines = append(lines, mutedStyle.Render(c.Description))
	}
	if c.PendingDeletion() {
		lines = append(lines, "", mutedStyle.Render(MsgNoCategories))
		return panelStyle.Render(strings.Join(lines, "\n"))
	}
	for _, cat := range c.Categories {
		lines = append(lines, "", titleStyle.Render(cat.Name))
		for _, it := range cat.Items {
			lines = append(lines, fmt.Sprintf("  %s %s", mutedStyle.Render(boxUnchecked), it.Name))
			for _, u := range it.Uploads {
				link := u.Filename
				if uploadURL != nil {
					link += " " + accentStyle.Render(uploadURL(u.ID))
				}
				lines = append(lines, fmt.Sprintf("      ↳ #%d %s", u.ID, link))
			}
		}
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

// RenderValidation сообщения формы рядом с полями черновика.
func RenderValidation(verr *builder.ValidationError, d *builder.Draft) string {
	var lines []string
	if verr.Title != "" {
		lines = append(lines, errorStyle.Render("title: "+verr.Title))
	}
	for i, msg := range verr.Categories {
		if msg == "" {
			continue
		}
		name := fmt.Sprintf("category %d", i+1)
		if d != nil && i < len(d.Categories) && strings.TrimSpace(d.Categories[i].Name) != "" {
			name = fmt.Sprintf("category %q", d.Categories[i].Name)
		}
		lines = append(lines, errorStyle.Render(name+": "+msg))
	}
	return strings.Join(lines, "\n")
}

func RenderError(msg string) string { return errorStyle.Render(msg) }

// RenderSnackbar уведомление; пустое сообщение не выводится.
func RenderSnackbar(msg string) string {
	if msg == "" {
		return ""
	}
	return snackStyle.Render(msg)
}

// RenderProgress полоса прогресса загрузки файла пункта.
func RenderProgress(name string, pct int) string {
	const width = 20
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct * width / 100
	return fmt.Sprintf("%s [%s%s] %3d%%", name, strings.Repeat("█", filled), strings.Repeat("░", width-filled), pct)
}
