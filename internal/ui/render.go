package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"demonlist/internal/app"
	"demonlist/internal/catalog"
)

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	card       lipgloss.Style
	cardActive lipgloss.Style
	rank       lipgloss.Style
	difficulty lipgloss.Style
	muted      lipgloss.Style
	status     lipgloss.Style
	errText    lipgloss.Style
	badge      lipgloss.Style
}

func newStyles(theme string) styles {
	accent := lipgloss.Color("205")
	dim := lipgloss.Color("241")
	border := lipgloss.Color("238")
	if theme == "light" {
		accent = lipgloss.Color("162")
		dim = lipgloss.Color("245")
		border = lipgloss.Color("250")
	}
	base := lipgloss.NewStyle()
	return styles{
		title:      base.Bold(true).Foreground(accent),
		header:     base.Foreground(dim),
		card:       base.Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1),
		cardActive: base.Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1),
		rank:       base.Bold(true).Foreground(accent),
		difficulty: base.Foreground(lipgloss.Color("214")),
		muted:      base.Foreground(dim),
		status:     base.Foreground(lipgloss.Color("114")),
		errText:    base.Foreground(lipgloss.Color("203")),
		badge:      base.Foreground(accent),
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")

	switch m.screen {
	case screenDetail:
		b.WriteString(m.detailView())
	case screenRecommend:
		b.WriteString(m.recommendView())
	case screenCompare:
		b.WriteString(m.compareView())
	default:
		b.WriteString(m.browseView())
	}

	if m.status != "" {
		b.WriteString("\n" + m.styles.status.Render(m.status))
	}
	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m Model) headerView() string {
	v := m.view
	title := m.styles.title.Render(listTitle(v.List))
	p := v.Profile
	meta := fmt.Sprintf("%s · lvl %d · %d xp · %d done · %d favs",
		p.Username, p.Level, p.Experience, p.CompletedCount, p.FavoriteCount)
	line := title + "  " + m.styles.header.Render(meta)
	if v.CompareCount > 0 {
		line += "  " + m.styles.badge.Render(fmt.Sprintf("[compare: %d]", v.CompareCount))
	}
	return line
}

func listTitle(list catalog.ListType) string {
	switch list {
	case catalog.PemonList:
		return "Pemonlist"
	case catalog.ImpossibleList:
		return "Impossible List"
	default:
		return "Demonlist"
	}
}

func (m Model) browseView() string {
	v := m.view
	var b strings.Builder

	if v.Loading {
		b.WriteString(m.styles.muted.Render("Loading level data...") + "\n")
		return b.String()
	}
	if v.LoadErr != nil {
		b.WriteString(m.styles.errText.Render("Failed to load level data: "+v.LoadErr.Error()) + "\n")
		b.WriteString(m.styles.muted.Render("R retry · C use cached data · S use sample data") + "\n")
		return b.String()
	}

	b.WriteString(m.filterBar() + "\n")

	if len(v.Cards) == 0 {
		b.WriteString(m.styles.muted.Render("No levels match the current filters.") + "\n")
		return b.String()
	}

	for i, c := range v.Cards {
		b.WriteString(m.cardLine(c, i == m.cursor) + "\n")
	}

	footer := fmt.Sprintf("page %d/%d · %d levels", v.Page, v.TotalPages, v.TotalFiltered)
	b.WriteString(m.styles.muted.Render(footer) + " " + m.pager.View() + "\n")
	return b.String()
}

func (m Model) filterBar() string {
	v := m.view
	parts := []string{
		"mode " + string(v.Mode),
		"difficulty " + v.Difficulty,
		"sort " + string(v.Sort),
		"source " + string(v.Strategy),
	}
	bar := m.styles.muted.Render(strings.Join(parts, " · "))
	if m.search.Focused() || m.search.Value() != "" {
		bar += "\n" + m.search.View()
	}
	return bar
}

func (m Model) cardLine(c app.Card, active bool) string {
	marks := ""
	if c.Favorite {
		marks += " ♥"
	}
	if c.Completed {
		marks += " ✓"
	}
	if c.UserRating > 0 {
		marks += " " + strings.Repeat("★", c.UserRating)
	}
	if c.Progress > 0 && c.Progress < 100 {
		marks += fmt.Sprintf(" %d%%", c.Progress)
	}
	line := fmt.Sprintf("%s %s %s %s%s",
		m.styles.rank.Render(fmt.Sprintf("#%d", c.Rank)),
		c.Name,
		m.styles.muted.Render("by "+c.Creator),
		m.styles.difficulty.Render(c.Difficulty),
		m.styles.badge.Render(marks),
	)
	if active {
		return m.styles.cardActive.Render(line)
	}
	return m.styles.card.Render(line)
}

func (m Model) detailView() string {
	c := m.detail
	var b strings.Builder
	b.WriteString(m.styles.title.Render(fmt.Sprintf("#%d %s", c.Rank, c.Name)) + "\n\n")

	rows := [][2]string{
		{"ID", c.ID},
		{"Creator", c.Creator},
		{"Verifier", c.Verifier},
		{"Difficulty", c.Difficulty},
		{"Rating", fmt.Sprintf("%.1f", c.Rating)},
	}
	if c.Length != "" {
		rows = append(rows, [2]string{"Length", c.Length})
	}
	if c.Objects > 0 {
		rows = append(rows, [2]string{"Objects", humanize.Comma(int64(c.Objects))})
	}
	if c.Downloads > 0 {
		rows = append(rows, [2]string{"Downloads", humanize.Comma(int64(c.Downloads))})
	}
	if len(c.Tags) > 0 {
		rows = append(rows, [2]string{"Tags", strings.Join(c.Tags, ", ")})
	}
	if c.VideoURL != "" {
		rows = append(rows, [2]string{"Video", c.VideoURL})
	}
	for _, r := range rows {
		b.WriteString(m.styles.muted.Render(fmt.Sprintf("%-11s", r[0])) + r[1] + "\n")
	}
	if c.Description != "" {
		b.WriteString("\n" + c.Description + "\n")
	}

	b.WriteString("\n")
	state := []string{}
	if c.Favorite {
		state = append(state, "♥ favorite")
	}
	if c.Completed {
		state = append(state, "✓ completed")
	} else if c.Progress > 0 {
		state = append(state, fmt.Sprintf("progress %d%%", c.Progress))
	}
	if c.UserRating > 0 {
		state = append(state, "your rating "+strings.Repeat("★", c.UserRating))
	}
	if len(state) > 0 {
		b.WriteString(m.styles.badge.Render(strings.Join(state, " · ")) + "\n")
	}
	b.WriteString(m.styles.muted.Render("1-5 rate · +/- progress · f favorite · c complete · o compare · esc back") + "\n")
	return b.String()
}

func (m Model) recommendView() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Recommended for you") + "\n\n")
	if len(m.recs) == 0 {
		b.WriteString(m.styles.muted.Render("Nothing to recommend yet. Browse some levels first.") + "\n")
		return b.String()
	}
	for i, lvl := range m.recs {
		cursor := "  "
		if i == m.cursor {
			cursor = m.styles.rank.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%s %s %s\n",
			cursor, lvl.Name,
			m.styles.muted.Render("by "+lvl.Creator),
			m.styles.difficulty.Render(lvl.Difficulty)))
	}
	b.WriteString("\n" + m.styles.muted.Render("enter details · r reshuffle · esc back") + "\n")
	return b.String()
}

func (m Model) compareView() string {
	tray := m.core.CompareList()
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Level comparison") + "\n\n")
	if len(tray) == 0 {
		b.WriteString(m.styles.muted.Render("The tray is empty. Press o on a level to add it.") + "\n")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("%-24s %-14s %-14s %-11s %s\n", "Level", "Creator", "Verifier", "Difficulty", "Rating"))
	for i, lvl := range tray {
		line := fmt.Sprintf("%-24s %-14s %-14s %-11s %.1f", lvl.Name, lvl.Creator, lvl.Verifier, lvl.Difficulty, lvl.Rating)
		if i == m.cursor {
			line = m.styles.rank.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + m.styles.muted.Render("o remove · e export json · esc back") + "\n")
	return b.String()
}
