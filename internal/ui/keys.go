package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextPage   key.Binding
	PrevPage   key.Binding
	Search     key.Binding
	Difficulty key.Binding
	Sort       key.Binding
	Mode       key.Binding
	Favorite   key.Binding
	Complete   key.Binding
	Compare    key.Binding
	Details    key.Binding
	Random     key.Binding
	Recs       key.Binding
	Retry      key.Binding
	UseCache   key.Binding
	UseSample  key.Binding
	Export     key.Binding
	Theme      key.Binding
	Back       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextPage:   key.NewBinding(key.WithKeys("right", "l", "n"), key.WithHelp("→/n", "next page")),
		PrevPage:   key.NewBinding(key.WithKeys("left", "h", "p"), key.WithHelp("←/p", "prev page")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Difficulty: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "difficulty")),
		Sort:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Mode:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "all/favs/recent")),
		Favorite:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		Complete:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete")),
		Compare:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "compare")),
		Details:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Random:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "random")),
		Recs:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recommendations")),
		Retry:      key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "retry load")),
		UseCache:   key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "use cache")),
		UseSample:  key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "use sample")),
		Export:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Favorite, k.Complete, k.Recs, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPage, k.PrevPage},
		{k.Search, k.Difficulty, k.Sort, k.Mode},
		{k.Favorite, k.Complete, k.Compare, k.Details, k.Random},
		{k.Recs, k.Retry, k.UseCache, k.UseSample},
		{k.Export, k.Theme, k.Back, k.Quit},
	}
}
