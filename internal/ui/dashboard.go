package ui

import (
	"fmt"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DashboardModel is the live TUI: platform summary, wallet list and a
// price panel fed by the poller. The whole view is composed from the
// resolved component bundle, so it renders on both variants.
type DashboardModel struct {
	Bundle   *ComponentBundle
	Platform string
	Storage  string
	Network  string
	Wallets  []string
	Currency string

	prices   map[string]float64
	priceErr string
	selected int
	frame    int
	loading  bool
	width    int
}

// DashPricesMsg delivers one polling round to the dashboard.
type DashPricesMsg struct {
	Prices map[string]float64
	ErrMsg string
}

// dashTickMsg advances the spinner animation.
type dashTickMsg time.Time

func dashTick() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg {
		return dashTickMsg(t)
	})
}

// NewDashboardModel creates the model. The bundle must be resolved.
func NewDashboardModel(b *ComponentBundle) DashboardModel {
	return DashboardModel{Bundle: b, loading: true, width: 72}
}

func (m DashboardModel) Init() tea.Cmd {
	return dashTick()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(m.prices)-1 {
				m.selected++
			}
		}

	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}

	case DashPricesMsg:
		m.loading = false
		m.priceErr = msg.ErrMsg
		if msg.ErrMsg == "" {
			m.prices = msg.Prices
		}

	case dashTickMsg:
		m.frame++
		return m, dashTick()
	}
	return m, nil
}

func (m DashboardModel) View() string {
	b := m.Bundle

	header := b.Text(TextProps{
		Content: "walletkit dashboard",
		Style:   Style{Bold: true, Foreground: string(ColorAccent)},
	})
	platform := b.Text(TextProps{
		Content: fmt.Sprintf("platform %s · storage %s · network %s",
			m.Platform, m.Storage, m.Network),
		Style: Style{Faint: true},
	})

	sections := []Renderable{header, platform}

	if len(m.Wallets) > 0 {
		sections = append(sections,
			b.Text(TextProps{Content: "Wallets", Style: Style{Bold: true}}),
			b.VirtualizedList(VirtualizedListProps{
				Items:    m.Wallets,
				Selected: -1,
				Height:   4,
			}),
		)
	}

	sections = append(sections, b.Text(TextProps{
		Content: fmt.Sprintf("Prices (%s)", m.Currency),
		Style:   Style{Bold: true},
	}))

	switch {
	case m.loading:
		sections = append(sections, b.Spinner(SpinnerProps{
			Message: "fetching prices",
			Frame:   m.frame,
		}))
	case m.priceErr != "":
		sections = append(sections, b.Text(TextProps{
			Content: "price update failed: " + m.priceErr,
			Style:   Style{Foreground: string(ColorError)},
		}))
	default:
		sections = append(sections, b.VirtualizedList(VirtualizedListProps{
			Items:    m.priceItems(),
			Selected: m.selected,
			Height:   8,
		}))
	}

	sections = append(sections, b.Text(TextProps{
		Content: "↑↓ navigate · q quit",
		Style:   Style{Faint: true},
	}))

	root := b.Container(ContainerProps{
		Children: sections,
		Style:    Style{Border: true, Padding: 1},
	})
	return root.Render(m.width)
}

func (m DashboardModel) priceItems() []string {
	symbols := make([]string, 0, len(m.prices))
	for s := range m.prices {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	items := make([]string, len(symbols))
	for i, s := range symbols {
		items[i] = fmt.Sprintf("%-8s %12.2f", s, m.prices[s])
	}
	return items
}
