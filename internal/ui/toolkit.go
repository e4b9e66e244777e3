package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// toolkitBundle binds every primitive to its terminal-toolkit implementation.
func toolkitBundle() *ComponentBundle {
	return &ComponentBundle{
		Variant:         "toolkit",
		Container:       newToolkitContainer,
		Text:            newToolkitText,
		Pressable:       newToolkitPressable,
		TextInput:       newToolkitTextInput,
		ScrollContainer: newToolkitScroll,
		Image:           newToolkitImage,
		Spinner:         newToolkitSpinner,
		VirtualizedList: newToolkitList,
	}
}

func lipglossFor(s Style, width int) lipgloss.Style {
	st := lipgloss.NewStyle()
	if s.Bold {
		st = st.Bold(true)
	}
	if s.Faint {
		st = st.Faint(true)
	}
	if s.Foreground != "" {
		st = st.Foreground(lipgloss.Color(s.Foreground))
	}
	if s.Border {
		st = st.Border(lipgloss.RoundedBorder()).BorderForeground(ColorBorder)
	}
	if s.Padding > 0 {
		st = st.Padding(0, s.Padding)
	}
	if width <= 0 {
		width = s.Width
	}
	if width > 0 {
		st = st.Width(width)
	}
	return st
}

type toolkitContainer struct{ props ContainerProps }

func newToolkitContainer(p ContainerProps) Renderable { return &toolkitContainer{props: p} }

func (c *toolkitContainer) Render(width int) string {
	parts := make([]string, 0, len(c.props.Children))
	inner := width
	if c.props.Style.Border && inner > 2 {
		inner -= 2 // border columns
	}
	for _, child := range c.props.Children {
		if child == nil {
			continue
		}
		parts = append(parts, child.Render(inner))
	}
	return lipglossFor(c.props.Style, width).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

type toolkitText struct{ props TextProps }

func newToolkitText(p TextProps) Renderable { return &toolkitText{props: p} }

func (t *toolkitText) Render(width int) string {
	return lipglossFor(t.props.Style, width).Render(t.props.Content)
}

type toolkitPressable struct{ props PressableProps }

func newToolkitPressable(p PressableProps) Pressable { return &toolkitPressable{props: p} }

func (b *toolkitPressable) Render(width int) string {
	label := " " + b.props.Label + " "
	st := lipglossFor(b.props.Style, width)
	if b.props.Style.Foreground == "" {
		st = st.Foreground(ColorHighlight)
	}
	return st.Bold(true).Render("[" + label + "]")
}

func (b *toolkitPressable) Press() {
	if b.props.OnPress != nil {
		b.props.OnPress()
	}
}

type toolkitTextInput struct {
	props TextInputProps
	model textinput.Model
}

func newToolkitTextInput(p TextInputProps) TextInput {
	m := textinput.New()
	m.Placeholder = p.Placeholder
	m.SetValue(p.Value)
	return &toolkitTextInput{props: p, model: m}
}

func (t *toolkitTextInput) Render(width int) string {
	if width > 0 {
		t.model.Width = width
	}
	return lipglossFor(t.props.Style, 0).Render(t.model.View())
}

func (t *toolkitTextInput) Value() string { return t.model.Value() }

func (t *toolkitTextInput) SetValue(v string) {
	t.model.SetValue(v)
	if t.props.OnChange != nil {
		t.props.OnChange(v)
	}
}

type toolkitScroll struct{ props ScrollContainerProps }

func newToolkitScroll(p ScrollContainerProps) Renderable { return &toolkitScroll{props: p} }

func (s *toolkitScroll) Render(width int) string {
	parts := make([]string, 0, len(s.props.Children))
	for _, child := range s.props.Children {
		if child == nil {
			continue
		}
		parts = append(parts, child.Render(width))
	}
	content := lipgloss.JoinVertical(lipgloss.Left, parts...)
	if s.props.Height <= 0 {
		return lipglossFor(s.props.Style, width).Render(content)
	}
	if width <= 0 {
		width = lipgloss.Width(content)
	}
	vp := viewport.New(width, s.props.Height)
	vp.SetContent(content)
	vp.SetYOffset(s.props.Offset)
	return lipglossFor(s.props.Style, 0).Render(vp.View())
}

type toolkitImage struct{ props ImageProps }

func newToolkitImage(p ImageProps) Renderable { return &toolkitImage{props: p} }

// Terminals cannot draw bitmaps; the toolkit image is a framed placeholder
// carrying the alt text, so layouts stay intact.
func (i *toolkitImage) Render(width int) string {
	alt := i.props.Alt
	if alt == "" {
		alt = i.props.Source
	}
	body := "🖼  " + alt
	return StyleBorder.Render(lipglossFor(i.props.Style, width).Render(body))
}

type toolkitSpinner struct{ props SpinnerProps }

func newToolkitSpinner(p SpinnerProps) Renderable { return &toolkitSpinner{props: p} }

func (s *toolkitSpinner) Render(width int) string {
	frames := spinner.Dot.Frames
	frame := StyleAccent.Render(frames[s.props.Frame%len(frames)])
	out := frame
	if s.props.Message != "" {
		out += " " + s.props.Message
	}
	return lipglossFor(s.props.Style, width).Render(out)
}

type toolkitList struct{ props VirtualizedListProps }

func newToolkitList(p VirtualizedListProps) Renderable { return &toolkitList{props: p} }

// Render materializes only the visible window around the selected row.
func (l *toolkitList) Render(width int) string {
	start, end := listWindow(len(l.props.Items), l.props.Selected, l.props.Height)
	var sb strings.Builder
	for i := start; i < end; i++ {
		line := l.props.Items[i]
		if i == l.props.Selected {
			sb.WriteString(StyleSelected.Render("▸ " + line))
		} else {
			sb.WriteString("  " + line)
		}
		if i != end-1 {
			sb.WriteByte('\n')
		}
	}
	return lipglossFor(l.props.Style, width).Render(sb.String())
}

// listWindow computes the half-open visible range for a list of n items with
// the selection kept in view.
func listWindow(n, selected, height int) (int, int) {
	if height <= 0 || height >= n {
		return 0, n
	}
	start := selected - height/2
	if start < 0 {
		start = 0
	}
	if start+height > n {
		start = n - height
	}
	return start, start + height
}
