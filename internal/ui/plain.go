package ui

import "strings"

// plainBundle binds every primitive to a dependency-free text rendering, the
// fallback when the terminal toolkit cannot be loaded. Styling is dropped;
// layout semantics are preserved.
func plainBundle() *ComponentBundle {
	return &ComponentBundle{
		Variant:         "plain",
		Container:       newPlainContainer,
		Text:            newPlainText,
		Pressable:       newPlainPressable,
		TextInput:       newPlainTextInput,
		ScrollContainer: newPlainScroll,
		Image:           newPlainImage,
		Spinner:         newPlainSpinner,
		VirtualizedList: newPlainList,
	}
}

func joinChildren(children []Renderable, width int) string {
	parts := make([]string, 0, len(children))
	for _, c := range children {
		if c == nil {
			continue
		}
		parts = append(parts, c.Render(width))
	}
	return strings.Join(parts, "\n")
}

type plainContainer struct{ props ContainerProps }

func newPlainContainer(p ContainerProps) Renderable { return &plainContainer{props: p} }

func (c *plainContainer) Render(width int) string {
	return joinChildren(c.props.Children, width)
}

type plainText struct{ props TextProps }

func newPlainText(p TextProps) Renderable { return &plainText{props: p} }

func (t *plainText) Render(int) string { return t.props.Content }

type plainPressable struct{ props PressableProps }

func newPlainPressable(p PressableProps) Pressable { return &plainPressable{props: p} }

func (b *plainPressable) Render(int) string { return "[ " + b.props.Label + " ]" }

func (b *plainPressable) Press() {
	if b.props.OnPress != nil {
		b.props.OnPress()
	}
}

type plainTextInput struct {
	props TextInputProps
	value string
}

func newPlainTextInput(p TextInputProps) TextInput {
	return &plainTextInput{props: p, value: p.Value}
}

func (t *plainTextInput) Render(int) string {
	if t.value == "" && t.props.Placeholder != "" {
		return "(" + t.props.Placeholder + ")"
	}
	return t.value + "_"
}

func (t *plainTextInput) Value() string { return t.value }

func (t *plainTextInput) SetValue(v string) {
	t.value = v
	if t.props.OnChange != nil {
		t.props.OnChange(v)
	}
}

type plainScroll struct{ props ScrollContainerProps }

func newPlainScroll(p ScrollContainerProps) Renderable { return &plainScroll{props: p} }

func (s *plainScroll) Render(width int) string {
	lines := strings.Split(joinChildren(s.props.Children, width), "\n")
	if s.props.Height <= 0 || s.props.Height >= len(lines) {
		return strings.Join(lines, "\n")
	}
	start := s.props.Offset
	if start > len(lines)-s.props.Height {
		start = len(lines) - s.props.Height
	}
	if start < 0 {
		start = 0
	}
	return strings.Join(lines[start:start+s.props.Height], "\n")
}

type plainImage struct{ props ImageProps }

func newPlainImage(p ImageProps) Renderable { return &plainImage{props: p} }

func (i *plainImage) Render(int) string {
	alt := i.props.Alt
	if alt == "" {
		alt = i.props.Source
	}
	return "[image: " + alt + "]"
}

var plainSpinnerFrames = []string{"|", "/", "-", "\\"}

type plainSpinner struct{ props SpinnerProps }

func newPlainSpinner(p SpinnerProps) Renderable { return &plainSpinner{props: p} }

func (s *plainSpinner) Render(int) string {
	out := plainSpinnerFrames[s.props.Frame%len(plainSpinnerFrames)]
	if s.props.Message != "" {
		out += " " + s.props.Message
	}
	return out
}

type plainList struct{ props VirtualizedListProps }

func newPlainList(p VirtualizedListProps) Renderable { return &plainList{props: p} }

func (l *plainList) Render(int) string {
	start, end := listWindow(len(l.props.Items), l.props.Selected, l.props.Height)
	var sb strings.Builder
	for i := start; i < end; i++ {
		if i == l.props.Selected {
			sb.WriteString("> " + l.props.Items[i])
		} else {
			sb.WriteString("  " + l.props.Items[i])
		}
		if i != end-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
