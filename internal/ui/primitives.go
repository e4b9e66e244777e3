package ui

// Style is the platform-neutral style descriptor accepted by every primitive.
// The plain variant ignores everything except layout fields.
type Style struct {
	Bold       bool
	Faint      bool
	Foreground string // hex color, e.g. "#00D26A"
	Border     bool
	Padding    int
	Width      int // 0 = natural width
}

// Renderable is anything the component tree can draw.
type Renderable interface {
	Render(width int) string
}

// Pressable is a renderable that reacts to activation.
type Pressable interface {
	Renderable
	Press()
}

// TextInput is a renderable with editable content.
type TextInput interface {
	Renderable
	Value() string
	SetValue(string)
}

// Primitive props. Every primitive takes a children slot or content, a style
// descriptor, and platform-neutral event callbacks.

type ContainerProps struct {
	Children []Renderable
	Style    Style
}

type TextProps struct {
	Content string
	Style   Style
}

type PressableProps struct {
	Label   string
	OnPress func()
	Style   Style
}

type TextInputProps struct {
	Placeholder string
	Value       string
	OnChange    func(string)
	Style       Style
}

type ScrollContainerProps struct {
	Children []Renderable
	Height   int // visible lines; 0 = show everything
	Offset   int // first visible line
	Style    Style
}

type ImageProps struct {
	Source string
	Alt    string
	Style  Style
}

type SpinnerProps struct {
	Message string
	Frame   int // animation frame index, advanced by the caller's tick
	Style   Style
}

type VirtualizedListProps struct {
	Items    []string
	Selected int
	Height   int // rows materialized at once; 0 = all
	Style    Style
}

// PrimitiveNames is the fixed set of primitives a ComponentBundle binds.
var PrimitiveNames = []string{
	"container",
	"text",
	"pressable",
	"text-input",
	"scroll-container",
	"image",
	"spinner",
	"virtualized-list",
}

// ComponentBundle is the resolved set of UI primitive constructors for one
// platform. Binding is all-or-nothing: every constructor comes from the same
// variant, so one component tree never mixes rendering semantics. Read-only
// after construction.
type ComponentBundle struct {
	Variant string // "toolkit" or "plain"

	Container       func(ContainerProps) Renderable
	Text            func(TextProps) Renderable
	Pressable       func(PressableProps) Pressable
	TextInput       func(TextInputProps) TextInput
	ScrollContainer func(ScrollContainerProps) Renderable
	Image           func(ImageProps) Renderable
	Spinner         func(SpinnerProps) Renderable
	VirtualizedList func(VirtualizedListProps) Renderable
}

// Complete reports whether every primitive in the fixed set is bound.
func (b *ComponentBundle) Complete() bool {
	return b.Container != nil &&
		b.Text != nil &&
		b.Pressable != nil &&
		b.TextInput != nil &&
		b.ScrollContainer != nil &&
		b.Image != nil &&
		b.Spinner != nil &&
		b.VirtualizedList != nil
}
