package richtext

import (
	"html/template"
	"regexp"
)

// BlockProps is handed to type serializers. Children holds the already
// rendered inline content of a block and is empty for embedded objects.
type BlockProps struct {
	Node     *Node
	Children template.HTML
}

// MarkProps is handed to mark serializers with the rendered content the mark
// spans.
type MarkProps struct {
	Mark     Mark
	Block    *Node
	Children template.HTML
}

// ListProps describes a run of list items sharing a type and level.
type ListProps struct {
	Type     string
	Level    int
	Children template.HTML
}

// ListItemProps describes a single list item. Nested holds the rendered lists
// indented below the item. Block is the effective block serializer, so
// styled items render the way top level blocks do.
type ListItemProps struct {
	Node     *Node
	Children template.HTML
	Nested   template.HTML
	Block    TypeSerializer
}

type (
	TypeSerializer     func(props BlockProps) template.HTML
	MarkSerializer     func(props MarkProps) template.HTML
	ListSerializer     func(props ListProps) template.HTML
	ListItemSerializer func(props ListItemProps) template.HTML
)

// Serializers is the dispatch table consulted by the Renderer.
type Serializers struct {
	Types    map[string]TypeSerializer
	Marks    map[string]MarkSerializer
	List     ListSerializer
	ListItem ListItemSerializer
}

// DefaultSerializers returns the built-in table for blocks, lists, and the
// standard decorators plus plain links.
func DefaultSerializers() Serializers {
	return Serializers{
		Types: map[string]TypeSerializer{
			TypeBlock: DefaultBlock,
		},
		Marks: map[string]MarkSerializer{
			"strong":         wrapMark("strong"),
			"em":             wrapMark("em"),
			"code":           wrapMark("code"),
			"underline":      DefaultUnderline,
			"strike-through": wrapMark("del"),
			"link":           DefaultLink,
		},
		List:     DefaultList,
		ListItem: DefaultListItem,
	}
}

// Merge returns a copy of s with every non-nil entry of overrides applied on
// top. Neither input is modified.
func (s Serializers) Merge(overrides Serializers) Serializers {
	out := Serializers{
		Types:    make(map[string]TypeSerializer, len(s.Types)+len(overrides.Types)),
		Marks:    make(map[string]MarkSerializer, len(s.Marks)+len(overrides.Marks)),
		List:     s.List,
		ListItem: s.ListItem,
	}
	for name, fn := range s.Types {
		out.Types[name] = fn
	}
	for name, fn := range s.Marks {
		out.Marks[name] = fn
	}
	for name, fn := range overrides.Types {
		if fn != nil {
			out.Types[name] = fn
		}
	}
	for name, fn := range overrides.Marks {
		if fn != nil {
			out.Marks[name] = fn
		}
	}
	if overrides.List != nil {
		out.List = overrides.List
	}
	if overrides.ListItem != nil {
		out.ListItem = overrides.ListItem
	}
	return out
}

var headingStyle = regexp.MustCompile(`^h[1-6]$`)

// DefaultBlock renders a block as a paragraph, heading or blockquote
// depending on its style. Unknown styles render as paragraphs.
func DefaultBlock(props BlockProps) template.HTML {
	style := props.Node.GetStyle()
	switch {
	case headingStyle.MatchString(style):
		return Element(style, props.Children)
	case style == "blockquote":
		return Element("blockquote", props.Children)
	default:
		return Element("p", props.Children)
	}
}

// DefaultList renders <ul> for bullet lists and <ol> for numbered lists.
func DefaultList(props ListProps) template.HTML {
	if props.Type == ListNumber {
		return Element("ol", props.Children)
	}
	return Element("ul", props.Children)
}

// DefaultListItem renders <li>. Styled items (a heading inside a list, say)
// are passed through props.Block, falling back to DefaultBlock.
func DefaultListItem(props ListItemProps) template.HTML {
	if props.Node.GetStyle() == StyleNormal {
		return Element("li", props.Children+props.Nested)
	}
	block := props.Block
	if block == nil {
		block = DefaultBlock
	}
	return Element("li", block(BlockProps{Node: props.Node, Children: props.Children})+props.Nested)
}

// DefaultUnderline renders an underlined span.
func DefaultUnderline(props MarkProps) template.HTML {
	return Element("span", props.Children, "style", "text-decoration:underline")
}

// DefaultLink renders a plain anchor using the mark href.
func DefaultLink(props MarkProps) template.HTML {
	return Element("a", props.Children, "href", SafeURL(props.Mark.String("href")))
}

func wrapMark(tag string) MarkSerializer {
	return func(props MarkProps) template.HTML {
		return Element(tag, props.Children)
	}
}
