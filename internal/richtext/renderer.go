package richtext

import (
	"context"
	"html/template"
	"strings"

	"github.com/goliatone/go-sections/internal/logging"
	"github.com/goliatone/go-sections/pkg/interfaces"
)

// Renderer walks a document and dispatches every node and mark to the
// configured serializers.
type Renderer struct {
	serializers Serializers
	logger      interfaces.Logger
}

// RendererOption configures the renderer instance.
type RendererOption func(*Renderer)

// WithSerializers layers overrides on top of the default serializers.
func WithSerializers(overrides Serializers) RendererOption {
	return func(r *Renderer) {
		r.serializers = r.serializers.Merge(overrides)
	}
}

// WithLogger sets the logger used to report unknown node types.
func WithLogger(logger interfaces.Logger) RendererOption {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRenderer constructs a renderer using the default serializers plus any
// overrides supplied through options.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		serializers: DefaultSerializers(),
		logger:      logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Serializers returns the effective dispatch table.
func (r *Renderer) Serializers() Serializers {
	return r.serializers
}

// Render converts the document into HTML. The only error reported is context
// cancellation; unknown types render nothing.
func (r *Renderer) Render(ctx context.Context, doc Document) (template.HTML, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var b strings.Builder
	for i := 0; i < len(doc); {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if doc[i].IsListItem() {
			html, next := r.renderList(doc, i)
			b.WriteString(string(html))
			i = next
			continue
		}
		b.WriteString(string(r.renderNode(&doc[i])))
		i++
	}
	return template.HTML(b.String()), nil
}

func (r *Renderer) renderNode(node *Node) template.HTML {
	serializer, ok := r.serializers.Types[node.Type]
	if !ok || serializer == nil {
		r.logger.Warn("richtext.render.unknown_type", "type", node.Type, "key", node.Key)
		return ""
	}
	props := BlockProps{Node: node}
	if node.IsBlock() {
		props.Children = r.renderChildren(node)
	}
	return serializer(props)
}

type listItem struct {
	node     *Node
	children template.HTML
	nested   []template.HTML
}

// renderList consumes consecutive list items starting at start that share
// its level and type, descending into deeper levels. It returns the index of
// the first node not consumed.
func (r *Renderer) renderList(doc Document, start int) (template.HTML, int) {
	level := doc[start].GetListLevel()
	listType := doc[start].ListItem

	var items []*listItem
	i := start
	for i < len(doc) {
		node := &doc[i]
		if !node.IsListItem() {
			break
		}
		nodeLevel := node.GetListLevel()
		if nodeLevel < level {
			break
		}
		if nodeLevel > level {
			nested, next := r.renderList(doc, i)
			if len(items) == 0 {
				items = append(items, &listItem{node: &Node{Type: TypeBlock, ListItem: listType, Level: level}})
			}
			last := items[len(items)-1]
			last.nested = append(last.nested, nested)
			i = next
			continue
		}
		if node.ListItem != listType {
			break
		}
		items = append(items, &listItem{node: node, children: r.renderChildren(node)})
		i++
	}

	block := r.serializers.Types[TypeBlock]
	var b strings.Builder
	for _, item := range items {
		b.WriteString(string(r.serializers.ListItem(ListItemProps{
			Node:     item.node,
			Children: item.children,
			Nested:   template.HTML(joinHTML(item.nested)),
			Block:    block,
		})))
	}
	return r.serializers.List(ListProps{
		Type:     listType,
		Level:    level,
		Children: template.HTML(b.String()),
	}), i
}

func (r *Renderer) renderChildren(block *Node) template.HTML {
	if len(block.Children) == 0 {
		return ""
	}
	tree := buildMarksTree(block.Children)
	return r.renderMarkNode(block, tree)
}

func (r *Renderer) renderMarkNode(block *Node, node *markNode) template.HTML {
	var b strings.Builder
	for _, child := range node.children {
		switch {
		case child.mark != nil:
			inner := r.renderMarkNode(block, child.mark)
			b.WriteString(string(r.applyMark(block, child.mark.markKey, inner)))
		case child.span != nil:
			b.WriteString(string(r.renderSpan(child.span)))
		}
	}
	return template.HTML(b.String())
}

func (r *Renderer) applyMark(block *Node, key string, children template.HTML) template.HTML {
	mark := resolveMark(block, key)
	serializer, ok := r.serializers.Marks[mark.Type]
	if !ok || serializer == nil {
		r.logger.Debug("richtext.render.unknown_mark", "mark", mark.Type, "key", mark.Key)
		return children
	}
	return serializer(MarkProps{Mark: mark, Block: block, Children: children})
}

func (r *Renderer) renderSpan(span *Span) template.HTML {
	if span.Type == "" || span.Type == TypeSpan {
		return Text(span.Text)
	}
	inline := &Node{Type: span.Type, Key: span.Key, Raw: span.Raw}
	return r.renderNode(inline)
}

func joinHTML(parts []template.HTML) string {
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(string(part))
	}
	return b.String()
}
