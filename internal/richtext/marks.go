package richtext

import (
	"slices"
	"sort"
)

// decoratorOrder breaks ties between marks that span the same number of
// spans. Annotations (mark definitions) are not listed and therefore sort
// first, which places links outside decorators.
var decoratorOrder = []string{"strong", "em", "code", "underline", "strike-through"}

// markNode is one level of the inline tree built from a block's spans. The
// root has an empty markKey.
type markNode struct {
	markKey  string
	children []inlineChild
}

// inlineChild is either a span (text or inline object) or a nested mark.
type inlineChild struct {
	span *Span
	mark *markNode
}

// buildMarksTree nests spans so that adjacent spans sharing a mark share one
// element. Longer running marks are opened first and end up outermost.
func buildMarksTree(spans []Span) *markNode {
	root := &markNode{}
	stack := []*markNode{root}

	for i := range spans {
		span := &spans[i]
		needed := sortMarksByOccurrence(spans, i)

		pos := 1
		for ; pos < len(stack); pos++ {
			idx := slices.Index(needed, stack[pos].markKey)
			if idx == -1 {
				break
			}
			needed = slices.Delete(needed, idx, idx+1)
		}
		stack = stack[:pos]

		current := stack[len(stack)-1]
		for _, key := range needed {
			node := &markNode{markKey: key}
			current.children = append(current.children, inlineChild{mark: node})
			stack = append(stack, node)
			current = node
		}
		current.children = append(current.children, inlineChild{span: span})
	}
	return root
}

func sortMarksByOccurrence(spans []Span, index int) []string {
	marks := uniqueMarks(spans[index].Marks)
	if len(marks) == 0 {
		return marks
	}

	occurrences := make(map[string]int, len(marks))
	for _, mark := range marks {
		count := 0
		for j := index; j < len(spans); j++ {
			if !slices.Contains(spans[j].Marks, mark) {
				break
			}
			count++
		}
		occurrences[mark] = count
	}

	sort.SliceStable(marks, func(a, b int) bool {
		if occurrences[marks[a]] != occurrences[marks[b]] {
			return occurrences[marks[a]] > occurrences[marks[b]]
		}
		return slices.Index(decoratorOrder, marks[a]) < slices.Index(decoratorOrder, marks[b])
	})
	return marks
}

func uniqueMarks(marks []string) []string {
	out := make([]string, 0, len(marks))
	for _, mark := range marks {
		if mark == "" || slices.Contains(out, mark) {
			continue
		}
		out = append(out, mark)
	}
	return out
}

// resolveMark turns a span mark reference into a Mark. References matching a
// mark definition on the block become annotations, others decorators.
func resolveMark(block *Node, key string) Mark {
	if def, ok := block.markDef(key); ok {
		return Mark{Type: def.Type, Key: def.Key, Raw: def.Raw}
	}
	return Mark{Type: key}
}
