package layout

import "fmt"

// Size is the grid footprint of a card or block.
type Size string

const (
	Square Size = "square" // 1x1
	Wide   Size = "wide"   // 2x1
	Tall   Size = "tall"   // 1x2
	Big    Size = "big"    // 2x2
)

// Sizes lists every valid Size in declaration order.
var Sizes = []Size{Square, Wide, Tall, Big}

// ParseSize validates s and returns the matching Size.
func ParseSize(s string) (Size, error) {
	for _, size := range Sizes {
		if string(size) == s {
			return size, nil
		}
	}
	return "", fmt.Errorf("unknown size %q", s)
}

// Valid reports whether s is one of the known sizes.
func (s Size) Valid() bool {
	_, err := ParseSize(string(s))
	return err == nil
}

// ColSpan returns the number of grid columns the size occupies.
func (s Size) ColSpan() int {
	if s == Wide || s == Big {
		return 2
	}
	return 1
}

// RowSpan returns the number of grid rows the size occupies.
func (s Size) RowSpan() int {
	if s == Tall || s == Big {
		return 2
	}
	return 1
}

// Class renders the span as the utility classes the page uses.
func (s Size) Class() string {
	return fmt.Sprintf("md:col-span-%d md:row-span-%d", s.ColSpan(), s.RowSpan())
}

// patterns is the repeating five-phase rhythm. Each phase is consumed
// whole or not at all.
var patterns = [][]Size{
	{Big, Tall},
	{Square, Square, Square},
	{Wide, Square},
	{Tall, Big},
	{Square, Wide},
}

// Tags returns the layout tag for every position of a sequence of n items.
//
// The cursor walks the sequence testing only the current phase. When fewer
// items remain than the phase needs, exactly one item gets Square and the
// phase resets to 0. Phases are never skipped.
func Tags(n int) []Size {
	tags := make([]Size, 0, max(n, 0))
	i, p := 0, 0
	for i < n {
		pattern := patterns[p]
		if n-i >= len(pattern) {
			tags = append(tags, pattern...)
			i += len(pattern)
			p = (p + 1) % len(patterns)
			continue
		}
		tags = append(tags, Square)
		i++
		p = 0
	}
	return tags
}

// Placement pairs an item with the tag Reflow assigned to it.
type Placement[T any] struct {
	Item T
	Tag  Size
}

// Reflow annotates every item with its layout tag. Order and length are
// preserved and the input slice is not modified.
func Reflow[T any](items []T) []Placement[T] {
	tags := Tags(len(items))
	out := make([]Placement[T], len(items))
	for i, item := range items {
		out[i] = Placement[T]{Item: item, Tag: tags[i]}
	}
	return out
}
