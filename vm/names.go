package vm

import (
	"sort"
	"unicode/utf8"
)

// SuggestionThreshold is the largest edit distance for which an unknown name
// gets a "did you mean" suggestion.
const SuggestionThreshold = 2

// Names maps built-in names to function operands. It is filled once by
// NewNames and never changes afterwards.
type Names struct {
	entries map[string]*Function
	sorted  []string
}

// NewNames builds a table from fns. Later entries replace earlier ones with
// the same name.
func NewNames(fns ...*Function) *Names {
	n := &Names{entries: make(map[string]*Function, len(fns))}
	for _, fn := range fns {
		n.entries[fn.Name] = fn
	}
	for name := range n.entries {
		n.sorted = append(n.sorted, name)
	}
	sort.Strings(n.sorted)
	return n
}

// Lookup returns the function operand bound to name.
func (n *Names) Lookup(name string) (Value, bool) {
	fn, ok := n.entries[name]
	if !ok {
		return None, false
	}
	return FunctionValue(fn), true
}

// Function returns the routine bound to name.
func (n *Names) Function(name string) (*Function, bool) {
	fn, ok := n.entries[name]
	return fn, ok
}

// All returns every bound name in sorted order.
func (n *Names) All() []string {
	out := make([]string, len(n.sorted))
	copy(out, n.sorted)
	return out
}

// Len returns the number of bound names.
func (n *Names) Len() int { return len(n.sorted) }

// Suggest returns the bound name closest to name, provided its edit distance
// is at most threshold. Ties go to the alphabetically first name.
func (n *Names) Suggest(name string, threshold int) (string, bool) {
	return ClosestMatch(name, n.sorted, threshold)
}

// ClosestMatch returns the candidate with the smallest edit distance to
// input, if that distance is within threshold.
func ClosestMatch(input string, candidates []string, threshold int) (string, bool) {
	best := ""
	bestDistance := threshold + 1
	for _, c := range candidates {
		d := Levenshtein(input, c)
		if d <= threshold && d < bestDistance {
			best, bestDistance = c, d
		}
	}
	return best, bestDistance <= threshold
}

// Levenshtein returns the edit distance between a and b, counting
// insertions, deletions and substitutions of characters.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return utf8.RuneCountInString(b)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
