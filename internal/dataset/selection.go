// internal/dataset/selection.go
package dataset

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// MaxSelection is the most foods that can be compared at once.
	MaxSelection = 5
	// DefaultSelectionSize is how many foods are preselected on first load.
	DefaultSelectionSize = 3
)

var (
	ErrTooManyFoods  = errors.New("too many foods selected")
	ErrUnknownFood   = errors.New("unknown food")
	ErrDuplicateFood = errors.New("food selected twice")
)

// Selection is an ordered set of at most MaxSelection food names, all present
// in the dataset that produced it. The zero value is an empty selection.
type Selection struct {
	names []string
}

// Select validates names against the dataset and returns them as a Selection.
func (d *Dataset) Select(names ...string) (Selection, error) {
	if len(names) > MaxSelection {
		return Selection{}, fmt.Errorf("%w: %d (max %d)", ErrTooManyFoods, len(names), MaxSelection)
	}
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := d.index[name]; !ok {
			return Selection{}, fmt.Errorf("%w: %q", ErrUnknownFood, name)
		}
		if _, dup := seen[name]; dup {
			return Selection{}, fmt.Errorf("%w: %q", ErrDuplicateFood, name)
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return Selection{names: out}, nil
}

func (s Selection) Len() int { return len(s.names) }

func (s Selection) Empty() bool { return len(s.names) == 0 }

// Names returns a copy of the selected names in selection order.
func (s Selection) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

func (s Selection) String() string {
	return "[" + strings.Join(s.names, ", ") + "]"
}
