package tile

import (
	"errors"
	"iter"
)

// errStopIteration signals that the consumer broke out of the range loop.
// It never escapes IterTiles.
var errStopIteration = errors.New("stop iteration")

// IterTiles adapts a Visitor to a range-over-func iterator yielding tile IDs
// and their data. A range loop has no channel for storage errors, so
// iteration panics on them; callers that need to handle errors should use
// VisitTiles directly.
func IterTiles(v Visitor) iter.Seq2[ID, []byte] {
	return func(yield func(ID, []byte) bool) {
		err := v.VisitTiles(func(id ID, data []byte) error {
			if yield(id, data) {
				return nil
			}
			return errStopIteration
		})
		if err != nil && !errors.Is(err, errStopIteration) {
			panic(err)
		}
	}
}
