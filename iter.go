package fastbump

import "iter"

// indexed pairs every cell with its handle, in position order.
func indexed[T any](cells []T) iter.Seq2[Idx[T], *T] {
	return func(yield func(Idx[T], *T) bool) {
		for i := range cells {
			if !yield(Idx[T]{index: i}, &cells[i]) {
				return
			}
		}
	}
}

func values[T any](cells []T) iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for i := range cells {
			if !yield(&cells[i]) {
				return
			}
		}
	}
}

// consume yields the moved-out values once. Values not yielded because the
// caller stopped early are dropped in reverse order.
func consume[T any](items []T, drop func(*T)) iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range items {
			v := items[i]
			var zero T
			items[i] = zero
			if !yield(v) {
				if drop != nil {
					for j := len(items) - 1; j > i; j-- {
						drop(&items[j])
					}
				}
				clear(items)
				items = nil
				return
			}
		}
		items = nil
	}
}
