package slots

import "reflect"

type dropper interface {
	Drop()
}

// DropFunc resolves once per element type how to run a value's Drop method.
// It returns nil when neither T nor *T can carry one, so callers can skip
// the per-cell dispatch entirely.
func DropFunc[T any]() func(*T) {
	if _, ok := any((*T)(nil)).(dropper); ok {
		return func(p *T) {
			any(p).(dropper).Drop()
		}
	}

	var zero T
	if _, ok := any(zero).(dropper); ok {
		// Pointer element types whose pointee implements Drop. Nil elements
		// are skipped.
		if reflect.TypeFor[T]().Kind() == reflect.Pointer {
			return func(p *T) {
				v := any(*p)
				if reflect.ValueOf(v).IsNil() {
					return
				}
				v.(dropper).Drop()
			}
		}
		return func(p *T) {
			any(*p).(dropper).Drop()
		}
	}

	if reflect.TypeFor[T]().Kind() == reflect.Interface {
		return func(p *T) {
			if d, ok := any(*p).(dropper); ok {
				d.Drop()
			}
		}
	}
	return nil
}

// DropReverse drops cells from last to first and zeroes them.
func DropReverse[T any](cells []T, drop func(*T)) {
	if drop != nil {
		for i := len(cells) - 1; i >= 0; i-- {
			drop(&cells[i])
		}
	}
	clear(cells)
}
