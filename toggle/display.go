package toggle

// Container is the part of a scene group a Display drives.
type Container[T comparable] interface {
	Add(T)
	Remove(T) bool
	Contains(T) bool
}

// Display tracks which values it has placed in a container. Sync makes the
// container hold exactly the desired values among those the Display
// manages, leaving anything else in the container untouched.
type Display[T comparable] struct {
	shown map[T]bool
	order []T
}

func NewDisplay[T comparable]() *Display[T] {
	return &Display[T]{shown: make(map[T]bool)}
}

// Sync adds the desired values that are missing and removes previously
// shown values that are no longer desired. Values already present are not
// re-added. It returns what changed.
func (d *Display[T]) Sync(c Container[T], desired []T) (added, removed []T) {
	want := make(map[T]bool, len(desired))
	for _, v := range desired {
		want[v] = true
	}

	kept := d.order[:0]
	for _, v := range d.order {
		if want[v] {
			kept = append(kept, v)
			continue
		}
		if c.Contains(v) {
			c.Remove(v)
		}
		delete(d.shown, v)
		removed = append(removed, v)
	}
	d.order = kept

	for _, v := range desired {
		if d.shown[v] {
			if !c.Contains(v) {
				c.Add(v)
			}
			continue
		}
		if !c.Contains(v) {
			c.Add(v)
		}
		d.shown[v] = true
		d.order = append(d.order, v)
		added = append(added, v)
	}
	return added, removed
}

// Shown returns the values currently placed by the Display, in the order
// they were added.
func (d *Display[T]) Shown() []T {
	return append([]T(nil), d.order...)
}
