package authoring

import "slices"

// positioned is satisfied by pointers to tree nodes that carry a sibling index
type positioned[T any] interface {
	*T
	Position() int
	SetPosition(int)
}

// Renumber rewrites every node's position to its index in the list
func Renumber[T any, P positioned[T]](list []T) {
	for i := range list {
		P(&list[i]).SetPosition(i)
	}
}

// IsContiguous reports whether positions in the list are exactly 0..n-1 in array order
func IsContiguous[T any, P positioned[T]](list []T) bool {
	for i := range list {
		if P(&list[i]).Position() != i {
			return false
		}
	}
	return true
}

// Move removes the node at source, inserts it at target and renumbers the list
//
// The target is clamped to [0, len(list)-1] once the node is out of the list, so any
// value past the end moves the node last. An out-of-range source returns ErrNotFound
// and leaves the list untouched. The returned list never aliases the input.
func Move[T any, P positioned[T]](list []T, source, target int) ([]T, error) {
	if source < 0 || source >= len(list) {
		return list, notFound("position %d", source)
	}

	out := slices.Clone(list)
	node := out[source]
	out = slices.Delete(out, source, source+1)
	target = max(0, min(target, len(out)))
	out = slices.Insert(out, target, node)

	Renumber[T, P](out)
	return out, nil
}

// Remove deletes the node at index and renumbers the remaining siblings
func Remove[T any, P positioned[T]](list []T, index int) ([]T, T, error) {
	var zero T
	if index < 0 || index >= len(list) {
		return list, zero, notFound("position %d", index)
	}

	removed := list[index]
	out := slices.Clone(list)
	out = slices.Delete(out, index, index+1)

	Renumber[T, P](out)
	return out, removed, nil
}

// Append adds node at the end of the list with position equal to the previous length
func Append[T any, P positioned[T]](list []T, node T) []T {
	P(&node).SetPosition(len(list))
	return append(slices.Clip(list), node)
}
