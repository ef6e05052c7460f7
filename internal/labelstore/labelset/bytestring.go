package labelset

import "bytes"

// ByteString is a length-and-pointer byte string. A nil ByteString is
// "absent", the Go equivalent of the C ABI's null buf pointer.
type ByteString []byte

// Equal reports whether two byte strings carry identical content. Two nil
// ByteStrings are equal; a nil and an empty, non-nil ByteString are not,
// matching the C ABI's len/buf pair semantics where length alone cannot
// distinguish "absent" from "empty".
func (b ByteString) Equal(other ByteString) bool {
	if (b == nil) != (other == nil) {
		return false
	}
	return bytes.Equal(b, other)
}

// clone returns an independent copy of b, preserving nilness.
func (b ByteString) clone() ByteString {
	if b == nil {
		return nil
	}
	out := make(ByteString, len(b))
	copy(out, b)
	return out
}

// Label is an ordered (key, value) pair. A Label whose Key is nil is a
// tombstone: readers walking a LabelSet's storage must skip it.
type Label struct {
	Key   ByteString
	Value ByteString
}

func (l Label) tombstoned() bool {
	return l.Key == nil
}

func (l Label) clone() Label {
	return Label{Key: l.Key.clone(), Value: l.Value.clone()}
}
