package ir

// Equal reports structural equality of two trees, including number kind:
// an integer never equals a float with the same numeric value.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case NullType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case StringType:
		return a.String == b.String
	case NumberType:
		return equalNumbers(a, b)
	case ArrayType:
		return equalValues(a, b)
	case ObjectType:
		if len(a.Keys) != len(b.Keys) {
			return false
		}
		for i := range a.Keys {
			if a.Keys[i] != b.Keys[i] {
				return false
			}
		}
		return equalValues(a, b)
	}
	return false
}

func equalNumbers(a, b *Node) bool {
	if a.Int64 != nil {
		return b.Int64 != nil && *a.Int64 == *b.Int64
	}
	if a.Float64 != nil {
		return b.Float64 != nil && *a.Float64 == *b.Float64
	}
	return b.Int64 == nil && b.Float64 == nil
}

func equalValues(a, b *Node) bool {
	if len(a.Values) != len(b.Values) {
		return false
	}
	for i := range a.Values {
		if !Equal(a.Values[i], b.Values[i]) {
			return false
		}
	}
	return true
}
