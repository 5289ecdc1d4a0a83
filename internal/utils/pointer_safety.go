package utils

// Value dereferences v, returning the zero value of T for nil.
func Value[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}

// FirstSet returns the first non-nil pointer's value, or the zero value.
func FirstSet[T any](values ...*T) T {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return *new(T)
}

func Ptr[T any](v T) *T {
	return &v
}
