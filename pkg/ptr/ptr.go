package ptr

// Ptr renvoie un pointeur vers la valeur donnée
func Ptr[T any](v T) *T {
	return &v
}
