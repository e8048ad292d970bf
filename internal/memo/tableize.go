package memo

// Tableize memoizes a pure function of one comparable argument.
//
// fn must be referentially transparent: the table may call it more than
// once for the same key under contention and keeps whichever result was
// stored last.
func Tableize[K comparable, V any](fn func(K) V, maxSize uint32) func(K) V {
	table := NewTable[K, V](maxSize)
	return func(k K) V {
		if v, ok := table.Load(k); ok {
			return v
		}
		v := fn(k)
		table.Store(k, v)
		return v
	}
}
