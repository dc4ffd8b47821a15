package debugformat

// Skipper decides which fields are left out of the values block.
type Skipper interface {
	Skip(name string, value any) bool
}

// SkipFunc adapts a predicate to Skipper.
type SkipFunc func(name string, value any) bool

func (f SkipFunc) Skip(name string, value any) bool {
	return f(name, value)
}

type keySet map[string]struct{}

func (s keySet) Skip(name string, _ any) bool {
	_, ok := s[name]
	return ok
}

// SkipKeys skips the named fields.
func SkipKeys(names ...string) Skipper {
	set := make(keySet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

var reserved = SkipKeys(LevelKey, MessageKey, TimestampKey, NameKey)
