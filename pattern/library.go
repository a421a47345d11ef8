package pattern

// Library is a named registry of patterns with one designated start pattern.
// Every constructed pattern belongs to exactly one library; references
// between patterns are resolved by name through the owning library.
type Library struct {
	patterns []*Pattern
	byName   map[string]*Pattern
	start    string
}

// NewLibrary creates an empty library whose start pattern is named start.
// The start pattern must be added before the library is used for matching.
func NewLibrary(start string) *Library {
	return &Library{byName: make(map[string]*Pattern), start: start}
}

// Add appends a pattern to the library and returns it.
// Names are expected to be unique; when duplicates are added anyway,
// lookups return the first added pattern with the name.
func (l *Library) Add(p *Pattern) *Pattern {
	l.patterns = append(l.patterns, p)
	if _, found := l.byName[p.name]; !found {
		l.byName[p.name] = p
	}
	return p
}

// Get returns the first added pattern with the given name, nil if absent.
func (l *Library) Get(name string) *Pattern {
	return l.byName[name]
}

// Start returns the designated start pattern, nil if not added yet.
func (l *Library) Start() *Pattern {
	return l.byName[l.start]
}

// StartName returns the designated start pattern name.
func (l *Library) StartName() string {
	return l.start
}

// Len returns the number of added patterns.
func (l *Library) Len() int {
	return len(l.patterns)
}

// Patterns returns all added patterns in addition order.
func (l *Library) Patterns() []*Pattern {
	return l.patterns
}
