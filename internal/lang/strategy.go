package lang

// Strategy binds a language profile to the behavior of its kind.
// Strategies are immutable and shared.
type Strategy struct {
	profile Profile
}

// Profile returns the lexical facts of the strategy's language.
func (s *Strategy) Profile() Profile {
	return s.profile
}

// Language returns the strategy's language.
func (s *Strategy) Language() Language {
	return s.profile.Language
}

// Kind returns the strategy variant.
func (s *Strategy) Kind() Kind {
	return s.profile.Kind
}

// WithOverride returns a strategy with overridden profile facts.
// The receiver is returned unchanged for a zero override.
func (s *Strategy) WithOverride(o Override) *Strategy {
	if o.IsZero() {
		return s
	}
	return &Strategy{profile: s.profile.withOverride(o)}
}

// strategies is built once and never mutated.
var strategies = func() map[Language]*Strategy {
	m := make(map[Language]*Strategy, languageCount)
	for _, l := range All() {
		m[l] = &Strategy{profile: profileFor(l)}
	}
	return m
}()

// Resolve returns the strategy for a host language identifier.
// Repeated calls for the same identifier return the same instance.
// Unknown identifiers return false.
func Resolve(hostID string) (*Strategy, bool) {
	l, ok := Parse(hostID)
	if !ok {
		return nil, false
	}
	return For(l), true
}

// For returns the strategy of a language, or nil for Unknown.
func For(l Language) *Strategy {
	return strategies[l]
}
