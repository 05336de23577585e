package classify

// Kind distinguishes the destination variants an identity can take.
type Kind string

const (
	KindEpisode Kind = "episode"
	KindSpecial Kind = "special"
	KindOVA     Kind = "ova"
	KindExtra   Kind = "extra"
	KindMovie   Kind = "movie"
	KindUnknown Kind = "unknown"
)

// Confidence records how an identity was resolved.
type Confidence string

const (
	ConfidenceRule       Confidence = "rule-matched"
	ConfidenceAI         Confidence = "ai-assisted"
	ConfidenceUnresolved Confidence = "unresolved"
)

// Identity is the resolved destination identity for one media file.
// Unresolved identities route to quarantine, never to a computed path.
type Identity struct {
	Kind       Kind
	Series     string
	Season     int
	Episode    int
	ExtraKind  string // extras bucket, e.g. "openings"
	MovieTitle string
	MovieYear  int
	Confidence Confidence
}

// Resolved reports whether the identity can be mapped to a library path.
func (id Identity) Resolved() bool {
	return id.Kind != KindUnknown && id.Confidence != ConfidenceUnresolved
}
