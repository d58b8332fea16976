package domain

const unknownDescription = "Unknown"

// QueryClass classifies a query to choose a response token budget.
type QueryClass string

// Available query classes.
const (
	// ClassSimple is a direct factual question.
	ClassSimple QueryClass = "simple"

	// ClassCodeExample asks for code, patterns, or implementation samples.
	ClassCodeExample QueryClass = "code_example"

	// ClassComplex asks for architecture, design, or analysis.
	ClassComplex QueryClass = "complex"
)

// IsValid returns true if the query class is recognised.
func (c QueryClass) IsValid() bool {
	switch c {
	case ClassSimple, ClassCodeExample, ClassComplex:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (c QueryClass) String() string {
	return string(c)
}

// Description returns a human-readable description of the class.
func (c QueryClass) Description() string {
	switch c {
	case ClassSimple:
		return "Simple (quick answer)"
	case ClassCodeExample:
		return "Code Example (complete snippets)"
	case ClassComplex:
		return "Complex (detailed explanation)"
	default:
		return unknownDescription
	}
}
