package domain

// Kind tells the two record variants apart.
type Kind string

const (
	KindExample Kind = "example"
	KindSection Kind = "section"
)

// Record is either an *Example or a *Section.
type Record interface {
	Kind() Kind
	sealed()
}

// Example is one old/new/alt comparison derived from one test function.
// Empty strings stand for absent values.
type Example struct {
	Name    string `json:"name"`
	Title   string `json:"title,omitempty"`
	Details string `json:"details,omitempty"`
	Setup   string `json:"setup"`
	Old     string `json:"old"`
	New     string `json:"new"`
	Alt     string `json:"alt"`
	Output  string `json:"output"`
}

// Kind implements Record.
func (e *Example) Kind() Kind { return KindExample }

func (e *Example) sealed() {}

// Section groups the examples of one test class, in declaration order.
type Section struct {
	Name     string     `json:"name"`
	Title    string     `json:"title,omitempty"`
	Details  string     `json:"details,omitempty"`
	Examples []*Example `json:"examples"`
}

// Kind implements Record.
func (s *Section) Kind() Kind { return KindSection }

func (s *Section) sealed() {}

// Name returns the record's identifier.
func Name(r Record) string {
	switch v := r.(type) {
	case *Example:
		return v.Name
	case *Section:
		return v.Name
	default:
		return ""
	}
}

// CountExamples counts examples, descending into sections.
func CountExamples(records []Record) int {
	n := 0
	for _, r := range records {
		switch v := r.(type) {
		case *Example:
			n++
		case *Section:
			n += len(v.Examples)
		}
	}
	return n
}
