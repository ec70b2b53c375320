// internal/models/entities.go
package models

// Entities holds the slot values extracted from one message.
type Entities struct {
	Crops     []string `json:"crops"`
	Locations []string `json:"locations"`
	Numbers   []string `json:"numbers"`
	Dates     []string `json:"dates"`
	Problems  []string `json:"problems"`
}

// IsEmpty reports whether no slot was extracted.
func (e Entities) IsEmpty() bool {
	return len(e.Crops) == 0 && len(e.Locations) == 0 && len(e.Numbers) == 0 &&
		len(e.Dates) == 0 && len(e.Problems) == 0
}

// Clone returns a copy that shares no backing arrays with e.
func (e Entities) Clone() Entities {
	return Entities{
		Crops:     cloneStrings(e.Crops),
		Locations: cloneStrings(e.Locations),
		Numbers:   cloneStrings(e.Numbers),
		Dates:     cloneStrings(e.Dates),
		Problems:  cloneStrings(e.Problems),
	}
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
