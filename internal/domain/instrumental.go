package domain

// Instrumental is a catalog item. ID is zero until the store assigns one.
type Instrumental struct {
	ID        uint    `json:"id"`
	Title     string  `json:"title"`
	Genre     string  `json:"genre"`
	BPM       int     `json:"bpm"`
	CoverPath string  `json:"coverPath"`
	AudioPath string  `json:"audioPath"`
	Price     float64 `json:"price"`
}

// FilterCriteria is a sparse set of predicates over instrumentals.
// A zero field means no constraint on that field, so an explicit
// zero (BPMExact = 0, PriceMin = 0) cannot be expressed.
type FilterCriteria struct {
	Genre    string
	BPMExact int
	BPMMin   int
	BPMMax   int
	PriceMin float64
	PriceMax float64
}

func (c FilterCriteria) IsEmpty() bool {
	return c == FilterCriteria{}
}
