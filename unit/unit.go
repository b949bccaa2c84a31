package unit

import "strings"

// Status is the sales status of a single unit.
type Status string

const (
	StatusAvailable Status = "Available"
	StatusHeld      Status = "Held"
	StatusSold      Status = "Sold"
)

// ParseStatus maps a raw status cell onto a Status. Matching is by
// case-insensitive containment so values like "Reserved (pending)" or
// "Sold Out" resolve correctly. Anything else, including an empty
// cell, is Available.
func ParseStatus(raw string) Status {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(value, "held"), strings.Contains(value, "reserved"):
		return StatusHeld
	case strings.Contains(value, "sold"), strings.Contains(value, "booked"):
		return StatusSold
	default:
		return StatusAvailable
	}
}

func (s Status) String() string {
	return string(s)
}

// ParsedUnit is the normalized unit record produced by the importer
// and consumed by validation and persistence. Optional string fields
// use "" for absent; numeric coercion of monetary fields happens at
// the storage layer, not here.
type ParsedUnit struct {
	UnitNumber      string
	Floor           int
	Type            string
	Size            string
	Price           string
	DiscountPrice   string
	RegistrationFee string
	ROIPercentage   string
	PaymentPlan     string
	Status          Status

	// SourceRow is the 1-based row in the originating sheet, kept for
	// source-row error attribution.
	SourceRow  int
	SourceFile string
}

// ProjectBatch is the inventory extracted from one sheet: one
// real-estate project and its units.
type ProjectBatch struct {
	Name           string
	PossessionDate string
	Units          []ParsedUnit
	SourceSheet    string
}

// ValidationError is one advisory business-rule finding. The unit it
// points at stays in the batch; callers decide whether to persist or
// skip it.
type ValidationError struct {
	Row     int    `json:"row"`
	Column  string `json:"column"`
	Message string `json:"error"`
	Value   string `json:"value"`
}
