// Package vaccination checks a patient's vaccination status against the
// French immunization schedule. Classification into overdue, upcoming and
// non-catchable vaccines is a deterministic rule-table evaluation; the AI
// gateway only contributes optional free-text advice.
package vaccination

// NoLimit marks a catch-up window that never closes.
const NoLimit = -1

// Vaccine categories as displayed at the counter.
const (
	CategoryMandatory   = "Obligatoire"
	CategoryRecommended = "Recommandé"
	CategorySenior      = "Adulte/Senior"
)

// Rule describes one vaccine of the schedule and its catch-up window.
type Rule struct {
	ID       string
	Label    string
	Category string

	// DueAge is the display form of the scheduled age ("2 mois", "11-14 ans").
	DueAge string

	// StartAge is the age in years from which the vaccine is due.
	StartAge int

	// CatchUpMaxAge is the last age (inclusive, years) at which catch-up is
	// still possible, or NoLimit.
	CatchUpMaxAge int

	Note        string
	CatchUpInfo string
	LateReason  string

	// Annual vaccines repeat every year once due (flu, COVID booster).
	Annual bool

	// Boosters lists fixed booster ages; BoosterEvery adds a recurring
	// interval after the last fixed booster.
	Boosters     []int
	BoosterEvery int
}

// Request is the analysis input.
type Request struct {
	Age       *int     `json:"age"`
	Completed []string `json:"completed_vaccines"`
	Sex       string   `json:"sex,omitempty"`
	Pregnant  bool     `json:"pregnant,omitempty"`
}

// Overdue is a vaccine that should already have been given and can still be
// caught up.
type Overdue struct {
	Name        string `json:"name"`
	DueAge      string `json:"dueAge"`
	Note        string `json:"note,omitempty"`
	CanCatchUp  bool   `json:"canCatchUp"`
	CatchUpInfo string `json:"catchUpInfo,omitempty"`
}

// Upcoming is a vaccine or booster to plan for.
type Upcoming struct {
	Name    string `json:"name"`
	NextAge string `json:"nextAge"`
	Note    string `json:"note,omitempty"`
}

// NotCatchable is a vaccine whose window has closed.
type NotCatchable struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Analysis is the four-partition classification result. Field names follow
// the counter application's wire contract.
type Analysis struct {
	EnRetard        []Overdue      `json:"enRetard"`
	AVenir          []Upcoming     `json:"aVenir"`
	NonRattrapables []NotCatchable `json:"nonRattrapables"`
	Recommandations []string       `json:"recommandations"`
}
