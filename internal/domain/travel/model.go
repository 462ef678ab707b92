// Package travel serves the travel-health lookups: destination
// recommendations, country name search and the printable trip summary.
// Everything here is gateway-backed; the prompts pin the traveler's
// departure country to France.
package travel

// Vaccine is one vaccine entry of a destination sheet.
type Vaccine struct {
	Name string `json:"name"`
	Note string `json:"note"`
}

// Prophylaxis describes a chemoprophylaxis scheme, typically malaria.
type Prophylaxis struct {
	Name             string `json:"name"`
	Zone             string `json:"zone"`
	Traitement       string `json:"traitement"`
	Duree            string `json:"duree"`
	Contrindications string `json:"contrindications"`
}

// Source is a citable reference attached to a destination sheet.
type Source struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Recommendations is the full destination sheet for one country.
type Recommendations struct {
	VaccinsObligatoires []Vaccine     `json:"vaccinsObligatoires"`
	VaccinsRecommandes  []Vaccine     `json:"vaccinsRecommandes"`
	Prophylaxies        []Prophylaxis `json:"prophylaxies"`
	Conseils            []string      `json:"conseils"`
	Sources             []Source      `json:"sources,omitempty"`
}

// RecommendationsRequest asks for the destination sheet of one country.
type RecommendationsRequest struct {
	Country string `json:"country"`
}

// CountrySearchRequest asks for country names starting with a fragment.
type CountrySearchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

// SummaryRequest asks for a printable document built from an already
// fetched destination sheet.
type SummaryRequest struct {
	Country    string           `json:"country"`
	TravelData *Recommendations `json:"travelData"`
}

// Summary is the printable trip document.
type Summary struct {
	Content  string `json:"content"`
	Filename string `json:"filename"`
}
