package medication

import "errors"

// Info lookup modes, matching the counter application's tabs.
const (
	ModeContraindications = "contre-indications"
	ModePregnancy         = "grossesse"
	ModeBreastfeeding     = "allaitement"
	ModeAdvice            = "indications-conseils"
)

// ErrUnknownMode is returned for an info mode outside the known set.
var ErrUnknownMode = errors.New("medication: unknown info mode")

// InfoRequest asks for one information sheet of a medication.
type InfoRequest struct {
	MedicationName string `json:"medicationName"`
	Mode           string `json:"mode"`
}

// InteractionsRequest asks for the interaction analysis of two medications.
type InteractionsRequest struct {
	Medication1 string `json:"medication1"`
	Medication2 string `json:"medication2"`
}

// PhytoRequest asks for the interaction analysis between a medication and a
// medicinal plant.
type PhytoRequest struct {
	Medication string `json:"medication"`
	Plant      string `json:"plant"`
}

// NameRequest carries a single medication name.
type NameRequest struct {
	MedicationName string `json:"medicationName"`
}

// DosageEntry is one age/weight bracket of a dosage table.
type DosageEntry struct {
	Age          string `json:"age"`
	Poids        string `json:"poids"`
	Voie         string `json:"voie"`
	DosePrise    string `json:"dosePrise"`
	Frequence    string `json:"frequence"`
	DoseMaxPrise string `json:"doseMaxPrise"`
	DoseMax24h   string `json:"doseMax24h"`
	Notes        string `json:"notes"`
}

// DosageResult is the synthesized dosage table.
type DosageResult struct {
	Dosages []DosageEntry `json:"dosages"`
}

// MedicationAnalysis identifies the analyzed medication.
type MedicationAnalysis struct {
	OriginalName string `json:"originalName"`
	DCI          string `json:"dci"`
	Dosage       string `json:"dosage"`
	Form         string `json:"form"`
}

// Generic is one representative generic of a medication.
type Generic struct {
	Name string `json:"name"`
	Note string `json:"note,omitempty"`
}

// BrandEquivalent is a brand-name specialty with the same molecule and
// dosage.
type BrandEquivalent struct {
	Name       string `json:"name"`
	Form       string `json:"form"`
	Laboratory string `json:"laboratory,omitempty"`
	Note       string `json:"note,omitempty"`
}

// IndicationEquivalent is an alternative sharing the therapeutic indication.
type IndicationEquivalent struct {
	Name            string `json:"name"`
	ProductType     string `json:"productType"`
	Indication      string `json:"indication"`
	ActivePrinciple string `json:"activePrinciple,omitempty"`
	Note            string `json:"note,omitempty"`
}

// EquivalenceResult is the full equivalence analysis.
type EquivalenceResult struct {
	MedicationAnalysis    MedicationAnalysis     `json:"medicationAnalysis"`
	Generics              []Generic              `json:"generics"`
	BrandEquivalents      []BrandEquivalent      `json:"brandEquivalents"`
	IndicationEquivalents []IndicationEquivalent `json:"indicationEquivalents"`
	ExcipientWarnings     []string               `json:"excipientWarnings"`
	Summary               []string               `json:"summary"`
	SubstitutionAdvice    string                 `json:"substitutionAdvice"`
	VerificationNote      string                 `json:"verificationNote"`
}
