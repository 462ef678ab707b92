// Package screening implements the pharmacy counter eligibility
// questionnaires: rapid diagnostic tests for cystitis and tonsillitis, and the
// flu/COVID antigen test. Each questionnaire is a data-driven sequence of
// gate questions, optionally followed by a scored phase with an age question.
package screening

import "errors"

// Questionnaire evaluation errors.
var (
	ErrRunTerminated    = errors.New("screening: run already terminated")
	ErrAwaitingAge      = errors.New("screening: age answer expected")
	ErrNotAgeStep       = errors.New("screening: not at the age step")
	ErrUnknownAgeBucket = errors.New("screening: unknown age bucket")
	ErrUnknownVariant   = errors.New("screening: unknown variant")
	ErrSessionNotFound  = errors.New("screening: session not found")
)

// GateEffect describes what a yes/no answer does at a gate question. Gates
// whose protocol expects a specific answer are normalized at table
// construction: "must answer yes" becomes StopIfNo.
type GateEffect int

const (
	StopIfNo GateEffect = iota
	StopIfYes
	WarnIfNo
	WarnIfYes
)

// GateQuestion is one yes/no question in the gate phase.
type GateQuestion struct {
	Text           string
	Effect         GateEffect
	StopMessage    string
	WarningMessage string
	Urgent         bool
}

// ScoreQuestion is one yes/no question in the scored phase. A yes answer
// adds Points to the running score.
type ScoreQuestion struct {
	Text   string
	Points int
}

// AgeBucket is one selectable age range for the scored phase's final
// question. Value is the wire identifier clients send back.
type AgeBucket struct {
	Label  string
	Value  string
	Points int
}

// Definition is the full rule table for one questionnaire variant.
type Definition struct {
	Variant string
	Title   string

	Gates []GateQuestion

	// Sub-messages attached to gate stops. Left empty for variants whose
	// protocol gives no guidance beyond the stop message itself.
	StopSubMessage       string
	StopSubMessageUrgent string

	// Scored phase, empty for gate-only variants.
	Scoring     []ScoreQuestion
	AgeQuestion string
	AgeBuckets  []AgeBucket
	Threshold   int

	SuccessMessage    string
	SuccessSubMessage string

	// Messages for a completed scored phase below the threshold.
	FailScoreMessage    string
	FailScoreSubMessage string
}

// Scored reports whether the variant has a scored phase.
func (d *Definition) Scored() bool {
	return len(d.Scoring) > 0
}

// TotalSteps is the number of questions a fully eligible run answers.
func (d *Definition) TotalSteps() int {
	n := len(d.Gates) + len(d.Scoring)
	if d.Scored() {
		n++ // age question
	}
	return n
}

// Phase identifies where a run currently is.
type Phase string

const (
	PhaseGates   Phase = "gates"
	PhaseScoring Phase = "scoring"
	PhaseAge     Phase = "age"
	PhaseDone    Phase = "done"
)

// Outcome is the immutable result of a terminated run.
type Outcome struct {
	Eligible   bool     `json:"eligible"`
	Message    string   `json:"message"`
	SubMessage string   `json:"sub_message,omitempty"`
	Urgent     bool     `json:"urgent,omitempty"`
	Warnings   []string `json:"warnings"`
	Score      *int     `json:"score,omitempty"`
}

// State is the position of a run inside its questionnaire. Values are
// treated as immutable: every transition returns a fresh State.
type State struct {
	Phase    Phase
	Step     int // index within the current phase
	Score    int
	Warnings []string
	Outcome  *Outcome
}

// Terminated reports whether the run has reached an outcome.
func (s State) Terminated() bool {
	return s.Outcome != nil
}
