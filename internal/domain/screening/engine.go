package screening

// Pure transition functions over questionnaire state. All side effects
// (sessions, locking, HTTP) live elsewhere; these functions only map an
// answer onto the next state.

// Start returns the initial state for a definition.
func Start(def *Definition) State {
	return State{Phase: PhaseGates}
}

// Reset is an alias for Start; a reset run keeps nothing from its past.
func Reset(def *Definition) State {
	return Start(def)
}

// Answer applies a yes/no answer to the current question and returns the next
// state. It fails with ErrRunTerminated once an outcome exists and with
// ErrAwaitingAge when the run expects an age bucket instead.
func Answer(def *Definition, s State, answer bool) (State, error) {
	if s.Terminated() {
		return s, ErrRunTerminated
	}

	switch s.Phase {
	case PhaseGates:
		return answerGate(def, s, answer), nil
	case PhaseScoring:
		return answerScoring(def, s, answer), nil
	case PhaseAge:
		return s, ErrAwaitingAge
	default:
		return s, ErrRunTerminated
	}
}

func answerGate(def *Definition, s State, answer bool) State {
	q := def.Gates[s.Step]

	stop := false
	warnings := s.Warnings
	switch q.Effect {
	case StopIfNo:
		stop = !answer
	case StopIfYes:
		stop = answer
	case WarnIfNo:
		if !answer {
			warnings = appendWarning(warnings, q.WarningMessage)
		}
	case WarnIfYes:
		if answer {
			warnings = appendWarning(warnings, q.WarningMessage)
		}
	}

	if stop {
		sub := def.StopSubMessage
		if q.Urgent {
			sub = def.StopSubMessageUrgent
		}
		return State{
			Phase:    PhaseDone,
			Step:     s.Step,
			Warnings: warnings,
			Outcome: &Outcome{
				Eligible:   false,
				Message:    q.StopMessage,
				SubMessage: sub,
				Urgent:     q.Urgent,
				Warnings:   outcomeWarnings(warnings),
			},
		}
	}

	next := State{Phase: PhaseGates, Step: s.Step + 1, Warnings: warnings}
	if next.Step < len(def.Gates) {
		return next
	}

	// Gate phase complete.
	if def.Scored() {
		next.Phase = PhaseScoring
		next.Step = 0
		return next
	}
	next.Phase = PhaseDone
	next.Outcome = &Outcome{
		Eligible:   true,
		Message:    def.SuccessMessage,
		SubMessage: def.SuccessSubMessage,
		Warnings:   outcomeWarnings(warnings),
	}
	return next
}

func answerScoring(def *Definition, s State, answer bool) State {
	score := s.Score
	if answer {
		score += def.Scoring[s.Step].Points
	}

	next := State{Phase: PhaseScoring, Step: s.Step + 1, Score: score, Warnings: s.Warnings}
	if next.Step >= len(def.Scoring) {
		next.Phase = PhaseAge
		next.Step = 0
	}
	return next
}

// AnswerAge applies the selected age bucket, finishes the scored phase and
// produces the outcome against the threshold.
func AnswerAge(def *Definition, s State, value string) (State, error) {
	if s.Terminated() {
		return s, ErrRunTerminated
	}
	if s.Phase != PhaseAge {
		return s, ErrNotAgeStep
	}

	bucket, ok := findBucket(def.AgeBuckets, value)
	if !ok {
		return s, ErrUnknownAgeBucket
	}

	final := s.Score + bucket.Points
	outcome := &Outcome{
		Score:    &final,
		Warnings: outcomeWarnings(s.Warnings),
	}
	if final >= def.Threshold {
		outcome.Eligible = true
		outcome.Message = def.SuccessMessage
		outcome.SubMessage = def.SuccessSubMessage
	} else {
		outcome.Eligible = false
		outcome.Message = def.FailScoreMessage
		outcome.SubMessage = def.FailScoreSubMessage
	}

	return State{
		Phase:    PhaseDone,
		Score:    final,
		Warnings: s.Warnings,
		Outcome:  outcome,
	}, nil
}

// CurrentStep returns the 1-based step number of the question the run is
// waiting on, and the total number of steps. Terminated runs report the total
// for both.
func CurrentStep(def *Definition, s State) (int, int) {
	total := def.TotalSteps()
	switch s.Phase {
	case PhaseGates:
		return s.Step + 1, total
	case PhaseScoring:
		return len(def.Gates) + s.Step + 1, total
	case PhaseAge:
		return len(def.Gates) + len(def.Scoring) + 1, total
	default:
		return total, total
	}
}

// CurrentQuestion returns the text of the question the run is waiting on.
// Empty for terminated runs and for the age step, which is served with its
// bucket options instead.
func CurrentQuestion(def *Definition, s State) string {
	switch s.Phase {
	case PhaseGates:
		return def.Gates[s.Step].Text
	case PhaseScoring:
		return def.Scoring[s.Step].Text
	case PhaseAge:
		return def.AgeQuestion
	default:
		return ""
	}
}

func findBucket(buckets []AgeBucket, value string) (AgeBucket, bool) {
	for _, b := range buckets {
		if b.Value == value {
			return b, true
		}
	}
	return AgeBucket{}, false
}

// outcomeWarnings never returns nil: the warnings field of an outcome
// serializes as an empty list, not null.
func outcomeWarnings(warnings []string) []string {
	if warnings == nil {
		return []string{}
	}
	return warnings
}

// appendWarning copies before appending so older states keep their slice.
func appendWarning(warnings []string, msg string) []string {
	if msg == "" {
		return warnings
	}
	out := make([]string, len(warnings), len(warnings)+1)
	copy(out, warnings)
	return append(out, msg)
}
