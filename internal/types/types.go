package types

// StepResult is the outcome of checking one proof step.
type StepResult struct {
	// Index is the position of the step in the fact list, counting premises.
	Index     int    `json:"index"`
	Sentence  string `json:"sentence"`
	Justified bool   `json:"justified"`
	// Premises are the cited fact indices, in rule input order.
	Premises []int  `json:"premises,omitempty"`
	Rule     string `json:"rule,omitempty"`
}

// ProofReport is the outcome of checking one proof.
type ProofReport struct {
	File     string       `json:"file,omitempty"`
	Name     string       `json:"name"`
	Logic    string       `json:"logic,omitempty"`
	Premises []string     `json:"premises"`
	Steps    []StepResult `json:"steps"`
	// Err is set when the proof could not be checked at all, e.g. because
	// a sentence has no parse or the logic is unknown.
	Err string `json:"error,omitempty"`
}

// Valid reports whether the proof was checked and every step is justified.
func (r ProofReport) Valid() bool {
	if r.Err != "" {
		return false
	}
	for _, s := range r.Steps {
		if !s.Justified {
			return false
		}
	}
	return true
}

// Unjustified returns the number of steps without a justification.
func (r ProofReport) Unjustified() int {
	n := 0
	for _, s := range r.Steps {
		if !s.Justified {
			n++
		}
	}
	return n
}
