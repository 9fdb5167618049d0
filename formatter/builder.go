package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"

	tt "github.com/gnolang/natlog/internal/types"
)

var (
	errorStyle       = color.New(color.FgRed, color.Bold)
	nameStyle        = color.New(color.FgYellow, color.Bold)
	fileStyle        = color.New(color.FgCyan, color.Bold)
	lineStyle        = color.New(color.FgHiBlue, color.Bold)
	ruleStyle        = color.New(color.FgGreen)
	premiseStyle     = color.New(color.FgWhite)
	unjustifiedStyle = color.New(color.FgRed, color.Bold)
)

// FormatProofs formats every report, separated by blank lines.
func FormatProofs(reports []tt.ProofReport) string {
	var builder strings.Builder
	for i, r := range reports {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(FormatProof(r))
	}
	return builder.String()
}

// FormatProof renders a checked proof as a numbered listing. Premises and
// justified steps are numbered from 1 and cited by those numbers.
// Unjustified steps are not facts, so they get no number.
//
//	proof: barbara [all-and-some]
//	 --> proofs.yaml
//	1. all dogs are pets, premise
//	2. all pets are sweethearts, premise
//	3. all dogs are sweethearts, 1, 2 transitivity of all
func FormatProof(r tt.ProofReport) string {
	var builder strings.Builder
	builder.WriteString(header(r))

	if r.Err != "" {
		builder.WriteString(errorStyle.Sprint("error: "))
		builder.WriteString(r.Err)
		builder.WriteString("\n")
		return builder.String()
	}

	width := numberWidth(len(r.Premises) + len(r.Steps))
	for i, p := range r.Premises {
		builder.WriteString(lineStyle.Sprintf("%*d.", width, i+1))
		builder.WriteString(" " + p + ", ")
		builder.WriteString(premiseStyle.Sprint("premise"))
		builder.WriteString("\n")
	}

	for _, s := range r.Steps {
		if !s.Justified {
			builder.WriteString(lineStyle.Sprintf("%*s.", width, "-"))
			builder.WriteString(" " + s.Sentence + ", ")
			builder.WriteString(unjustifiedStyle.Sprint("unjustified"))
			builder.WriteString("\n")
			continue
		}
		builder.WriteString(lineStyle.Sprintf("%*d.", width, s.Index+1))
		builder.WriteString(" " + s.Sentence + ", ")
		if cites := citations(s.Premises); cites != "" {
			builder.WriteString(cites + " ")
		}
		builder.WriteString(ruleStyle.Sprint(s.Rule))
		builder.WriteString("\n")
	}
	return builder.String()
}

// Summary returns a one-line verdict for r.
func Summary(r tt.ProofReport) string {
	switch {
	case r.Err != "":
		return errorStyle.Sprintf("%s: not checked", r.Name)
	case r.Valid():
		return ruleStyle.Sprintf("%s: valid (%d steps)", r.Name, len(r.Steps))
	default:
		return unjustifiedStyle.Sprintf("%s: %d of %d steps unjustified", r.Name, r.Unjustified(), len(r.Steps))
	}
}

func header(r tt.ProofReport) string {
	s := nameStyle.Sprintf("proof: %s", r.Name)
	if r.Logic != "" {
		s += fmt.Sprintf(" [%s]", r.Logic)
	}
	s += "\n"
	if r.File != "" {
		s += lineStyle.Sprint(" --> ") + fileStyle.Sprint(r.File) + "\n"
	}
	return s
}

func citations(idx []int) string {
	parts := make([]string, len(idx))
	for i, n := range idx {
		parts[i] = strconv.Itoa(n + 1)
	}
	return strings.Join(parts, ", ")
}

func numberWidth(n int) int {
	return len(strconv.Itoa(n))
}
