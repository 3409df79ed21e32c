package capacity

import (
	"strings"

	"github.com/finaspirants/sprintcap/pkg/core/model"
)

// minTokenLen filters out initials and honorifics when matching name parts.
const minTokenLen = 4

// matchStrategy returns the roster employees matching the target name, in
// roster order. Strategies are ranked; the chain takes the first strategy
// that yields any candidates and uses its first candidate.
type matchStrategy struct {
	name string
	fn   func(target string, roster []model.Employee) []model.Employee
}

var strategies = []matchStrategy{
	{"exact", matchExact},
	{"substring", matchSubstring},
	{"token-overlap", matchTokenOverlap},
}

// MatchEmployee finds the roster employee for a free-text name, trying
// exact match, then substring containment in either direction, then overlap
// of significant name tokens ("Siva Guru" matches "Sivaguru"). The first
// candidate of the first successful strategy wins; ambiguity is not resolved.
func MatchEmployee(name string, roster []model.Employee) (model.Employee, bool) {
	target := strings.ToLower(strings.TrimSpace(name))
	if target == "" {
		return model.Employee{}, false
	}

	for _, s := range strategies {
		if candidates := s.fn(target, roster); len(candidates) > 0 {
			return candidates[0], true
		}
	}
	return model.Employee{}, false
}

func matchExact(target string, roster []model.Employee) []model.Employee {
	var out []model.Employee
	for _, emp := range roster {
		if strings.ToLower(strings.TrimSpace(emp.Name)) == target {
			out = append(out, emp)
		}
	}
	return out
}

func matchSubstring(target string, roster []model.Employee) []model.Employee {
	var out []model.Employee
	for _, emp := range roster {
		name := strings.ToLower(strings.TrimSpace(emp.Name))
		if name == "" {
			continue
		}
		if strings.Contains(name, target) || strings.Contains(target, name) {
			out = append(out, emp)
		}
	}
	return out
}

func matchTokenOverlap(target string, roster []model.Employee) []model.Employee {
	targetParts := nameTokens(target)

	var out []model.Employee
	for _, emp := range roster {
		empParts := nameTokens(strings.ToLower(emp.Name))
		if overlaps(targetParts, empParts) {
			out = append(out, emp)
		}
	}
	return out
}

func overlaps(targetParts, empParts []string) bool {
	for _, tp := range targetParts {
		if len(tp) < minTokenLen {
			continue
		}
		for _, ep := range empParts {
			if strings.Contains(ep, tp) || strings.Contains(tp, ep) {
				return true
			}
		}
	}
	return false
}

// nameTokens splits a name on whitespace, commas and periods.
func nameTokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '.' || r == '\t'
	})
}
