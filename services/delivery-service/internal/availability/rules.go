package availability

// Rule is an explicit tri-state so that "vendor never configured this" is
// distinguishable from "vendor opted out". Absence of a row is RuleUnset and
// the caller supplies the default.
type Rule int8

const (
	RuleUnset Rule = iota
	RuleAllow
	RuleDeny
)

func (r Rule) Allowed(def bool) bool {
	switch r {
	case RuleAllow:
		return true
	case RuleDeny:
		return false
	default:
		return def
	}
}

func RuleFromBool(enabled bool) Rule {
	if enabled {
		return RuleAllow
	}
	return RuleDeny
}
