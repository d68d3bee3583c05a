package validation

import (
	"strconv"

	"github.com/goliatone/go-scholarform/pkg/model"
)

// FromModel converts the declarative rules of a form field into validators.
// Conditional required rules (Params["when"]) are skipped because they depend
// on sibling values; callers evaluate them separately. Unknown kinds are
// ignored.
func FromModel(field model.Field, clock Clock) []Rule {
	var rules []Rule
	for _, rule := range field.Validations {
		switch rule.Kind {
		case model.ValidationRuleRequired:
			if rule.Params["when"] == "" {
				rules = append(rules, Required())
			}
		case model.ValidationRuleEmail:
			rules = append(rules, Email())
		case model.ValidationRulePhone:
			rules = append(rules, Phone())
		case model.ValidationRuleDateNotFuture:
			rules = append(rules, DateNotFuture(clock))
		case model.ValidationRuleMaxWords:
			if n, err := strconv.Atoi(rule.Params["value"]); err == nil {
				rules = append(rules, MaxWords(n))
			}
		case model.ValidationRulePattern:
			rules = append(rules, Pattern(rule.Params["pattern"], rule.Params["message"]))
		}
	}
	return rules
}
