package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Result is the outcome of applying a Rule to a value.
type Result struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// Rule validates a single field value.
type Rule interface {
	Check(value string) Result
}

// RuleFunc adapts a function into a Rule.
type RuleFunc func(value string) Result

// Check calls the underlying function.
func (fn RuleFunc) Check(value string) Result {
	return fn(value)
}

// Clock returns the current time. DateNotFuture takes one so tests can pin
// "today".
type Clock func() time.Time

// DateLayout is the accepted calendar date format.
const DateLayout = "2006-01-02"

var (
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	phonePattern = regexp.MustCompile(`^[1-9][0-9]{9}$`)
)

// Validate applies rule to value. A nil rule accepts everything.
func Validate(value string, rule Rule) Result {
	if rule == nil {
		return pass()
	}
	return rule.Check(value)
}

// Rules applies each rule in order and returns the first failure.
func Rules(value string, rules ...Rule) Result {
	for _, rule := range rules {
		if result := Validate(value, rule); !result.Valid {
			return result
		}
	}
	return pass()
}

func pass() Result { return Result{Valid: true} }

func fail(message string) Result { return Result{Message: message} }

// Required rejects values that are empty after trimming whitespace.
func Required() Rule {
	return RuleFunc(func(value string) Result {
		if strings.TrimSpace(value) == "" {
			return fail("Required")
		}
		return pass()
	})
}

// Email rejects malformed addresses. Empty values pass so optional email
// fields can combine it with Required.
func Email() Rule {
	return RuleFunc(func(value string) Result {
		value = strings.TrimSpace(value)
		if value == "" || emailPattern.MatchString(value) {
			return pass()
		}
		return fail("Invalid email")
	})
}

// Phone accepts ten digits with a non-zero leading digit. Empty values pass.
func Phone() Rule {
	return RuleFunc(func(value string) Result {
		value = strings.TrimSpace(value)
		if value == "" || phonePattern.MatchString(value) {
			return pass()
		}
		return fail("Invalid phone number")
	})
}

// DateNotFuture rejects unparsable dates and dates after today according to
// clock. Empty values pass.
func DateNotFuture(clock Clock) Rule {
	if clock == nil {
		clock = time.Now
	}
	return RuleFunc(func(value string) Result {
		value = strings.TrimSpace(value)
		if value == "" {
			return pass()
		}
		date, err := time.Parse(DateLayout, value)
		if err != nil {
			return fail("Invalid date")
		}
		now := clock()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if date.After(today) {
			return fail("Date cannot be in the future")
		}
		return pass()
	})
}

// MaxWords rejects values with more than n whitespace separated words.
func MaxWords(n int) Rule {
	return RuleFunc(func(value string) Result {
		if WithinWordLimit(value, n) {
			return pass()
		}
		return fail(fmt.Sprintf("Cannot exceed %d words", n))
	})
}

// Pattern rejects non-empty values that do not match expr. An invalid
// expression rejects every non-empty value.
func Pattern(expr, message string) Rule {
	re, err := regexp.Compile(expr)
	if message == "" {
		message = "Invalid value"
	}
	return RuleFunc(func(value string) Result {
		if value == "" {
			return pass()
		}
		if err != nil || !re.MatchString(value) {
			return fail(message)
		}
		return pass()
	})
}
