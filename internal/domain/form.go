package domain

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-ozzo/ozzo-validation/is"
)

type QuestionType string

const (
	QuestionText        QuestionType = "text"
	QuestionEmail       QuestionType = "email"
	QuestionDropdown    QuestionType = "dropdown"
	QuestionTextarea    QuestionType = "textarea"
	QuestionURL         QuestionType = "url"
	QuestionYesNo       QuestionType = "yes_no"
	QuestionMultiSelect QuestionType = "multi_select"
)

func (t QuestionType) IsValid() bool {
	switch t {
	case QuestionText, QuestionEmail, QuestionDropdown, QuestionTextarea,
		QuestionURL, QuestionYesNo, QuestionMultiSelect:
		return true
	}
	return false
}

// NeedsOptions reports whether the type carries an option set. Options are
// required for these types and forbidden for all others.
func (t QuestionType) NeedsOptions() bool {
	return t == QuestionDropdown || t == QuestionMultiSelect
}

// MultiSelectSeparator joins multi-select answers into the single stored
// answer string.
const MultiSelectSeparator = "; "

type Question struct {
	ID               uint         `json:"id"`
	EventID          uint         `json:"event_id"`
	QuestionCategory string       `json:"question_category"`
	QuestionKey      string       `json:"question_key"`
	QuestionText     string       `json:"question_text"`
	QuestionType     QuestionType `json:"question_type"`
	Options          []string     `json:"options,omitempty"`
	IsRequired       bool         `json:"is_required"`
	DisplayOrder     int          `json:"display_order"`
	IsCustom         bool         `json:"is_custom"`
}

// Answer is one submitted answer for a FORM registration. Values is set for
// multi-select questions, Value for everything else.
type Answer struct {
	QuestionID uint
	Value      string
	Values     []string
}

// Flatten returns the single string stored for this answer.
func (a Answer) Flatten() string {
	if len(a.Values) > 0 {
		return strings.Join(a.Values, MultiSelectSeparator)
	}
	return a.Value
}

// contactKeywords marks questions whose answers must be 10-digit phone
// numbers regardless of the declared type.
var contactKeywords = []string{"phone", "mobile", "contact"}

func (q Question) isContactQuestion() bool {
	text := strings.ToLower(q.QuestionText)
	for _, kw := range contactKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func isTenDigits(s string) bool {
	if len(s) != 10 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValidateAnswer checks a submitted answer against the question definition.
// An empty answer is only an error when the question is required.
func (q Question) ValidateAnswer(a Answer) error {
	if q.QuestionType == QuestionMultiSelect {
		if len(a.Values) == 0 {
			if q.IsRequired {
				return fmt.Errorf("%q requires at least one selection", q.QuestionText)
			}
			return nil
		}
		for _, v := range a.Values {
			if !q.hasOption(v) {
				return fmt.Errorf("%q is not an option for %q", v, q.QuestionText)
			}
		}
		return nil
	}

	value := strings.TrimSpace(a.Value)
	if value == "" {
		if q.IsRequired {
			return fmt.Errorf("%q is required", q.QuestionText)
		}
		return nil
	}

	if q.isContactQuestion() {
		if !isTenDigits(value) {
			return fmt.Errorf("%q must be a 10-digit number", q.QuestionText)
		}
		return nil
	}

	switch q.QuestionType {
	case QuestionEmail:
		if err := is.Email.Validate(value); err != nil {
			return fmt.Errorf("%q must be a valid email address", q.QuestionText)
		}
	case QuestionURL:
		u, err := url.Parse(value)
		if err != nil || !u.IsAbs() {
			return fmt.Errorf("%q must be an absolute URL", q.QuestionText)
		}
	case QuestionDropdown:
		if !q.hasOption(value) {
			return fmt.Errorf("%q is not an option for %q", value, q.QuestionText)
		}
	}

	return nil
}

func (q Question) hasOption(value string) bool {
	for _, opt := range q.Options {
		if opt == value {
			return true
		}
	}
	return false
}
