package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswerFlatten(t *testing.T) {
	assert.Equal(t, "hello", Answer{Value: "hello"}.Flatten())
	assert.Equal(t, "Vegetarian; Gluten-Free", Answer{Values: []string{"Vegetarian", "Gluten-Free"}}.Flatten())
	assert.Equal(t, "", Answer{}.Flatten())
}

func TestValidateAnswer(t *testing.T) {
	tests := []struct {
		name     string
		question Question
		answer   Answer
		wantErr  bool
	}{
		{
			name:     "required text missing",
			question: Question{QuestionText: "Full Name", QuestionType: QuestionText, IsRequired: true},
			answer:   Answer{Value: "  "},
			wantErr:  true,
		},
		{
			name:     "optional text missing",
			question: Question{QuestionText: "Nickname", QuestionType: QuestionText},
			answer:   Answer{},
			wantErr:  false,
		},
		{
			name:     "valid email",
			question: Question{QuestionText: "Email Address", QuestionType: QuestionEmail, IsRequired: true},
			answer:   Answer{Value: "asha@college.edu"},
			wantErr:  false,
		},
		{
			name:     "invalid email",
			question: Question{QuestionText: "Email Address", QuestionType: QuestionEmail, IsRequired: true},
			answer:   Answer{Value: "not-an-email"},
			wantErr:  true,
		},
		{
			name:     "valid url",
			question: Question{QuestionText: "Portfolio", QuestionType: QuestionURL},
			answer:   Answer{Value: "https://example.com/asha"},
			wantErr:  false,
		},
		{
			name:     "relative url rejected",
			question: Question{QuestionText: "Portfolio", QuestionType: QuestionURL},
			answer:   Answer{Value: "/asha"},
			wantErr:  true,
		},
		{
			name:     "dropdown value in options",
			question: Question{QuestionText: "Skill Level", QuestionType: QuestionDropdown, Options: []string{"Beginner", "Advanced"}},
			answer:   Answer{Value: "Beginner"},
			wantErr:  false,
		},
		{
			name:     "dropdown value outside options",
			question: Question{QuestionText: "Skill Level", QuestionType: QuestionDropdown, Options: []string{"Beginner", "Advanced"}},
			answer:   Answer{Value: "Expert"},
			wantErr:  true,
		},
		{
			name:     "multi select all valid",
			question: Question{QuestionText: "Dietary Needs", QuestionType: QuestionMultiSelect, Options: []string{"Vegetarian", "Vegan", "None"}},
			answer:   Answer{Values: []string{"Vegetarian", "Vegan"}},
			wantErr:  false,
		},
		{
			name:     "multi select with unknown option",
			question: Question{QuestionText: "Dietary Needs", QuestionType: QuestionMultiSelect, Options: []string{"Vegetarian", "Vegan"}},
			answer:   Answer{Values: []string{"Paleo"}},
			wantErr:  true,
		},
		{
			name:     "required multi select empty",
			question: Question{QuestionText: "Dietary Needs", QuestionType: QuestionMultiSelect, Options: []string{"Vegetarian"}, IsRequired: true},
			answer:   Answer{},
			wantErr:  true,
		},
		{
			name:     "phone question enforces ten digits",
			question: Question{QuestionText: "Phone Number", QuestionType: QuestionText, IsRequired: true},
			answer:   Answer{Value: "98765"},
			wantErr:  true,
		},
		{
			name:     "phone question with ten digits",
			question: Question{QuestionText: "Phone Number", QuestionType: QuestionText, IsRequired: true},
			answer:   Answer{Value: "9876543210"},
			wantErr:  false,
		},
		{
			name:     "contact keyword in text question",
			question: Question{QuestionText: "Emergency contact", QuestionType: QuestionText},
			answer:   Answer{Value: "call me"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.question.ValidateAnswer(tt.answer)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuestionTypeNeedsOptions(t *testing.T) {
	assert.True(t, QuestionDropdown.NeedsOptions())
	assert.True(t, QuestionMultiSelect.NeedsOptions())
	assert.False(t, QuestionText.NeedsOptions())
	assert.False(t, QuestionYesNo.NeedsOptions())
}
