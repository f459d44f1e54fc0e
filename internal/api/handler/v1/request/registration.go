package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type FormQuestion struct {
	QuestionKey      string   `json:"question_key"`
	QuestionText     string   `json:"question_text"`
	QuestionType     string   `json:"question_type"`
	QuestionCategory string   `json:"question_category"`
	Options          []string `json:"options"`
	IsRequired       bool     `json:"is_required"`
	IsCustom         bool     `json:"is_custom"`
}

type DefineFormRequest struct {
	Questions []FormQuestion `json:"questions"`
}

func (req *DefineFormRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Questions, validation.Required),
	)
}

type FormAnswer struct {
	QuestionID uint     `json:"question_id"`
	Value      string   `json:"value"`
	Values     []string `json:"values"`
}

type RegisterWithFormRequest struct {
	Answers []FormAnswer `json:"answers"`
}

func (req *RegisterWithFormRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Answers, validation.Required),
	)
}

type ReviewRegistrationRequest struct {
	Status string `json:"status"`
}

func (req *ReviewRegistrationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In("APPROVED", "REJECTED")),
	)
}
