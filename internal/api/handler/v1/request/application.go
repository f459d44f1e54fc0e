package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type ApplyHostRequest struct {
	OrganizationName string `json:"organization_name"`
	Motivation       string `json:"motivation"`
}

func (req *ApplyHostRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.OrganizationName, validation.Required, validation.Length(2, 150)),
		validation.Field(&req.Motivation, validation.Required, validation.Length(10, 2000)),
	)
}

type ReviewApplicationRequest struct {
	Status string `json:"status"`
}

func (req *ReviewApplicationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In("APPROVED", "REJECTED")),
	)
}
