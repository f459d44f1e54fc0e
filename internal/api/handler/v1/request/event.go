package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateEventRequest struct {
	Title                 string `json:"title"`
	Description           string `json:"description"`
	Date                  string `json:"date" format:"DD/MM/YYYY"`
	StartTime             string `json:"start_time"`
	EndTime               string `json:"end_time"`
	Location              string `json:"location"`
	District              string `json:"district"`
	BannerURL             string `json:"banner_url"`
	PosterURL             string `json:"poster_url"`
	BrochureURL           string `json:"brochure_url"`
	ExternalLink          string `json:"external_link"`
	RegistrationMethod    string `json:"registration_method"`
	PrimaryCategoryID     uint   `json:"primary_category_id"`
	AdditionalCategoryIDs []uint `json:"additional_category_ids"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 150)),
		validation.Field(&req.Description, validation.Length(0, 5000)),
		validation.Field(&req.Date, validation.Required),
		validation.Field(&req.Location, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.District, validation.Length(0, 100)),
		validation.Field(&req.BannerURL, is.URL),
		validation.Field(&req.PosterURL, is.URL),
		validation.Field(&req.BrochureURL, is.URL),
		validation.Field(&req.ExternalLink, is.URL),
		validation.Field(&req.RegistrationMethod, validation.Required, validation.In("EXTERNAL", "FORM")),
		validation.Field(&req.PrimaryCategoryID, validation.Required, validation.Min(uint(1))),
	)
}

type UpdateEventRequest struct {
	Title                 string `json:"title"`
	Description           string `json:"description"`
	Date                  string `json:"date" format:"DD/MM/YYYY"`
	StartTime             string `json:"start_time"`
	EndTime               string `json:"end_time"`
	Location              string `json:"location"`
	District              string `json:"district"`
	BannerURL             string `json:"banner_url"`
	PosterURL             string `json:"poster_url"`
	BrochureURL           string `json:"brochure_url"`
	ExternalLink          string `json:"external_link"`
	PrimaryCategoryID     uint   `json:"primary_category_id"`
	AdditionalCategoryIDs []uint `json:"additional_category_ids"`
}

func (req *UpdateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 150)),
		validation.Field(&req.Description, validation.Length(0, 5000)),
		validation.Field(&req.Date, validation.Required),
		validation.Field(&req.Location, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.District, validation.Length(0, 100)),
		validation.Field(&req.BannerURL, is.URL),
		validation.Field(&req.PosterURL, is.URL),
		validation.Field(&req.BrochureURL, is.URL),
		validation.Field(&req.ExternalLink, is.URL),
		validation.Field(&req.PrimaryCategoryID, validation.Required, validation.Min(uint(1))),
	)
}

type RejectEventRequest struct {
	Reason string `json:"reason"`
}

func (req *RejectEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Reason, validation.Length(0, 500)),
	)
}

type FeatureEventRequest struct {
	Featured *bool `json:"featured"`
}

func (req *FeatureEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Featured, validation.NotNil),
	)
}
