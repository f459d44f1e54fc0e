package response

import (
	"github.com/campusway/campus-events-api/internal/domain"
)

type RegisterResponse struct {
	Message      string              `json:"message"`
	Registration domain.Registration `json:"registration"`
}

type UnregisterResponse struct {
	Message string `json:"message"`
	Deleted bool   `json:"deleted"`
}
