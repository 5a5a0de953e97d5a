package server

import (
	"errors"
	"net/http"

	"github.com/joe123-crypto/recruiter/internal/mailbox"
	"github.com/joe123-crypto/recruiter/internal/scorer"
)

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var authErr *mailbox.AuthError
	var connErr *mailbox.ConnectionError
	var apiErr *scorer.APICallError

	switch {
	case errors.As(err, &authErr):
		return http.StatusUnauthorized
	case errors.As(err, &connErr):
		return http.StatusBadGateway
	case errors.As(err, &apiErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
