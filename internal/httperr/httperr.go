// Package httperr turns domain errors into huma status errors.
package httperr

import (
	"errors"
	"net/http"
	"sync"

	"github.com/danielgtaylor/huma/v2"

	"github.com/prayag-camps/magh-mela-api/internal/domain"
	"github.com/prayag-camps/magh-mela-api/internal/logging"
	"github.com/prayag-camps/magh-mela-api/internal/validation"
)

// From maps err onto the HTTP status a client can act on. Unknown errors are
// logged and reported as a bare 500.
func From(err error) error {
	if err == nil {
		return nil
	}

	var rve *validation.RequestValidationError
	if errors.As(err, &rve) {
		details := make([]error, 0, len(rve.Fields))
		for _, f := range rve.Fields {
			details = append(details, &huma.ErrorDetail{
				Message:  f.Message,
				Location: "body." + f.Field,
				Value:    f.Value,
			})
		}
		return huma.Error400BadRequest("validation failed", details...)
	}

	var ve domain.ValidationError
	if errors.As(err, &ve) {
		detail := &huma.ErrorDetail{Message: ve.Msg, Location: ve.Field, Value: ve.Value}
		return huma.Error400BadRequest(ve.Error(), detail)
	}

	var nf domain.NotFoundError
	if errors.As(err, &nf) {
		return huma.Error404NotFound(nf.Error())
	}

	var authn domain.AuthenticationError
	if errors.As(err, &authn) {
		return huma.Error401Unauthorized(authn.Error())
	}

	var authz domain.AuthorizationError
	if errors.As(err, &authz) {
		return huma.Error403Forbidden(authz.Error())
	}

	var pe domain.PolicyError
	if errors.As(err, &pe) {
		return huma.Error409Conflict(pe.Error())
	}

	logging.Error().Err(err).Msg("Unhandled error")
	return huma.Error500InternalServerError("internal server error")
}

var installOnce sync.Once

// Install makes huma report its own request validation failures (schema
// mismatches, malformed fields) as 400, the same status From uses.
func Install() {
	installOnce.Do(func() {
		base := huma.NewError
		huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
			if status == http.StatusUnprocessableEntity {
				status = http.StatusBadRequest
				msg = "validation failed"
			}
			return base(status, msg, errs...)
		}
	})
}
