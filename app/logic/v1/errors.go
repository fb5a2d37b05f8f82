package v1

import (
	"net/http"

	"github.com/quka-ai/quka-client/pkg/errors"
	"github.com/quka-ai/quka-client/pkg/i18n"
	"github.com/quka-ai/quka-client/pkg/reqapi"
)

// apiError turns a reqapi failure into a CustomizedError whose message is an
// i18n id picked from the HTTP status. Transport failures get 502.
func apiError(trace string, err error) *errors.CustomizedError {
	var herr *reqapi.HTTPError
	if !errors.As(err, &herr) {
		var verr *reqapi.ValidationError
		if errors.As(err, &verr) {
			return errors.New(trace, i18n.ERROR_INTERNAL, err).Code(http.StatusBadGateway)
		}
		return errors.Wrap(err, trace, i18n.ERROR_INTERNAL).Code(errors.CodeOf(err, http.StatusBadGateway))
	}

	message := i18n.ERROR_INTERNAL
	switch herr.StatusCode {
	case http.StatusBadRequest:
		message = i18n.ERROR_INVALIDARGUMENT
	case http.StatusUnauthorized:
		message = i18n.ERROR_UNAUTHORIZED
	case http.StatusForbidden:
		message = i18n.ERROR_PERMISSION_DENIED
	case http.StatusNotFound:
		message = i18n.ERROR_NOT_FOUND
	case http.StatusConflict:
		message = i18n.ERROR_EXIST
	case http.StatusTooManyRequests:
		message = i18n.ERROR_TOO_MANY_REQUESTS
	}
	return errors.New(trace, message, err).Code(herr.StatusCode).WithData(map[string]any{
		"method": herr.Method,
		"path":   herr.Path,
	})
}
