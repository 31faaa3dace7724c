package service

import (
	"database/sql"
	"errors"
	"strings"

	appErrors "github.com/noah-isme/accommodation-tracker/pkg/errors"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func internalError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

func validationError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

func trimAll(values ...*string) {
	for _, v := range values {
		*v = strings.TrimSpace(*v)
	}
}
