// Package form holds the form controllers behind the create/edit dialogs:
// field state, all-at-once validation, and the submit protocol. Validation
// runs entirely locally; a submit with any violation never reaches the
// network. Server-side rejections that name fields are merged back into the
// same error map.
package form

import (
	"errors"
	"regexp"

	"fleetcli/internal/api"
)

// ErrInvalidForm is returned by Submit when local validation blocked the
// request. The concrete violations are in the form's Errors map.
var ErrInvalidForm = errors.New("form has validation errors")

var emailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)

func validEmail(s string) bool {
	return emailRe.MatchString(s)
}

// mergeServerErrors folds field-level problems reported by the server into
// the form's error map. Returns true when err was such a rejection.
func mergeServerErrors(dst map[string]string, err error) bool {
	var ve *api.ValidationError
	if !errors.As(err, &ve) || len(ve.Fields) == 0 {
		return false
	}
	for field, msg := range ve.Fields {
		dst[field] = msg
	}
	return true
}
