package status

import "errors"

var (
	ErrStorageUnavailable = errors.New("storage: backend unavailable")
	ErrNotFound           = errors.New("storage: record not found")

	ErrMissingPseudo               = errors.New("join: pseudo is required")
	ErrNoDatesSelected             = errors.New("join: at least one date must be selected")
	ErrNoCommonSlot                = errors.New("join: no common slot")
	ErrMissingFields               = errors.New("input: required fields are missing")
	ErrInvalidParticipantsEncoding = errors.New("participants: invalid encoding")
)

// IsValidation reports whether err is a user input problem that leaves state untouched.
// Anything wrapped in ErrStorageUnavailable is not, even when it also carries a
// validation kind: corrupt stored data is a storage fault.
func IsValidation(err error) bool {
	if errors.Is(err, ErrStorageUnavailable) {
		return false
	}
	return errors.Is(err, ErrMissingPseudo) ||
		errors.Is(err, ErrNoDatesSelected) ||
		errors.Is(err, ErrNoCommonSlot) ||
		errors.Is(err, ErrMissingFields) ||
		errors.Is(err, ErrInvalidParticipantsEncoding)
}

// Warning returns the message shown to the user for a validation error.
func Warning(err error) string {
	switch {
	case errors.Is(err, ErrMissingPseudo):
		return "Tu dois entrer ton pseudo."
	case errors.Is(err, ErrNoDatesSelected):
		return "Tu dois sélectionner au moins une date."
	case errors.Is(err, ErrNoCommonSlot):
		return "Aucune date en commun."
	case errors.Is(err, ErrMissingFields):
		return "Merci de remplir tous les champs."
	case errors.Is(err, ErrInvalidParticipantsEncoding):
		return "Liste de participants illisible."
	}
	return err.Error()
}
