package status

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(ErrMissingPseudo))
	assert.True(t, IsValidation(fmt.Errorf("propose: %w", ErrNoCommonSlot)))
	assert.True(t, IsValidation(ErrInvalidParticipantsEncoding))
	assert.False(t, IsValidation(ErrNotFound))
	assert.False(t, IsValidation(fmt.Errorf("list: %w", ErrStorageUnavailable)))
	assert.False(t, IsValidation(fmt.Errorf("%w: read events.json: %w", ErrStorageUnavailable, ErrInvalidParticipantsEncoding)))
	assert.False(t, IsValidation(errors.New("boom")))
}

func TestWarning(t *testing.T) {
	assert.Equal(t, "Aucune date en commun.", Warning(fmt.Errorf("wrapped: %w", ErrNoCommonSlot)))
	assert.Equal(t, "Tu dois entrer ton pseudo.", Warning(ErrMissingPseudo))
	assert.Equal(t, "boom", Warning(errors.New("boom")))
}
