package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrationReview(t *testing.T) {
	reg := Registration{Status: RegistrationPending}
	require.NoError(t, reg.Approve())
	assert.Equal(t, RegistrationApproved, reg.Status)

	assert.ErrorIs(t, reg.Approve(), ErrRegistrationResolved)
	assert.ErrorIs(t, reg.Reject(), ErrRegistrationResolved)

	rejected := Registration{Status: RegistrationPending}
	require.NoError(t, rejected.Reject())
	assert.Equal(t, RegistrationRejected, rejected.Status)
}
