package password_test

import (
	"strings"
	"testing"

	"leonine/shared/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHash(t *testing.T) {
	hash, err := password.Hash("correct-horse")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)

	_, err = password.Hash("")
	assert.ErrorIs(t, err, password.ErrEmptyPassword)

	_, err = password.Hash(strings.Repeat("a", password.MaxLength+1))
	assert.ErrorIs(t, err, password.ErrTooLong)

	_, err = password.Hash(strings.Repeat("a", password.MaxLength))
	assert.NoError(t, err)
}

func TestVerify(t *testing.T) {
	hash, err := password.Hash("correct-horse")
	require.NoError(t, err)

	tests := []struct {
		name    string
		plain   string
		hash    string
		wantErr error
	}{
		{name: "matching password", plain: "correct-horse", hash: hash},
		{name: "wrong password", plain: "battery-staple", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty password", plain: "", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty hash", plain: "correct-horse", hash: "", wantErr: password.ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.plain, tt.hash)

			if tt.wantErr == nil {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	err := password.Verify("correct-horse", "not-a-bcrypt-hash")

	require.Error(t, err)
	assert.NotErrorIs(t, err, password.ErrInvalidPassword)
}
