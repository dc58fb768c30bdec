package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resto-dev/resto-scheduler/backend/internal/domain"
)

func TestGenerateRandomOTP(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 20; i++ {
		assert.Regexp(t, pattern, GenerateRandomOTP())
	}
}

func TestGenerateRandomPassword(t *testing.T) {
	assert.Len(t, GenerateRandomPassword(12), 12)
	assert.Len(t, GenerateRandomPassword(1), 1)
}

func TestGenerateRandomUser(t *testing.T) {
	user, err := GenerateRandomUser("secret", "example.com")
	require.NoError(t, err)

	assert.NotEmpty(t, user.Username)
	assert.NotEmpty(t, user.FullName)
	assert.Equal(t, domain.RoleEmployee, user.Role)
	assert.Contains(t, user.Email, "@example.com")
	assert.NotEqual(t, "secret", user.PasswordHash)
}

func TestGenerateRandomAvailability(t *testing.T) {
	availabilities := GenerateRandomAvailability(7)

	require.Len(t, availabilities, 7)
	for i, availability := range availabilities {
		assert.Equal(t, int64(7), availability.UserID)
		assert.Equal(t, int32(i+1), availability.DayOfWeek)
	}
}
