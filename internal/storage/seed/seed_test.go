package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoad(t *testing.T) {
	data, err := Load(bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEmpty(t, data.Hotels)
	assert.NotEmpty(t, data.Restaurants)
	assert.Len(t, data.Reviews, 5)
	require.Len(t, data.Users, 2)

	for _, r := range data.Reviews {
		assert.True(t, (r.HotelID == "") != (r.RestaurantID == ""), "review %s must target one listing", r.ID)
	}

	admin := data.Users[1]
	assert.True(t, admin.IsAdmin)
	assert.NoError(t, bcrypt.CompareHashAndPassword(admin.PassHash, []byte("admin12345")))
}
