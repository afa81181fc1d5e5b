package impl

import (
	"testing"

	domainerrors "agromart/internal/domain/errors"
	"agromart/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressService_SingleDefault(t *testing.T) {
	f := newServiceFixtures(t)
	sellerID, ctx := f.seller(t)

	first, err := f.addresses.CreateAddress(ctx, sellerID, &usecase.AddressInput{Line1: "1 Rice Rd", City: "Chiayi", Country: "TW"})
	require.NoError(t, err)
	assert.True(t, first.IsDefault, "first address becomes the default")

	second, err := f.addresses.CreateAddress(ctx, sellerID, &usecase.AddressInput{Line1: "2 Tea Ln", City: "Nantou", Country: "TW"})
	require.NoError(t, err)
	assert.False(t, second.IsDefault)

	third, err := f.addresses.CreateAddress(ctx, sellerID, &usecase.AddressInput{Line1: "3 Mango St", City: "Tainan", Country: "TW", IsDefault: true})
	require.NoError(t, err)

	addresses, err := f.addresses.ListAddresses(ctx, sellerID)
	require.NoError(t, err)
	require.Len(t, addresses, 3)
	assert.Equal(t, third.ID, addresses[0].ID)

	defaults := 0
	for _, address := range addresses {
		if address.IsDefault {
			defaults++
		}
	}
	assert.Equal(t, 1, defaults)

	updated, err := f.addresses.UpdateAddress(ctx, sellerID, second.ID, &usecase.AddressInput{
		Line1: "2 Tea Ln", City: "Alishan", Country: "TW", IsDefault: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alishan", updated.City)

	addresses, err = f.addresses.ListAddresses(ctx, sellerID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, addresses[0].ID)
	assert.False(t, addresses[1].IsDefault)
	assert.False(t, addresses[2].IsDefault)
}

func TestAddressService_ForeignAddress(t *testing.T) {
	f := newServiceFixtures(t)
	aliceID, aliceCtx := f.seller(t)
	bobID, bobCtx := f.seller(t)

	bobAddress, err := f.addresses.CreateAddress(bobCtx, bobID, &usecase.AddressInput{Line1: "9 Pear Rd", City: "Taichung", Country: "TW"})
	require.NoError(t, err)

	_, err = f.addresses.UpdateAddress(aliceCtx, aliceID, bobAddress.ID, &usecase.AddressInput{Line1: "x", City: "x", Country: "x"})
	assert.ErrorIs(t, err, domainerrors.ErrAddressNotFound)
	assert.ErrorIs(t, f.addresses.DeleteAddress(aliceCtx, aliceID, bobAddress.ID), domainerrors.ErrAddressNotFound)

	require.NoError(t, f.addresses.DeleteAddress(bobCtx, bobID, bobAddress.ID))
	addresses, err := f.addresses.ListAddresses(bobCtx, bobID)
	require.NoError(t, err)
	assert.Empty(t, addresses)
}
