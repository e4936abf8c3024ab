package service

import (
	"context"
	"testing"

	"github.com/Eursukkul/hotel-booking/internal/models"
	"github.com/Eursukkul/hotel-booking/internal/repository"
	"github.com/Eursukkul/hotel-booking/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// racingClientRepo hides existing rows from the first lookups, the way a
// concurrent request that has not committed yet looks to its peer.
type racingClientRepo struct {
	repository.ClientRepository
	misses int
}

func (r *racingClientRepo) FindByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.Client, error) {
	if r.misses > 0 {
		r.misses--
		return nil, gorm.ErrRecordNotFound
	}
	return r.ClientRepository.FindByEmail(ctx, tx, email)
}

func TestFindOrCreate_CreatesThenReuses(t *testing.T) {
	db := testutil.NewDB(t)
	reg := NewClientRegistry(repository.NewClientRepository(db))
	hotel := testutil.SeedHotel(t, db, "sunrise", models.SubscriptionActive)

	first, created, err := reg.FindOrCreate(context.Background(), nil, "Ana@Example.com", ClientAttrs{FullName: "Ana Maria Gomez"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "ana@example.com", first.Email)
	assert.Equal(t, "Ana", first.FirstName)
	assert.Equal(t, "Maria Gomez", first.LastName)

	userID := "user-42"
	again, created, err := reg.FindOrCreate(context.Background(), nil, "ana@example.com", ClientAttrs{
		FirstName: "Other", DNI: "30111222", UserID: &userID, HotelID: &hotel.ID,
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "Ana", again.FirstName)
	assert.Equal(t, "30111222", again.DNI)

	stored, err := reg.Get(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, "30111222", stored.DNI)
	require.NotNil(t, stored.UserID)
	assert.Equal(t, "user-42", *stored.UserID)
	require.NotNil(t, stored.HotelID)
	assert.Equal(t, hotel.ID, *stored.HotelID)

	list, err := reg.List(context.Background(), &hotel.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestFindOrCreate_RequiresEmail(t *testing.T) {
	db := testutil.NewDB(t)
	reg := NewClientRegistry(repository.NewClientRepository(db))

	_, _, err := reg.FindOrCreate(context.Background(), nil, "   ", ClientAttrs{})

	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestGetClient_NotFound(t *testing.T) {
	db := testutil.NewDB(t)
	reg := NewClientRegistry(repository.NewClientRepository(db))

	_, err := reg.Get(context.Background(), 77)

	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestFindOrCreate_SameEmailRegisteredConcurrently(t *testing.T) {
	db := testutil.NewDB(t)
	winner := testutil.SeedClient(t, db, "ana@example.com")
	reg := NewClientRegistry(&racingClientRepo{ClientRepository: repository.NewClientRepository(db), misses: 1})

	got, created, err := reg.FindOrCreate(context.Background(), nil, "ANA@example.com", ClientAttrs{Phone: "+54 11 5555"})

	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, winner.ID, got.ID)
	assert.Equal(t, "+54 11 5555", got.Phone)

	var n int64
	require.NoError(t, db.Model(&models.Client{}).Where("email = ?", "ana@example.com").Count(&n).Error)
	assert.EqualValues(t, 1, n)
}
