package repository

import (
	"context"
	"testing"

	"github.com/Eursukkul/hotel-booking/internal/models"
	"github.com/Eursukkul/hotel-booking/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindConflicts_HalfOpenBoundaries(t *testing.T) {
	db := testutil.NewDB(t)
	hotel := testutil.SeedHotel(t, db, "sunrise", models.SubscriptionActive)
	room := testutil.SeedRoom(t, db, hotel.ID, "101", 2, "100.00")
	client := testutil.SeedClient(t, db, "guest@example.com")
	a := testutil.SeedBooking(t, db, room, client.ID, testutil.Day(2024, 1, 1), testutil.Day(2024, 1, 5), models.StatusConfirmed)

	repo := NewBookingRepository(db)
	ctx := context.Background()

	got, err := repo.FindConflicts(ctx, db, room.ID, models.NewStayRange(testutil.Day(2024, 1, 5), testutil.Day(2024, 1, 8)), nil)
	require.NoError(t, err)
	assert.Empty(t, got, "checkin on previous checkout day")

	got, err = repo.FindConflicts(ctx, db, room.ID, models.NewStayRange(testutil.Day(2023, 12, 28), testutil.Day(2024, 1, 1)), nil)
	require.NoError(t, err)
	assert.Empty(t, got, "checkout on existing checkin day")

	got, err = repo.FindConflicts(ctx, db, room.ID, models.NewStayRange(testutil.Day(2024, 1, 4), testutil.Day(2024, 1, 6)), nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)

	got, err = repo.FindConflicts(ctx, db, room.ID, models.NewStayRange(testutil.Day(2024, 1, 4), testutil.Day(2024, 1, 6)), &a.ID)
	require.NoError(t, err)
	assert.Empty(t, got, "excluded booking")
}

func TestFindConflicts_IgnoresClosedBookingsAndOtherRooms(t *testing.T) {
	db := testutil.NewDB(t)
	hotel := testutil.SeedHotel(t, db, "sunrise", models.SubscriptionActive)
	room := testutil.SeedRoom(t, db, hotel.ID, "101", 2, "100.00")
	other := testutil.SeedRoom(t, db, hotel.ID, "102", 2, "100.00")
	client := testutil.SeedClient(t, db, "guest@example.com")

	testutil.SeedBooking(t, db, room, client.ID, testutil.Day(2024, 1, 1), testutil.Day(2024, 1, 5), models.StatusCancelled)
	testutil.SeedBooking(t, db, room, client.ID, testutil.Day(2024, 1, 1), testutil.Day(2024, 1, 5), models.StatusCompleted)
	testutil.SeedBooking(t, db, other, client.ID, testutil.Day(2024, 1, 1), testutil.Day(2024, 1, 5), models.StatusConfirmed)
	pending := testutil.SeedBooking(t, db, room, client.ID, testutil.Day(2024, 1, 10), testutil.Day(2024, 1, 12), models.StatusPending)

	repo := NewBookingRepository(db)
	got, err := repo.FindConflicts(context.Background(), db, room.ID, models.NewStayRange(testutil.Day(2024, 1, 1), testutil.Day(2024, 1, 20)), nil)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, pending.ID, got[0].ID)
}

func TestExistsCovering(t *testing.T) {
	db := testutil.NewDB(t)
	hotel := testutil.SeedHotel(t, db, "sunrise", models.SubscriptionActive)
	room := testutil.SeedRoom(t, db, hotel.ID, "101", 2, "100.00")
	client := testutil.SeedClient(t, db, "guest@example.com")
	a := testutil.SeedBooking(t, db, room, client.ID, testutil.Day(2024, 1, 1), testutil.Day(2024, 1, 5), models.StatusConfirmed)

	repo := NewBookingRepository(db)
	ctx := context.Background()

	busy, err := repo.ExistsCovering(ctx, db, room.ID, testutil.Day(2024, 1, 3), 0)
	require.NoError(t, err)
	assert.True(t, busy)

	busy, err = repo.ExistsCovering(ctx, db, room.ID, testutil.Day(2024, 1, 5), 0)
	require.NoError(t, err)
	assert.False(t, busy, "checkout day")

	busy, err = repo.ExistsCovering(ctx, db, room.ID, testutil.Day(2024, 1, 3), a.ID)
	require.NoError(t, err)
	assert.False(t, busy, "the excluded booking does not count")
}

func TestConfirmedCovering_IgnoresPending(t *testing.T) {
	db := testutil.NewDB(t)
	hotel := testutil.SeedHotel(t, db, "sunrise", models.SubscriptionActive)
	room := testutil.SeedRoom(t, db, hotel.ID, "101", 2, "100.00")
	client := testutil.SeedClient(t, db, "guest@example.com")
	testutil.SeedBooking(t, db, room, client.ID, testutil.Day(2024, 1, 1), testutil.Day(2024, 1, 3), models.StatusPending)
	testutil.SeedBooking(t, db, room, client.ID, testutil.Day(2024, 1, 3), testutil.Day(2024, 1, 5), models.StatusConfirmed)

	repo := NewBookingRepository(db)
	ctx := context.Background()

	busy, err := repo.ConfirmedCovering(ctx, db, room.ID, testutil.Day(2024, 1, 2))
	require.NoError(t, err)
	assert.False(t, busy, "pending stays do not hold the room")

	busy, err = repo.ConfirmedCovering(ctx, db, room.ID, testutil.Day(2024, 1, 4))
	require.NoError(t, err)
	assert.True(t, busy)
}

func TestConflictingRoomIDs(t *testing.T) {
	db := testutil.NewDB(t)
	hotel := testutil.SeedHotel(t, db, "sunrise", models.SubscriptionActive)
	r1 := testutil.SeedRoom(t, db, hotel.ID, "101", 2, "100.00")
	r2 := testutil.SeedRoom(t, db, hotel.ID, "102", 2, "100.00")
	testutil.SeedRoom(t, db, hotel.ID, "103", 2, "100.00")
	client := testutil.SeedClient(t, db, "guest@example.com")

	testutil.SeedBooking(t, db, r1, client.ID, testutil.Day(2024, 1, 1), testutil.Day(2024, 1, 5), models.StatusConfirmed)
	testutil.SeedBooking(t, db, r1, client.ID, testutil.Day(2024, 1, 5), testutil.Day(2024, 1, 7), models.StatusPending)
	testutil.SeedBooking(t, db, r2, client.ID, testutil.Day(2024, 1, 2), testutil.Day(2024, 1, 3), models.StatusCancelled)

	ids, err := NewBookingRepository(db).ConflictingRoomIDs(context.Background(), hotel.ID,
		models.NewStayRange(testutil.Day(2024, 1, 2), testutil.Day(2024, 1, 6)))

	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{r1.ID}, ids)
}

func TestFindDueForCompletion(t *testing.T) {
	db := testutil.NewDB(t)
	hotel := testutil.SeedHotel(t, db, "sunrise", models.SubscriptionActive)
	room := testutil.SeedRoom(t, db, hotel.ID, "101", 2, "100.00")
	client := testutil.SeedClient(t, db, "guest@example.com")

	due := testutil.SeedBooking(t, db, room, client.ID, testutil.Day(2024, 1, 1), testutil.Day(2024, 1, 3), models.StatusConfirmed)
	testutil.SeedBooking(t, db, room, client.ID, testutil.Day(2024, 1, 3), testutil.Day(2024, 1, 6), models.StatusConfirmed)
	testutil.SeedBooking(t, db, room, client.ID, testutil.Day(2023, 12, 1), testutil.Day(2023, 12, 3), models.StatusPending)

	got, err := NewBookingRepository(db).FindDueForCompletion(context.Background(), testutil.Day(2024, 1, 3))

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, due.ID, got[0].ID)
}

func TestList_Filters(t *testing.T) {
	db := testutil.NewDB(t)
	hotel := testutil.SeedHotel(t, db, "sunrise", models.SubscriptionActive)
	other := testutil.SeedHotel(t, db, "moonset", models.SubscriptionActive)
	room := testutil.SeedRoom(t, db, hotel.ID, "101", 2, "100.00")
	otherRoom := testutil.SeedRoom(t, db, other.ID, "101", 2, "100.00")
	client := testutil.SeedClient(t, db, "guest@example.com")

	testutil.SeedBooking(t, db, room, client.ID, testutil.Day(2024, 1, 1), testutil.Day(2024, 1, 3), models.StatusConfirmed)
	testutil.SeedBooking(t, db, room, client.ID, testutil.Day(2024, 1, 5), testutil.Day(2024, 1, 6), models.StatusCancelled)
	testutil.SeedBooking(t, db, otherRoom, client.ID, testutil.Day(2024, 1, 1), testutil.Day(2024, 1, 3), models.StatusConfirmed)

	repo := NewBookingRepository(db)
	all, err := repo.List(context.Background(), BookingFilter{HotelID: hotel.ID})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	status := models.StatusCancelled
	cancelled, err := repo.List(context.Background(), BookingFilter{HotelID: hotel.ID, Status: &status})
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, models.StatusCancelled, cancelled[0].Status)
}
