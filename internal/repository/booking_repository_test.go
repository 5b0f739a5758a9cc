package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	models "github.com/dariofm/flightdeck/internal"
	"github.com/dariofm/flightdeck/internal/repository"
	"github.com/dariofm/flightdeck/internal/utils"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reserveSeatsQuery = `
        UPDATE flights
        SET seats_available = seats_available - $2
        WHERE id = $1 AND seats_available >= $2
    `

const insertBookingQuery = `
        INSERT INTO bookings (id, flight_id, contact_email, total_amount, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `

const insertPassengerQuery = `
        INSERT INTO passengers (id, booking_id, position, first_name, last_name, email, document_number)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `

func setupMockDB(t *testing.T) (pgxmock.PgxPoolIface, *repository.BookingRepository) {
	mockDb, err := pgxmock.NewPool()
	require.NoError(t, err)
	return mockDb, repository.NewBookingRepository(mockDb)
}

func sampleBooking() *models.Booking {
	return &models.Booking{
		ID:           uuid.MustParse("00000000-0000-0000-0000-000000000001"),
		FlightID:     uuid.MustParse("00000000-0000-0000-0000-000000000002"),
		ContactEmail: "jane@example.com",
		Passengers: []models.Passenger{
			{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", DocumentNumber: "A1234567"},
			{FirstName: "John", LastName: "Doe", Email: "john@example.com"},
		},
		TotalAmount: 140.0,
		Status:      models.StatusConfirmed,
	}
}

func TestCreateBooking(t *testing.T) {
	t.Run("reserves seats and writes booking atomically", func(t *testing.T) {
		mockDb, repo := setupMockDB(t)
		defer mockDb.Close()

		booking := sampleBooking()

		mockDb.ExpectBegin()
		mockDb.ExpectExec(regexp.QuoteMeta(reserveSeatsQuery)).
			WithArgs(booking.FlightID, 2).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mockDb.ExpectExec(regexp.QuoteMeta(insertBookingQuery)).
			WithArgs(booking.ID, booking.FlightID, booking.ContactEmail, booking.TotalAmount,
				booking.Status, pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mockDb.ExpectExec(regexp.QuoteMeta(insertPassengerQuery)).
			WithArgs(pgxmock.AnyArg(), booking.ID, 0, "Jane", "Doe", "jane@example.com", "A1234567").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mockDb.ExpectExec(regexp.QuoteMeta(insertPassengerQuery)).
			WithArgs(pgxmock.AnyArg(), booking.ID, 1, "John", "Doe", "john@example.com", nil).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mockDb.ExpectCommit()

		created, err := repo.CreateBooking(context.Background(), booking)
		require.NoError(t, err)
		assert.Equal(t, booking.ID, created.ID)
		assert.Equal(t, models.StatusConfirmed, created.Status)
		assert.False(t, created.CreatedAt.IsZero())

		assert.NoError(t, mockDb.ExpectationsWereMet())
	})

	t.Run("fails with ErrInsufficientCapacity when condition does not match", func(t *testing.T) {
		mockDb, repo := setupMockDB(t)
		defer mockDb.Close()

		booking := sampleBooking()

		mockDb.ExpectBegin()
		mockDb.ExpectExec(regexp.QuoteMeta(reserveSeatsQuery)).
			WithArgs(booking.FlightID, 2).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mockDb.ExpectRollback()

		created, err := repo.CreateBooking(context.Background(), booking)
		assert.ErrorIs(t, err, models.ErrInsufficientCapacity)
		assert.Nil(t, created)

		assert.NoError(t, mockDb.ExpectationsWereMet())
	})

	t.Run("rolls back when the booking insert fails", func(t *testing.T) {
		mockDb, repo := setupMockDB(t)
		defer mockDb.Close()

		booking := sampleBooking()

		mockDb.ExpectBegin()
		mockDb.ExpectExec(regexp.QuoteMeta(reserveSeatsQuery)).
			WithArgs(booking.FlightID, 2).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mockDb.ExpectExec(regexp.QuoteMeta(insertBookingQuery)).
			WithArgs(booking.ID, booking.FlightID, booking.ContactEmail, booking.TotalAmount,
				booking.Status, pgxmock.AnyArg()).
			WillReturnError(errors.New("connection reset"))
		mockDb.ExpectRollback()

		created, err := repo.CreateBooking(context.Background(), booking)
		assert.Error(t, err)
		assert.Nil(t, created)

		assert.NoError(t, mockDb.ExpectationsWereMet())
	})

	t.Run("store failure on the atomic update is not success", func(t *testing.T) {
		mockDb, repo := setupMockDB(t)
		defer mockDb.Close()

		booking := sampleBooking()

		mockDb.ExpectBegin()
		mockDb.ExpectExec(regexp.QuoteMeta(reserveSeatsQuery)).
			WithArgs(booking.FlightID, 2).
			WillReturnError(errors.New("network timeout"))
		mockDb.ExpectRollback()

		created, err := repo.CreateBooking(context.Background(), booking)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, models.ErrInsufficientCapacity)
		assert.Nil(t, created)

		assert.NoError(t, mockDb.ExpectationsWereMet())
	})
}

const listBookingsBaseQuery = `
        SELECT
            B.id, B.flight_id, B.contact_email, B.total_amount, B.status, B.created_at,
            F.id, F.flight_number, F.origin, F.destination, F.departure_time, F.arrival_time,
            F.price, F.seats_total, F.seats_available
        FROM bookings B
        LEFT JOIN flights F ON F.id = B.flight_id
    `

const listPassengersQuery = `
        SELECT booking_id, id, first_name, last_name, email, document_number
        FROM passengers
        WHERE booking_id = ANY($1)
        ORDER BY booking_id, position
    `

func bookingColumns() []string {
	return []string{
		"id", "flight_id", "contact_email", "total_amount", "status", "created_at",
		"f_id", "flight_number", "origin", "destination", "departure_time", "arrival_time",
		"price", "seats_total", "seats_available",
	}
}

func ptr[T any](v T) *T {
	return &v
}

func TestGetBookingsPaginated(t *testing.T) {
	bookingID := uuid.MustParse("10000000-0000-0000-0000-000000000001")
	flightID := uuid.MustParse("20000000-0000-0000-0000-000000000001")
	createdAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	dep := time.Date(2026, 3, 15, 6, 0, 0, 0, time.UTC)

	t.Run("filters by contact email and joins flight", func(t *testing.T) {
		mockDb, repo := setupMockDB(t)
		defer mockDb.Close()

		rows := pgxmock.NewRows(bookingColumns()).
			AddRow(bookingID, flightID, "jane@example.com", 140.0, models.StatusConfirmed, createdAt,
				&flightID, ptr("IR-101"), ptr("IKA"), ptr("MHD"), &dep, ptr(dep.Add(70*time.Minute)),
				ptr(70.0), ptr(120), ptr(100))

		expected := listBookingsBaseQuery + " WHERE B.contact_email = $1 ORDER BY B.created_at, B.id LIMIT $2"
		mockDb.ExpectQuery(regexp.QuoteMeta(expected)).
			WithArgs("jane@example.com", 10).
			WillReturnRows(rows)

		doc := "A1234567"
		passengerRows := pgxmock.NewRows([]string{"booking_id", "id", "first_name", "last_name", "email", "document_number"}).
			AddRow(bookingID, uuid.New(), "Jane", "Doe", "jane@example.com", &doc).
			AddRow(bookingID, uuid.New(), "John", "Doe", "john@example.com", nil)
		mockDb.ExpectQuery(regexp.QuoteMeta(listPassengersQuery)).
			WithArgs(pgxmock.AnyArg()).
			WillReturnRows(passengerRows)

		bookings, cursor, err := repo.GetBookingsPaginated(context.Background(), "jane@example.com", "", 10)
		require.NoError(t, err)
		require.Len(t, bookings, 1)
		assert.Empty(t, cursor) // page not full

		b := bookings[0]
		assert.Equal(t, bookingID, b.ID)
		require.NotNil(t, b.Flight)
		assert.Equal(t, flightID, b.Flight.ID)
		assert.Equal(t, 100, b.Flight.SeatsAvailable)
		require.Len(t, b.Passengers, 2)
		assert.Equal(t, "Jane", b.Passengers[0].FirstName)
		assert.Equal(t, "A1234567", b.Passengers[0].DocumentNumber)
		assert.Empty(t, b.Passengers[1].DocumentNumber)

		assert.NoError(t, mockDb.ExpectationsWereMet())
	})

	t.Run("full page produces a next cursor", func(t *testing.T) {
		mockDb, repo := setupMockDB(t)
		defer mockDb.Close()

		otherID := uuid.MustParse("10000000-0000-0000-0000-000000000002")
		rows := pgxmock.NewRows(bookingColumns()).
			AddRow(bookingID, flightID, "a@example.com", 70.0, models.StatusConfirmed, createdAt,
				&flightID, ptr("IR-101"), ptr("IKA"), ptr("MHD"), &dep, ptr(dep.Add(70*time.Minute)),
				ptr(70.0), ptr(120), ptr(100)).
			AddRow(otherID, flightID, "b@example.com", 70.0, models.StatusConfirmed, createdAt.Add(time.Hour),
				&flightID, ptr("IR-101"), ptr("IKA"), ptr("MHD"), &dep, ptr(dep.Add(70*time.Minute)),
				ptr(70.0), ptr(120), ptr(100))

		expected := listBookingsBaseQuery + " ORDER BY B.created_at, B.id LIMIT $1"
		mockDb.ExpectQuery(regexp.QuoteMeta(expected)).
			WithArgs(2).
			WillReturnRows(rows)

		passengerRows := pgxmock.NewRows([]string{"booking_id", "id", "first_name", "last_name", "email", "document_number"}).
			AddRow(bookingID, uuid.New(), "A", "A", "a@example.com", nil).
			AddRow(otherID, uuid.New(), "B", "B", "b@example.com", nil)
		mockDb.ExpectQuery(regexp.QuoteMeta(listPassengersQuery)).
			WithArgs(pgxmock.AnyArg()).
			WillReturnRows(passengerRows)

		bookings, cursor, err := repo.GetBookingsPaginated(context.Background(), "", "", 2)
		require.NoError(t, err)
		require.Len(t, bookings, 2)
		require.NotEmpty(t, cursor)

		cursorTime, cursorID, err := utils.DecodeCursor(cursor)
		require.NoError(t, err)
		assert.Equal(t, otherID, cursorID)
		assert.True(t, cursorTime.Equal(createdAt.Add(time.Hour)))

		assert.NoError(t, mockDb.ExpectationsWereMet())
	})

	t.Run("a booking survives its flight being removed", func(t *testing.T) {
		mockDb, repo := setupMockDB(t)
		defer mockDb.Close()

		rows := pgxmock.NewRows(bookingColumns()).
			AddRow(bookingID, flightID, "jane@example.com", 140.0, models.StatusConfirmed, createdAt,
				nil, nil, nil, nil, nil, nil, nil, nil, nil)

		expected := listBookingsBaseQuery + " ORDER BY B.created_at, B.id LIMIT $1"
		mockDb.ExpectQuery(regexp.QuoteMeta(expected)).
			WithArgs(10).
			WillReturnRows(rows)

		passengerRows := pgxmock.NewRows([]string{"booking_id", "id", "first_name", "last_name", "email", "document_number"}).
			AddRow(bookingID, uuid.New(), "Jane", "Doe", "jane@example.com", nil)
		mockDb.ExpectQuery(regexp.QuoteMeta(listPassengersQuery)).
			WithArgs(pgxmock.AnyArg()).
			WillReturnRows(passengerRows)

		bookings, _, err := repo.GetBookingsPaginated(context.Background(), "", "", 10)
		require.NoError(t, err)
		require.Len(t, bookings, 1)
		assert.Nil(t, bookings[0].Flight)
	})

	t.Run("rejects a malformed cursor", func(t *testing.T) {
		mockDb, repo := setupMockDB(t)
		defer mockDb.Close()

		_, _, err := repo.GetBookingsPaginated(context.Background(), "", "not-base64!!", 10)
		assert.ErrorIs(t, err, models.ErrInvalidCursor)
	})
}
