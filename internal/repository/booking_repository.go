package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	models "github.com/dariofm/flightdeck/internal"
	"github.com/dariofm/flightdeck/internal/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DBConn interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
}

type BookingRepository struct {
	db DBConn
}

func NewBookingRepository(db DBConn) *BookingRepository {
	return &BookingRepository{db: db}
}

// CreateBooking reserves seats and writes the booking in a single transaction.
// The seat decrement is conditional on sufficient availability and acts as the
// gate: if no row matches, the booking insert never runs and the transaction
// leaves no trace. Two concurrent bookings can therefore never oversell a
// flight, regardless of interleaving.
func (r *BookingRepository) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	seats := len(booking.Passengers)
	tag, err := tx.Exec(ctx, `
        UPDATE flights
        SET seats_available = seats_available - $2
        WHERE id = $1 AND seats_available >= $2
    `, booking.FlightID, seats)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, models.ErrInsufficientCapacity
	}

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	booking.CreatedAt = time.Now().UTC()
	if err = r.createBookingTx(ctx, tx, booking); err != nil {
		return nil, err
	}
	if err = r.createPassengersTx(ctx, tx, booking); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return booking, nil
}

func (r *BookingRepository) createBookingTx(ctx context.Context, tx pgx.Tx, booking *models.Booking) error {
	query := `
        INSERT INTO bookings (id, flight_id, contact_email, total_amount, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err := tx.Exec(ctx, query,
		booking.ID, booking.FlightID, booking.ContactEmail, booking.TotalAmount,
		booking.Status, booking.CreatedAt)
	return err
}

func (r *BookingRepository) createPassengersTx(ctx context.Context, tx pgx.Tx, booking *models.Booking) error {
	query := `
        INSERT INTO passengers (id, booking_id, position, first_name, last_name, email, document_number)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	for i := range booking.Passengers {
		p := &booking.Passengers[i]
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		var doc interface{}
		if p.DocumentNumber != "" {
			doc = p.DocumentNumber
		}
		if _, err := tx.Exec(ctx, query, p.ID, booking.ID, i, p.FirstName, p.LastName, p.Email, doc); err != nil {
			return err
		}
	}
	return nil
}

// GetBookingsPaginated returns bookings joined with the current state of their
// flight, in creation order by (created_at, id) keyset. The flight join is a
// LEFT JOIN: a booking survives its flight being removed.
func (r *BookingRepository) GetBookingsPaginated(ctx context.Context, email, afterCursor string, limit int) ([]models.BookingResponse, string, error) {
	query := `
        SELECT
            B.id, B.flight_id, B.contact_email, B.total_amount, B.status, B.created_at,
            F.id, F.flight_number, F.origin, F.destination, F.departure_time, F.arrival_time,
            F.price, F.seats_total, F.seats_available
        FROM bookings B
        LEFT JOIN flights F ON F.id = B.flight_id
    `
	var args []interface{}
	var conditions []string

	if email != "" {
		args = append(args, email)
		conditions = append(conditions, fmt.Sprintf("B.contact_email = $%d", len(args)))
	}
	if afterCursor != "" {
		afterTime, afterUUID, err := utils.DecodeCursor(afterCursor)
		if err != nil {
			return nil, "", models.ErrInvalidCursor
		}
		args = append(args, afterTime, afterUUID)
		conditions = append(conditions, fmt.Sprintf("(B.created_at, B.id) > ($%d, $%d)", len(args)-1, len(args)))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY B.created_at, B.id"
	query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
	args = append(args, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	var bookings []models.BookingResponse
	for rows.Next() {
		var b models.BookingResponse
		var fID *uuid.UUID
		var fNumber, fOrigin, fDestination *string
		var fDeparture, fArrival *time.Time
		var fPrice *float64
		var fSeatsTotal, fSeatsAvailable *int

		err := rows.Scan(
			&b.ID, &b.FlightID, &b.ContactEmail, &b.TotalAmount, &b.Status, &b.CreatedAt,
			&fID, &fNumber, &fOrigin, &fDestination, &fDeparture, &fArrival,
			&fPrice, &fSeatsTotal, &fSeatsAvailable,
		)
		if err != nil {
			return nil, "", err
		}
		// flight columns are all null when the flight no longer exists
		if fID != nil {
			b.Flight = &models.Flight{
				ID:             *fID,
				FlightNumber:   *fNumber,
				Origin:         *fOrigin,
				Destination:    *fDestination,
				DepartureTime:  *fDeparture,
				ArrivalTime:    *fArrival,
				Price:          *fPrice,
				SeatsTotal:     *fSeatsTotal,
				SeatsAvailable: *fSeatsAvailable,
			}
		}
		bookings = append(bookings, b)
	}
	if err = rows.Err(); err != nil {
		return nil, "", err
	}

	if err = r.attachPassengers(ctx, bookings); err != nil {
		return nil, "", err
	}

	var nextCursor string
	if len(bookings) == limit {
		last := bookings[len(bookings)-1]
		nextCursor = utils.EncodeCursor(last.CreatedAt, last.ID)
	}
	return bookings, nextCursor, nil
}

func (r *BookingRepository) attachPassengers(ctx context.Context, bookings []models.BookingResponse) error {
	if len(bookings) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(bookings))
	byID := make(map[uuid.UUID]*models.BookingResponse, len(bookings))
	for i := range bookings {
		ids[i] = bookings[i].ID
		byID[bookings[i].ID] = &bookings[i]
	}

	query := `
        SELECT booking_id, id, first_name, last_name, email, document_number
        FROM passengers
        WHERE booking_id = ANY($1)
        ORDER BY booking_id, position
    `
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var bookingID uuid.UUID
		var p models.Passenger
		var doc *string
		if err := rows.Scan(&bookingID, &p.ID, &p.FirstName, &p.LastName, &p.Email, &doc); err != nil {
			return err
		}
		if doc != nil {
			p.DocumentNumber = *doc
		}
		if b, ok := byID[bookingID]; ok {
			b.Passengers = append(b.Passengers, p)
		}
	}
	return rows.Err()
}
