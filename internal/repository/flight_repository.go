package repository

import (
	"context"
	"errors"
	"time"

	models "github.com/dariofm/flightdeck/internal"
	"github.com/jackc/pgx/v5"
)

type FlightRepository struct {
	db DBConn
}

func NewFlightRepository(db DBConn) *FlightRepository {
	return &FlightRepository{db: db}
}

const flightColumns = `
        id, flight_number, origin, destination, departure_time, arrival_time,
        price, seats_total, seats_available
`

func (r *FlightRepository) GetFlightByID(ctx context.Context, id string) (*models.Flight, error) {
	query := `SELECT` + flightColumns + `FROM flights WHERE id = $1`
	row := r.db.QueryRow(ctx, query, id)

	var f models.Flight
	err := row.Scan(&f.ID, &f.FlightNumber, &f.Origin, &f.Destination,
		&f.DepartureTime, &f.ArrivalTime, &f.Price, &f.SeatsTotal, &f.SeatsAvailable)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}

// SearchFlights returns bookable flights on a route departing within the UTC
// calendar day of the given time, soonest departure first.
func (r *FlightRepository) SearchFlights(ctx context.Context, origin, destination string, day time.Time) ([]models.Flight, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	query := `SELECT` + flightColumns + `
        FROM flights
        WHERE origin = $1 AND destination = $2
          AND departure_time >= $3 AND departure_time < $4
          AND seats_available > 0
        ORDER BY departure_time
    `
	rows, err := r.db.Query(ctx, query, origin, destination, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flights []models.Flight
	for rows.Next() {
		var f models.Flight
		err := rows.Scan(&f.ID, &f.FlightNumber, &f.Origin, &f.Destination,
			&f.DepartureTime, &f.ArrivalTime, &f.Price, &f.SeatsTotal, &f.SeatsAvailable)
		if err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *FlightRepository) ListAirports(ctx context.Context) ([]models.Airport, error) {
	rows, err := r.db.Query(ctx, `SELECT code, name, city, country FROM airports ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var airports []models.Airport
	for rows.Next() {
		var a models.Airport
		if err := rows.Scan(&a.Code, &a.Name, &a.City, &a.Country); err != nil {
			return nil, err
		}
		airports = append(airports, a)
	}
	return airports, rows.Err()
}
