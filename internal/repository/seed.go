package repository

import (
	"context"
	"fmt"
	"time"

	models "github.com/dariofm/flightdeck/internal"
	"github.com/google/uuid"
)

var sampleAirports = []models.Airport{
	{Code: "IKA", Name: "Imam Khomeini International", City: "Tehran", Country: "Iran"},
	{Code: "MHD", Name: "Mashhad International", City: "Mashhad", Country: "Iran"},
	{Code: "SYZ", Name: "Shiraz International", City: "Shiraz", Country: "Iran"},
	{Code: "IFN", Name: "Isfahan International", City: "Isfahan", Country: "Iran"},
	{Code: "THR", Name: "Mehrabad", City: "Tehran", Country: "Iran"},
}

var sampleAirlines = []string{"IR", "W5", "QB", "EP"}

type sampleRoute struct {
	origin, destination string
	basePrice           float64
}

var sampleRoutes = []sampleRoute{
	{"IKA", "MHD", 70},
	{"IKA", "SYZ", 65},
	{"THR", "MHD", 60},
	{"IFN", "IKA", 55},
}

// EnsureSeedData populates airports and five days of flights when the tables
// are empty. Safe to call on every startup.
func (r *FlightRepository) EnsureSeedData(ctx context.Context) error {
	var airports int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM airports`).Scan(&airports); err != nil {
		return fmt.Errorf("counting airports: %w", err)
	}
	if airports == 0 {
		for _, a := range sampleAirports {
			_, err := r.db.Exec(ctx, `
                INSERT INTO airports (code, name, city, country)
                VALUES ($1, $2, $3, $4)
                ON CONFLICT (code) DO NOTHING
            `, a.Code, a.Name, a.City, a.Country)
			if err != nil {
				return fmt.Errorf("seeding airport %s: %w", a.Code, err)
			}
		}
	}

	var flights int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM flights`).Scan(&flights); err != nil {
		return fmt.Errorf("counting flights: %w", err)
	}
	if flights > 0 {
		return nil
	}

	now := time.Now().UTC()
	base := time.Date(now.Year(), now.Month(), now.Day(), 6, 0, 0, 0, time.UTC)
	n := 0
	for d := 0; d < 5; d++ {
		for _, route := range sampleRoutes {
			dep := base.AddDate(0, 0, d).Add(time.Duration(d%3) * 3 * time.Hour)
			arr := dep.Add(time.Hour + 10*time.Minute)
			airline := sampleAirlines[(d+n)%len(sampleAirlines)]
			f := models.Flight{
				ID:             uuid.New(),
				FlightNumber:   fmt.Sprintf("%s-%d", airline, 100+d*5+n%5),
				Origin:         route.origin,
				Destination:    route.destination,
				DepartureTime:  dep,
				ArrivalTime:    arr,
				Price:          route.basePrice + float64(d*5),
				SeatsTotal:     120,
				SeatsAvailable: 120 - d*3,
			}
			_, err := r.db.Exec(ctx, `
                INSERT INTO flights (id, flight_number, origin, destination, departure_time,
                                     arrival_time, price, seats_total, seats_available)
                VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
            `, f.ID, f.FlightNumber, f.Origin, f.Destination, f.DepartureTime,
				f.ArrivalTime, f.Price, f.SeatsTotal, f.SeatsAvailable)
			if err != nil {
				return fmt.Errorf("seeding flight %s: %w", f.FlightNumber, err)
			}
			n++
		}
	}
	return nil
}
