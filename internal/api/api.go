package api

import (
	"errors"
	"net/http"
	"strconv"

	models "github.com/dariofm/flightdeck/internal"
	"github.com/dariofm/flightdeck/internal/ports"
	"github.com/dariofm/flightdeck/internal/utils"
	"github.com/dariofm/flightdeck/internal/validator"
	"github.com/julienschmidt/httprouter"
)

func CreateBookingHandler(service ports.BookingService) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var bookingRequest models.BookingRequest
		if err := utils.JsonDecodeBody(r, &bookingRequest); err != nil {
			ae := utils.NewBadRequest("error json decoding body")
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}

		v := validator.NewCustomValidator()
		if err := v.Validate(bookingRequest); err != nil {
			ae := utils.NewBadRequest(err.Error())
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}

		booking, err := service.CreateBooking(r.Context(), &bookingRequest)
		if err != nil {
			ae := getApiError(err)
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}
		utils.RenderResponse(r, w, http.StatusCreated, models.BookingCreatedResponse{
			BookingID: booking.ID.String(),
			Status:    string(booking.Status),
		})
	}
}

func ListBookingsHandler(service ports.BookingService) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		q := r.URL.Query()

		limit := 0
		if limitStr := q.Get("limit"); limitStr != "" {
			var err error
			limit, err = strconv.Atoi(limitStr)
			if err != nil {
				ae := utils.NewBadRequest("invalid limit parameter")
				utils.RenderResponse(r, w, ae.StatusCode, ae)
				return
			}
		}

		req := models.GetBookingsRequest{
			Email:  q.Get("email"),
			Cursor: q.Get("cursor"),
			Limit:  limit,
		}
		ans, err := service.AllBookings(r.Context(), req)
		if err != nil {
			ae := getApiError(err)
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, ans)
	}
}

func SearchFlightsHandler(service ports.FlightService) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var searchRequest models.FlightSearchRequest
		if err := utils.JsonDecodeBody(r, &searchRequest); err != nil {
			ae := utils.NewBadRequest("error json decoding body")
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}

		v := validator.NewCustomValidator()
		if err := v.Validate(searchRequest); err != nil {
			ae := utils.NewBadRequest(err.Error())
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}

		flights, err := service.SearchFlights(r.Context(), &searchRequest)
		if err != nil {
			ae := getApiError(err)
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, flights)
	}
}

func GetFlightHandler(service ports.FlightService) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		flight, err := service.GetFlight(r.Context(), ps.ByName("id"))
		if err != nil {
			ae := getApiError(err)
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, flight)
	}
}

func ListAirportsHandler(service ports.FlightService) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		airports, err := service.ListAirports(r.Context())
		if err != nil {
			ae := getApiError(err)
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, airports)
	}
}

func getApiError(err error) utils.ApiError {
	ae := utils.ApiError{Msg: err.Error()}
	switch {
	case errors.Is(err, models.ErrInvalidUUID),
		errors.Is(err, models.ErrInsufficientCapacity),
		errors.Is(err, models.ErrInvalidCursor):
		ae.StatusCode = http.StatusBadRequest
	case errors.Is(err, models.ErrFlightNotFound):
		ae.StatusCode = http.StatusNotFound
	default:
		ae.StatusCode = http.StatusInternalServerError
	}
	return ae
}
