// Package handler contains the HTTP handlers for the contract API.  The
// handlers bind and validate request bodies, delegate to the contract
// store and the availability engine, and translate domain errors into
// HTTP responses.
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/suntravels/callcenter/internal/availability"
	"github.com/suntravels/callcenter/internal/model"
	"github.com/suntravels/callcenter/internal/queue"
	queue_publisher "github.com/suntravels/callcenter/internal/service"
)

// ContractStore is the persistence surface the handlers depend on.  It is
// satisfied by repository.ContractRepo and by in-memory fakes in tests.
type ContractStore interface {
	Create(ctx context.Context, c *model.Contract) error
	ListAll(ctx context.Context) ([]model.Contract, error)
	FindByHotelName(ctx context.Context, fragment string) ([]model.Contract, error)
	ExistsByID(ctx context.Context, id uint64) (bool, error)
	DeleteByID(ctx context.Context, id uint64) error
}

// ContractHandler serves the /contracts endpoints.
type ContractHandler struct {
	Store  ContractStore
	Engine *availability.Engine
	Clock  availability.Clock
	// PublishEvents controls whether lifecycle events are sent to the
	// broker.  Disabled in tests.
	PublishEvents bool
}

// NewContractHandler wires a handler with its store, engine and clock.
func NewContractHandler(store ContractStore, engine *availability.Engine, clock availability.Clock) *ContractHandler {
	return &ContractHandler{Store: store, Engine: engine, Clock: clock, PublishEvents: true}
}

type roomDetailRequest struct {
	RoomType       string   `json:"roomType"`
	PricePerPerson *float64 `json:"pricePerPerson"`
	NumberOfRooms  *int     `json:"numberOfRooms"`
	MaxAdults      *int     `json:"maxAdults"`
}

type contractRequest struct {
	HotelName   string              `json:"hotelName"`
	StartDate   model.Date          `json:"startDate"`
	EndDate     model.Date          `json:"endDate"`
	MarkUpRate  *float64            `json:"markUpRate"`
	RoomDetails []roomDetailRequest `json:"roomDetails"`
}

// validate builds a field→message map covering every missing or malformed
// field.  An empty map means the request is structurally valid.  Pointer
// fields distinguish "absent" from a legitimate zero.
func (r *contractRequest) validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(r.HotelName) == "" {
		errs["hotelName"] = "Hotel name is required"
	}
	if r.StartDate.IsZero() {
		errs["startDate"] = "Start date is required"
	}
	if r.EndDate.IsZero() {
		errs["endDate"] = "End date is required"
	}
	switch {
	case r.MarkUpRate == nil:
		errs["markUpRate"] = "Mark Up is Required"
	case *r.MarkUpRate < 0:
		errs["markUpRate"] = "Mark Up Should greater than 0"
	case *r.MarkUpRate > 100:
		errs["markUpRate"] = "Mark Up should less than 100"
	}
	if len(r.RoomDetails) == 0 {
		errs["roomDetails"] = "Room details are required"
	}
	for i, d := range r.RoomDetails {
		key := func(field string) string { return fmt.Sprintf("roomDetails[%d].%s", i, field) }
		if strings.TrimSpace(d.RoomType) == "" {
			errs[key("roomType")] = "Room type is required"
		}
		switch {
		case d.PricePerPerson == nil:
			errs[key("pricePerPerson")] = "Price per person is required"
		case *d.PricePerPerson < 0:
			errs[key("pricePerPerson")] = "Price per person must not be negative"
		}
		switch {
		case d.NumberOfRooms == nil:
			errs[key("numberOfRooms")] = "No. of rooms are required"
		case *d.NumberOfRooms < 1:
			errs[key("numberOfRooms")] = "No. of rooms must be at least 1"
		}
		switch {
		case d.MaxAdults == nil:
			errs[key("maxAdults")] = "No. of adults are required"
		case *d.MaxAdults < 1:
			errs[key("maxAdults")] = "No. of adults must be at least 1"
		}
	}
	return errs
}

// CreateContract handles POST /contracts and records a new contract.
func (h *ContractHandler) CreateContract(c echo.Context) error {
	var body contractRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if errs := body.validate(); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, errs)
	}
	// The contract window must be a valid future-or-current stay window.
	if err := availability.ValidateStay(h.Clock, body.StartDate, body.EndDate); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	contract := &model.Contract{
		HotelName:   strings.TrimSpace(body.HotelName),
		StartDate:   body.StartDate,
		EndDate:     body.EndDate,
		MarkUpRate:  *body.MarkUpRate,
		RoomDetails: make([]model.RoomDetail, 0, len(body.RoomDetails)),
	}
	for _, d := range body.RoomDetails {
		contract.RoomDetails = append(contract.RoomDetails, model.RoomDetail{
			RoomType:       strings.TrimSpace(d.RoomType),
			PricePerPerson: *d.PricePerPerson,
			NumberOfRooms:  *d.NumberOfRooms,
			MaxAdults:      *d.MaxAdults,
		})
	}

	if err := h.Store.Create(c.Request().Context(), contract); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not create contract"})
	}

	if h.PublishEvents {
		// Fire and forget; a broker outage must not fail contract creation.
		_ = queue_publisher.PublishContractCreated(c.Request().Context(), queue.ContractCreatedEvent{
			ContractID: contract.ID,
			HotelName:  contract.HotelName,
			StartDate:  contract.StartDate.String(),
			EndDate:    contract.EndDate.String(),
			MarkUpRate: contract.MarkUpRate,
			RoomTypes:  roomTypes(contract.RoomDetails),
		})
	}
	return c.JSON(http.StatusCreated, contract)
}

// ListContracts handles GET /contracts and returns every recorded contract.
func (h *ContractHandler) ListContracts(c echo.Context) error {
	contracts, err := h.Store.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	if contracts == nil {
		contracts = []model.Contract{}
	}
	return c.JSON(http.StatusOK, contracts)
}

// SearchByHotelName handles GET /contracts/:hotelName and returns every
// contract whose hotel name contains the given fragment
// (case-insensitive).  The wire contract fixes the 404 body to the
// literal "No Contracts Found".
func (h *ContractHandler) SearchByHotelName(c echo.Context) error {
	fragment := c.Param("hotelName")
	contracts, err := h.Store.FindByHotelName(c.Request().Context(), fragment)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	if len(contracts) == 0 {
		return c.String(http.StatusNotFound, "No Contracts Found")
	}
	return c.JSON(http.StatusOK, contracts)
}

// DeleteContract handles DELETE /contracts/:id.
func (h *ContractHandler) DeleteContract(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	exists, err := h.Store.ExistsByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	if !exists {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no contract exists with this id"})
	}
	if err := h.Store.DeleteByID(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not delete contract"})
	}

	if h.PublishEvents {
		_ = queue_publisher.PublishContractDeleted(c.Request().Context(), queue.ContractDeletedEvent{
			ContractID: id,
		})
	}
	return c.NoContent(http.StatusOK)
}

type searchRequest struct {
	CheckInDate      model.Date                     `json:"checkInDate"`
	NoOfNights       *int                           `json:"noOfNights"`
	RoomRequirements []availability.RoomRequirement `json:"roomRequirements"`
}

func (r *searchRequest) validate() map[string]string {
	errs := map[string]string{}
	if r.CheckInDate.IsZero() {
		errs["checkInDate"] = "Check in date is required"
	}
	if r.NoOfNights == nil || *r.NoOfNights < 1 {
		errs["noOfNights"] = "No of nights required"
	}
	if len(r.RoomRequirements) == 0 {
		errs["roomRequirements"] = "Room requirements are required"
	}
	for i, req := range r.RoomRequirements {
		if req.NumberOfRooms < 1 {
			errs[fmt.Sprintf("roomRequirements[%d].numberOfRooms", i)] = "No. of rooms are required"
		}
		if req.MaxAdults < 1 {
			errs[fmt.Sprintf("roomRequirements[%d].maxAdults", i)] = "No. of adults are required"
		}
	}
	return errs
}

// SearchAvailability handles POST /contracts/available: it runs the
// availability engine over the requested stay and room requirements.  The
// wire contract fixes the 404 body to the literal
// "No Available Contracts Found".
func (h *ContractHandler) SearchAvailability(c echo.Context) error {
	var body searchRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if errs := body.validate(); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, errs)
	}

	results, err := h.Engine.Search(c.Request().Context(), availability.SearchQuery{
		CheckInDate:      body.CheckInDate,
		NoOfNights:       *body.NoOfNights,
		RoomRequirements: body.RoomRequirements,
	})
	if err != nil {
		if errors.Is(err, availability.ErrNoAvailability) {
			return c.String(http.StatusNotFound, "No Available Contracts Found")
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, results)
}

func roomTypes(details []model.RoomDetail) []string {
	types := make([]string, 0, len(details))
	for _, d := range details {
		types = append(types, d.RoomType)
	}
	return types
}
