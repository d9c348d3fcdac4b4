package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/suntravels/callcenter/internal/availability"
	"github.com/suntravels/callcenter/internal/model"
)

// memStore is an in-memory contract store used in place of the MySQL
// repository.  It implements both the handler's ContractStore and the
// engine's ContractSource with the same containment semantics as the
// real queries.
type memStore struct {
	mu        sync.Mutex
	nextID    uint64
	contracts []model.Contract
}

func newMemStore() *memStore { return &memStore{nextID: 1} }

func (s *memStore) Create(_ context.Context, c *model.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.nextID
	s.nextID++
	for i := range c.RoomDetails {
		c.RoomDetails[i].ID = s.nextID
		s.nextID++
	}
	s.contracts = append(s.contracts, *c)
	return nil
}

func (s *memStore) ListAll(_ context.Context) ([]model.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Contract(nil), s.contracts...), nil
}

func (s *memStore) FindByHotelName(_ context.Context, fragment string) ([]model.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Contract
	needle := strings.ToLower(fragment)
	for _, c := range s.contracts {
		if strings.Contains(strings.ToLower(c.HotelName), needle) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *memStore) FindOverlapping(_ context.Context, checkIn, checkOut model.Date) ([]model.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Contract
	for _, c := range s.contracts {
		if !c.StartDate.After(checkIn) && !c.EndDate.Before(checkOut) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *memStore) ExistsByID(_ context.Context, id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.contracts {
		if c.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) DeleteByID(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.contracts {
		if c.ID == id {
			s.contracts = append(s.contracts[:i], s.contracts[i+1:]...)
			return nil
		}
	}
	return nil
}

var testToday = model.NewDate(2026, time.September, 1)

func newTestHandler() (*ContractHandler, *memStore) {
	store := newMemStore()
	h := NewContractHandler(store, availability.NewEngine(store), availability.FixedClock{Date: testToday})
	h.PublishEvents = false
	return h, store
}

func doRequest(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

const validContractBody = `{
	"hotelName": "Sun Siyam Iru Fushi",
	"startDate": "2026-09-10",
	"endDate": "2026-12-20",
	"markUpRate": 15,
	"roomDetails": [
		{"roomType": "Deluxe", "pricePerPerson": 100, "numberOfRooms": 12, "maxAdults": 2}
	]
}`

func seedContract(t *testing.T, h *ContractHandler) model.Contract {
	t.Helper()
	c, rec := doRequest(http.MethodPost, "/contracts", validContractBody)
	if err := h.CreateContract(c); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created model.Contract
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created contract: %v", err)
	}
	return created
}

func TestCreateContractAssignsID(t *testing.T) {
	h, _ := newTestHandler()
	created := seedContract(t, h)
	if created.ID == 0 {
		t.Fatal("expected contract id to be populated")
	}
	if len(created.RoomDetails) != 1 || created.RoomDetails[0].ID == 0 {
		t.Fatalf("expected room detail ids to be populated: %+v", created.RoomDetails)
	}
}

func TestCreateContractValidationMap(t *testing.T) {
	h, _ := newTestHandler()
	c, rec := doRequest(http.MethodPost, "/contracts", `{"markUpRate": 150, "roomDetails": [{"roomType": ""}]}`)
	if err := h.CreateContract(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var errs map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &errs); err != nil {
		t.Fatalf("expected field->message map: %v", err)
	}
	for field, want := range map[string]string{
		"hotelName":  "Hotel name is required",
		"startDate":  "Start date is required",
		"endDate":    "End date is required",
		"markUpRate": "Mark Up should less than 100",
	} {
		if errs[field] != want {
			t.Fatalf("field %s: expected %q, got %q", field, want, errs[field])
		}
	}
	if _, ok := errs["roomDetails[0].pricePerPerson"]; !ok {
		t.Fatalf("expected nested room detail errors, got %v", errs)
	}
}

func TestCreateContractRejectsPastWindow(t *testing.T) {
	h, _ := newTestHandler()
	body := `{
		"hotelName": "Old Hotel",
		"startDate": "2026-08-01",
		"endDate": "2026-12-01",
		"markUpRate": 10,
		"roomDetails": [{"roomType": "Deluxe", "pricePerPerson": 100, "numberOfRooms": 1, "maxAdults": 2}]
	}`
	c, rec := doRequest(http.MethodPost, "/contracts", body)
	if err := h.CreateContract(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for past start date, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Check-in Date cannot be in the past") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestListContractsEmptyIsOK(t *testing.T) {
	h, _ := newTestHandler()
	c, rec := doRequest(http.MethodGet, "/contracts", "")
	if err := h.ListContracts(c); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty JSON array, got %s", rec.Body.String())
	}
}

func TestSearchByHotelNameNotFoundLiteral(t *testing.T) {
	h, _ := newTestHandler()
	c, rec := doRequest(http.MethodGet, "/contracts/Hilton", "")
	c.SetParamNames("hotelName")
	c.SetParamValues("Hilton")
	if err := h.SearchByHotelName(c); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec.Body.String() != "No Contracts Found" {
		t.Fatalf("body must be the literal text, got %q", rec.Body.String())
	}
}

func TestSearchByHotelNameSubstringCaseInsensitive(t *testing.T) {
	h, _ := newTestHandler()
	seedContract(t, h)

	c, rec := doRequest(http.MethodGet, "/contracts/siyam", "")
	c.SetParamNames("hotelName")
	c.SetParamValues("siyam")
	if err := h.SearchByHotelName(c); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var contracts []model.Contract
	if err := json.Unmarshal(rec.Body.Bytes(), &contracts); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(contracts) != 1 || contracts[0].HotelName != "Sun Siyam Iru Fushi" {
		t.Fatalf("unexpected result: %+v", contracts)
	}
}

func TestDeleteContract(t *testing.T) {
	h, store := newTestHandler()
	created := seedContract(t, h)

	c, rec := doRequest(http.MethodDelete, "/contracts/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.DeleteContract(c); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if exists, _ := store.ExistsByID(context.Background(), created.ID); exists {
		t.Fatal("contract should be gone")
	}
}

func TestDeleteContractNotFound(t *testing.T) {
	h, _ := newTestHandler()
	c, rec := doRequest(http.MethodDelete, "/contracts/99", "")
	c.SetParamNames("id")
	c.SetParamValues("99")
	if err := h.DeleteContract(c); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSearchAvailabilityHappyPath(t *testing.T) {
	h, _ := newTestHandler()
	seedContract(t, h)

	body := `{
		"checkInDate": "2026-10-01",
		"noOfNights": 5,
		"roomRequirements": [{"numberOfRooms": 2, "maxAdults": 2}]
	}`
	c, rec := doRequest(http.MethodPost, "/contracts/available", body)
	if err := h.SearchAvailability(c); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var results []availability.AvailableContract
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 contract, got %d", len(results))
	}
	rooms := results[0].AvailableRooms
	if len(rooms) != 1 || rooms[0].RequirementID != 1 || rooms[0].RoomType != "Deluxe" {
		t.Fatalf("unexpected rooms: %+v", rooms)
	}
	// 100 * 5 * 2 * 12 * 15 / 100
	if rooms[0].TotalPrice != 1800 {
		t.Fatalf("expected total 1800, got %v", rooms[0].TotalPrice)
	}
}

func TestSearchAvailabilityNoMatchLiteral(t *testing.T) {
	h, _ := newTestHandler()
	seedContract(t, h)

	// Stay not contained in the contract window.
	body := `{
		"checkInDate": "2026-12-19",
		"noOfNights": 5,
		"roomRequirements": [{"numberOfRooms": 1, "maxAdults": 2}]
	}`
	c, rec := doRequest(http.MethodPost, "/contracts/available", body)
	if err := h.SearchAvailability(c); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != "No Available Contracts Found" {
		t.Fatalf("body must be the literal text, got %q", rec.Body.String())
	}
}

func TestSearchAvailabilityValidation(t *testing.T) {
	h, _ := newTestHandler()
	c, rec := doRequest(http.MethodPost, "/contracts/available", `{}`)
	if err := h.SearchAvailability(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var errs map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &errs); err != nil {
		t.Fatalf("expected field->message map: %v", err)
	}
	for field, want := range map[string]string{
		"checkInDate":      "Check in date is required",
		"noOfNights":       "No of nights required",
		"roomRequirements": "Room requirements are required",
	} {
		if errs[field] != want {
			t.Fatalf("field %s: expected %q, got %q", field, want, errs[field])
		}
	}
}
