// Package availability implements the contract availability matching and
// pricing engine: given a stay window and a list of room requirements it
// selects the contracts that can fulfil every requirement and computes a
// markup-adjusted price per matched inventory line.  The engine is
// stateless and read-only over the contract store; repeated identical
// searches against an unchanged store return identical results.
package availability

import (
	"context"
	"errors"

	"github.com/suntravels/callcenter/internal/model"
)

// ErrNoAvailability is returned by Search when no contract can fulfil the
// query.  It covers both "no contract covers the window" and "contracts
// cover the window but no requirement is satisfiable".
var ErrNoAvailability = errors.New("No Available Contracts Found")

// SearchQuery describes one availability search.  CheckOut is derived as
// CheckInDate plus NoOfNights.  Requirements must be evaluated in order;
// their positions identify them in results.
type SearchQuery struct {
	CheckInDate      model.Date
	NoOfNights       int
	RoomRequirements []RoomRequirement
}

// AvailableContract is one qualifying contract in a search result: the
// hotel and every priced room match, grouped by requirement in requirement
// order.
type AvailableContract struct {
	HotelName      string        `json:"hotelName"`
	AvailableRooms []MatchedRoom `json:"availableRooms"`
}

// ContractSource is the slice of the contract store the engine needs.  The
// stay must fit entirely inside the contract window: implementations return
// contracts whose start date is on or before checkIn and whose end date is
// on or after checkOut.
type ContractSource interface {
	FindOverlapping(ctx context.Context, checkIn, checkOut model.Date) ([]model.Contract, error)
}

// Engine evaluates availability searches against a contract source.
type Engine struct {
	store ContractSource
}

// NewEngine constructs an Engine reading from the given source.
func NewEngine(store ContractSource) *Engine {
	return &Engine{store: store}
}

// Search returns every contract that covers the stay window and satisfies
// all room requirements.  The store is queried exactly once.  A contract
// contributes rooms only if every requirement matches at least one of its
// inventory lines; as soon as one requirement fails the contract is skipped
// entirely.  Contracts appear in store order.  When nothing qualifies,
// Search fails with ErrNoAvailability rather than returning an empty list.
// Store failures propagate unwrapped; the engine never retries.
func (e *Engine) Search(ctx context.Context, query SearchQuery) ([]AvailableContract, error) {
	checkOut := query.CheckInDate.AddDays(query.NoOfNights)

	contracts, err := e.store.FindOverlapping(ctx, query.CheckInDate, checkOut)
	if err != nil {
		return nil, err
	}

	var results []AvailableContract
	for i := range contracts {
		contract := &contracts[i]

		var rooms []MatchedRoom
		satisfied := true
		for j, req := range query.RoomRequirements {
			matches := MatchRooms(contract, req, j+1, query.NoOfNights)
			if len(matches) == 0 {
				satisfied = false
				break
			}
			rooms = append(rooms, matches...)
		}
		if !satisfied {
			continue
		}
		results = append(results, AvailableContract{
			HotelName:      contract.HotelName,
			AvailableRooms: rooms,
		})
	}

	if len(results) == 0 {
		return nil, ErrNoAvailability
	}
	return results, nil
}
