package availability

import "github.com/suntravels/callcenter/internal/model"

// RoomRequirement is one line of a search query: how many rooms the guest
// wants and how many adults each room must sleep.  Requirements are
// positional; their index in the query list identifies them in results.
type RoomRequirement struct {
	NumberOfRooms int `json:"numberOfRooms"`
	MaxAdults     int `json:"maxAdults"`
}

// MatchedRoom is one priced inventory line that satisfies a requirement.
// RequirementID is the 1-based position of the requirement it answers.
type MatchedRoom struct {
	RequirementID int     `json:"requirementId"`
	RoomType      string  `json:"roomType"`
	TotalPrice    float64 `json:"totalPrice"`
}

// MatchRooms finds every inventory line of the contract that satisfies the
// requirement and prices it for the stay.  A line qualifies when its
// MaxAdults equals the requirement's exactly (capacity is an exact match,
// not a minimum) and its NumberOfRooms covers the requested count.  The
// quoted price is for the full inventory line as configured on the
// contract, scaled by stay length and the contract's markup percentage:
//
//	total = pricePerPerson * nights * line.maxAdults * line.numberOfRooms * markUpRate / 100
//
// Note the line's own room and adult counts drive the price, not the
// requirement's.  Returns an empty slice when nothing qualifies.
func MatchRooms(contract *model.Contract, req RoomRequirement, requirementID, nights int) []MatchedRoom {
	var matches []MatchedRoom
	for _, line := range contract.RoomDetails {
		if line.MaxAdults != req.MaxAdults {
			continue
		}
		if line.NumberOfRooms < req.NumberOfRooms {
			continue
		}
		total := line.PricePerPerson * float64(nights) * float64(line.MaxAdults) *
			float64(line.NumberOfRooms) * contract.MarkUpRate / 100
		matches = append(matches, MatchedRoom{
			RequirementID: requirementID,
			RoomType:      line.RoomType,
			TotalPrice:    total,
		})
	}
	return matches
}
