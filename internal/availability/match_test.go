package availability

import (
	"testing"
	"time"

	"github.com/suntravels/callcenter/internal/model"
)

func testContract(markUp float64, details ...model.RoomDetail) *model.Contract {
	return &model.Contract{
		ID:          1,
		HotelName:   "Sun Siyam",
		StartDate:   model.NewDate(2026, time.January, 1),
		EndDate:     model.NewDate(2026, time.December, 31),
		MarkUpRate:  markUp,
		RoomDetails: details,
	}
}

func TestMatchRoomsPricing(t *testing.T) {
	contract := testContract(15, model.RoomDetail{
		RoomType:       "Deluxe",
		PricePerPerson: 100,
		NumberOfRooms:  12,
		MaxAdults:      2,
	})

	rooms := MatchRooms(contract, RoomRequirement{NumberOfRooms: 2, MaxAdults: 2}, 1, 5)
	if len(rooms) != 1 {
		t.Fatalf("expected 1 match, got %d", len(rooms))
	}
	// 100 * 5 nights * 2 adults * 12 rooms * 15% = 1800.  The line's own
	// counts drive the price, not the requested ones.
	if rooms[0].TotalPrice != 1800 {
		t.Fatalf("expected total 1800, got %v", rooms[0].TotalPrice)
	}
	if rooms[0].RoomType != "Deluxe" {
		t.Fatalf("unexpected room type %q", rooms[0].RoomType)
	}
	if rooms[0].RequirementID != 1 {
		t.Fatalf("expected requirement id 1, got %d", rooms[0].RequirementID)
	}
}

// Capacity matching is strict equality: a 3-adult line satisfies neither a
// 2-adult nor a 4-adult requirement.  This pins deliberate behavior; do
// not relax it to >=.
func TestMatchRoomsCapacityIsExact(t *testing.T) {
	contract := testContract(10, model.RoomDetail{
		RoomType:       "Family",
		PricePerPerson: 50,
		NumberOfRooms:  5,
		MaxAdults:      3,
	})

	for _, adults := range []int{2, 4} {
		rooms := MatchRooms(contract, RoomRequirement{NumberOfRooms: 1, MaxAdults: adults}, 1, 2)
		if len(rooms) != 0 {
			t.Fatalf("maxAdults=%d must not match a 3-adult line", adults)
		}
	}
	rooms := MatchRooms(contract, RoomRequirement{NumberOfRooms: 1, MaxAdults: 3}, 1, 2)
	if len(rooms) != 1 {
		t.Fatalf("maxAdults=3 should match exactly, got %d matches", len(rooms))
	}
}

// Room count, unlike capacity, is an inequality: the line must hold at
// least the requested number of rooms.
func TestMatchRoomsCountIsInequality(t *testing.T) {
	contract := testContract(10, model.RoomDetail{
		RoomType:       "Standard",
		PricePerPerson: 80,
		NumberOfRooms:  2,
		MaxAdults:      2,
	})

	if rooms := MatchRooms(contract, RoomRequirement{NumberOfRooms: 3, MaxAdults: 2}, 1, 1); len(rooms) != 0 {
		t.Fatal("a 2-room line must not satisfy a 3-room requirement")
	}
	for _, n := range []int{1, 2} {
		if rooms := MatchRooms(contract, RoomRequirement{NumberOfRooms: n, MaxAdults: 2}, 1, 1); len(rooms) != 1 {
			t.Fatalf("a 2-room line should satisfy a %d-room requirement", n)
		}
	}
}

func TestMatchRoomsZeroRoomsRequested(t *testing.T) {
	contract := testContract(10, model.RoomDetail{
		RoomType:       "Standard",
		PricePerPerson: 80,
		NumberOfRooms:  2,
		MaxAdults:      2,
	})
	// A zero-room requirement is tolerated and matches (0 <= 2); callers
	// reject it at the boundary before it reaches the matcher.
	rooms := MatchRooms(contract, RoomRequirement{NumberOfRooms: 0, MaxAdults: 2}, 1, 1)
	if len(rooms) != 1 {
		t.Fatalf("expected the line to survive a zero-room requirement, got %d", len(rooms))
	}
}

func TestMatchRoomsReturnsEveryQualifyingLine(t *testing.T) {
	contract := testContract(20,
		model.RoomDetail{RoomType: "Deluxe", PricePerPerson: 100, NumberOfRooms: 4, MaxAdults: 2},
		model.RoomDetail{RoomType: "Suite", PricePerPerson: 200, NumberOfRooms: 2, MaxAdults: 2},
		model.RoomDetail{RoomType: "Family", PricePerPerson: 150, NumberOfRooms: 6, MaxAdults: 4},
	)

	rooms := MatchRooms(contract, RoomRequirement{NumberOfRooms: 2, MaxAdults: 2}, 2, 3)
	if len(rooms) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(rooms))
	}
	if rooms[0].RoomType != "Deluxe" || rooms[1].RoomType != "Suite" {
		t.Fatalf("expected inventory order preserved, got %q then %q", rooms[0].RoomType, rooms[1].RoomType)
	}
	for _, r := range rooms {
		if r.RequirementID != 2 {
			t.Fatalf("expected requirement id 2 on every match, got %d", r.RequirementID)
		}
	}
}
