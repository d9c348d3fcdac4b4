package model

// Contract represents a hotel room-inventory contract.  A contract is an
// offer from a hotel valid over a date window; the markup rate is the
// percentage applied to computed base prices when quoting.  This struct
// corresponds to a row in the `contracts` table.
//
// Fields:
//  ID          – primary key identifier, assigned by the database.
//  HotelName   – name of the hotel the contract was negotiated with.
//  StartDate   – first day the contract is valid.
//  EndDate     – last day the contract is valid (never before StartDate).
//  MarkUpRate  – markup percentage in [0,100].
//  RoomDetails – inventory lines owned exclusively by this contract.
type Contract struct {
	ID          uint64       `json:"contractId"`
	HotelName   string       `json:"hotelName"`
	StartDate   Date         `json:"startDate"`
	EndDate     Date         `json:"endDate"`
	MarkUpRate  float64      `json:"markUpRate"`
	RoomDetails []RoomDetail `json:"roomDetails"`
}

// RoomDetail is one room-type line within a contract: how many rooms of
// this type the contract covers, how many adults one room sleeps, and the
// nightly per-person base price.  A RoomDetail has no identity outside its
// parent contract.  Corresponds to a row in the `room_details` table.
type RoomDetail struct {
	ID             uint64  `json:"roomDetailId"`
	RoomType       string  `json:"roomType"`
	PricePerPerson float64 `json:"pricePerPerson"`
	NumberOfRooms  int     `json:"numberOfRooms"`
	MaxAdults      int     `json:"maxAdults"`
}
