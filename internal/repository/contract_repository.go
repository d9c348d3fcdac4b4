// Package repository contains data access logic separated from HTTP
// handlers.  This file implements the contract store: CRUD and lookup
// operations over the `contracts` and `room_details` tables.  Room detail
// rows are owned by their parent contract and are always written and
// deleted together with it.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/suntravels/callcenter/internal/model"
)

// ErrContractNotFound is returned when a contract cannot be found in the DB.
var ErrContractNotFound = errors.New("contract not found")

// ContractRepo encapsulates all database queries related to contracts.  It
// depends on a sql.DB connection which should be configured elsewhere.
type ContractRepo struct {
	db *sql.DB
}

// NewContractRepo constructs a ContractRepo with the provided DB handle.
// This allows dependency injection of the database in tests and at startup.
func NewContractRepo(db *sql.DB) *ContractRepo {
	return &ContractRepo{db: db}
}

// Create inserts a contract and its room detail lines in one transaction.
// On success the contract's ID and each detail's ID are populated with the
// auto-generated values.
func (r *ContractRepo) Create(ctx context.Context, c *model.Contract) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	const qContract = `INSERT INTO contracts (hotel_name, start_date, end_date, mark_up_rate)
	                   VALUES (?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, qContract, c.HotelName, c.StartDate, c.EndDate, c.MarkUpRate)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)

	const qDetail = `INSERT INTO room_details (contract_id, room_type, price_per_person, number_of_rooms, max_adults)
	                 VALUES (?, ?, ?, ?, ?)`
	for i := range c.RoomDetails {
		d := &c.RoomDetails[i]
		var res sql.Result
		res, err = tx.ExecContext(ctx, qDetail, c.ID, d.RoomType, d.PricePerPerson, d.NumberOfRooms, d.MaxAdults)
		if err != nil {
			return err
		}
		var detailID int64
		detailID, err = res.LastInsertId()
		if err != nil {
			return err
		}
		d.ID = uint64(detailID)
	}
	return nil
}

// ListAll returns every contract with its room details, ordered by id.
func (r *ContractRepo) ListAll(ctx context.Context) ([]model.Contract, error) {
	const q = `SELECT id, hotel_name, start_date, end_date, mark_up_rate
	           FROM contracts ORDER BY id`
	return r.queryContracts(ctx, q)
}

// FindByHotelName returns contracts whose hotel name contains the given
// fragment.  The match is a case-insensitive substring match; this is the
// documented policy regardless of the database collation.
func (r *ContractRepo) FindByHotelName(ctx context.Context, fragment string) ([]model.Contract, error) {
	const q = `SELECT id, hotel_name, start_date, end_date, mark_up_rate
	           FROM contracts
	           WHERE LOWER(hotel_name) LIKE ?
	           ORDER BY id`
	pattern := "%" + strings.ToLower(fragment) + "%"
	return r.queryContracts(ctx, q, pattern)
}

// FindOverlapping returns contracts whose validity window fully contains
// the stay: start_date on or before checkIn and end_date on or after
// checkOut.  This is a containment test, not a general interval overlap.
func (r *ContractRepo) FindOverlapping(ctx context.Context, checkIn, checkOut model.Date) ([]model.Contract, error) {
	const q = `SELECT id, hotel_name, start_date, end_date, mark_up_rate
	           FROM contracts
	           WHERE start_date <= ? AND end_date >= ?
	           ORDER BY id`
	return r.queryContracts(ctx, q, checkIn, checkOut)
}

// ExistsByID reports whether a contract with the given id exists.
func (r *ContractRepo) ExistsByID(ctx context.Context, id uint64) (bool, error) {
	const q = `SELECT 1 FROM contracts WHERE id = ?`
	var one int
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DeleteByID removes a contract and its room details in one transaction.
// It returns ErrContractNotFound when no contract row was deleted.
func (r *ContractRepo) DeleteByID(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM room_details WHERE contract_id = ?`, id); err != nil {
		return err
	}
	var res sql.Result
	res, err = tx.ExecContext(ctx, `DELETE FROM contracts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrContractNotFound
		return err
	}
	return nil
}

// queryContracts runs a SELECT over the contracts table and attaches room
// details to every returned row.  Details are loaded with a single second
// query to avoid per-contract round trips.
func (r *ContractRepo) queryContracts(ctx context.Context, q string, args ...any) ([]model.Contract, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Contract
	for rows.Next() {
		var c model.Contract
		if err := rows.Scan(&c.ID, &c.HotelName, &c.StartDate, &c.EndDate, &c.MarkUpRate); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}
	if err := r.attachDetails(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// attachDetails loads the room_details rows for the given contracts and
// assigns them to their parents, preserving insertion order per contract.
func (r *ContractRepo) attachDetails(ctx context.Context, contracts []model.Contract) error {
	ids := make([]any, len(contracts))
	placeholders := make([]string, len(contracts))
	byID := make(map[uint64]*model.Contract, len(contracts))
	for i := range contracts {
		ids[i] = contracts[i].ID
		placeholders[i] = "?"
		byID[contracts[i].ID] = &contracts[i]
	}

	q := `SELECT id, contract_id, room_type, price_per_person, number_of_rooms, max_adults
	      FROM room_details
	      WHERE contract_id IN (` + strings.Join(placeholders, ",") + `)
	      ORDER BY contract_id, id`
	rows, err := r.db.QueryContext(ctx, q, ids...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var d model.RoomDetail
		var contractID uint64
		if err := rows.Scan(&d.ID, &contractID, &d.RoomType, &d.PricePerPerson, &d.NumberOfRooms, &d.MaxAdults); err != nil {
			return err
		}
		if parent, ok := byID[contractID]; ok {
			parent.RoomDetails = append(parent.RoomDetails, d)
		}
	}
	return rows.Err()
}
