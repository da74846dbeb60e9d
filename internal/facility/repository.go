package facility

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/parkpilot/parkpilot/pkg/common"
)

// Repository handles facility data access
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new facility repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// ListActive returns every active parking facility
func (r *Repository) ListActive(ctx context.Context) ([]Facility, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, address, latitude, longitude,
			price_per_hour, is_covered, has_security, has_ev_charging,
			rating, total_slots, is_active, created_at, updated_at
		FROM parking_facilities
		WHERE is_active = true
		ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var facilities []Facility
	for rows.Next() {
		var f Facility
		if err := rows.Scan(
			&f.ID, &f.Name, &f.Address, &f.Latitude, &f.Longitude,
			&f.PricePerHour, &f.IsCovered, &f.HasSecurity, &f.HasEVCharging,
			&f.Rating, &f.TotalSlots, &f.IsActive, &f.CreatedAt, &f.UpdatedAt,
		); err != nil {
			return nil, err
		}
		facilities = append(facilities, f)
	}
	return facilities, rows.Err()
}

// GetByID retrieves a single facility
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Facility, error) {
	f := &Facility{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, address, latitude, longitude,
			price_per_hour, is_covered, has_security, has_ev_charging,
			rating, total_slots, is_active, created_at, updated_at
		FROM parking_facilities
		WHERE id = $1`, id,
	).Scan(
		&f.ID, &f.Name, &f.Address, &f.Latitude, &f.Longitude,
		&f.PricePerHour, &f.IsCovered, &f.HasSecurity, &f.HasEVCharging,
		&f.Rating, &f.TotalSlots, &f.IsActive, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// CountSlotsByStatus returns per-status counts of a facility's active slots
func (r *Repository) CountSlotsByStatus(ctx context.Context, facilityID uuid.UUID) (SlotCounts, error) {
	rows, err := r.db.Query(ctx, `
		SELECT status, COUNT(*)
		FROM parking_slots
		WHERE facility_id = $1 AND is_active = true
		GROUP BY status`, facilityID)
	if err != nil {
		return SlotCounts{}, err
	}
	defer rows.Close()

	var counts SlotCounts
	for rows.Next() {
		var status SlotStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return SlotCounts{}, err
		}
		switch status {
		case SlotStatusFree:
			counts.Free = n
		case SlotStatusOccupied:
			counts.Occupied = n
		case SlotStatusBlocked:
			counts.Blocked = n
		}
	}
	return counts, rows.Err()
}
