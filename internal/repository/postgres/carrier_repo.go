package postgres

import (
	"context"
	"fmt"

	"parcelrate-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type carrierRepository struct {
	db *pgxpool.Pool
}

func NewCarrierRepository(db *pgxpool.Pool) domain.CarrierRepository {
	return &carrierRepository{db: db}
}

// ListActiveCarriers returns every active carrier with its active services
// attached, ordered by carrier then service id.
func (r *carrierRepository) ListActiveCarriers(ctx context.Context) ([]domain.Carrier, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.name, c.code, c.is_active, c.created_at, c.updated_at,
		       s.id, s.carrier_id, s.name, s.code, s.type,
		       s.has_tracking, s.has_insurance,
		       s.delivery_days_min, s.delivery_days_max, s.max_weight_kg, s.is_active
		FROM carriers c
		LEFT JOIN services s ON s.carrier_id = c.id AND s.is_active
		WHERE c.is_active
		ORDER BY c.id, s.id
	`)
	if err != nil {
		return nil, fmt.Errorf("list carriers: %w", err)
	}
	defer rows.Close()

	var carriers []domain.Carrier
	byID := make(map[int64]int)
	for rows.Next() {
		var c domain.Carrier
		var (
			svcID       *int64
			svcCarrier  *int64
			svcName     *string
			svcCode     *string
			svcType     *string
			tracking    *bool
			insurance   *bool
			daysMin     *int
			daysMax     *int
			maxWeightKg *float64
			svcActive   *bool
		)
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Code, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
			&svcID, &svcCarrier, &svcName, &svcCode, &svcType,
			&tracking, &insurance, &daysMin, &daysMax, &maxWeightKg, &svcActive,
		); err != nil {
			return nil, fmt.Errorf("scan carrier: %w", err)
		}

		idx, seen := byID[c.ID]
		if !seen {
			carriers = append(carriers, c)
			idx = len(carriers) - 1
			byID[c.ID] = idx
		}

		if svcID != nil {
			carriers[idx].Services = append(carriers[idx].Services, domain.Service{
				ID:              *svcID,
				CarrierID:       *svcCarrier,
				Name:            *svcName,
				Code:            *svcCode,
				Type:            *svcType,
				HasTracking:     *tracking,
				HasInsurance:    *insurance,
				DeliveryDaysMin: *daysMin,
				DeliveryDaysMax: *daysMax,
				MaxWeightKg:     *maxWeightKg,
				IsActive:        *svcActive,
			})
		}
	}
	return carriers, rows.Err()
}
