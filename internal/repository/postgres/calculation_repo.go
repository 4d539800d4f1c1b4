package postgres

import (
	"context"
	"errors"
	"fmt"

	"parcelrate-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type calculationRepository struct {
	db *pgxpool.Pool
}

func NewCalculationRepository(db *pgxpool.Pool) domain.CalculationRepository {
	return &calculationRepository{db: db}
}

func (r *calculationRepository) InsertCalculation(ctx context.Context, calc *domain.ShippingCalculation) error {
	var dimL, dimW, dimH, pkdL, pkdW, pkdH *float64
	if calc.Dimensions != nil {
		dimL, dimW, dimH = &calc.Dimensions.LengthCm, &calc.Dimensions.WidthCm, &calc.Dimensions.HeightCm
	}
	if calc.PackedDimensions != nil {
		pkdL, pkdW, pkdH = &calc.PackedDimensions.LengthCm, &calc.PackedDimensions.WidthCm, &calc.PackedDimensions.HeightCm
	}

	err := r.db.QueryRow(ctx, `
		INSERT INTO shipping_calculations (
			id, weight_kg, packed_weight_kg, chargeable_weight_kg,
			length_cm, width_cm, height_cm,
			packed_length_cm, packed_width_cm, packed_height_cm,
			destination_country, preference, results,
			selected_service_id, selected_cost
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at
	`,
		calc.ID, calc.WeightKg, calc.PackedWeightKg, calc.ChargeableWeightKg,
		dimL, dimW, dimH,
		pkdL, pkdW, pkdH,
		calc.DestinationCountry, calc.Preference, calc.Results,
		calc.SelectedServiceID, calc.SelectedCost,
	).Scan(&calc.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert calculation: %w", err)
	}
	return nil
}

func (r *calculationRepository) GetCalculationByID(ctx context.Context, id string) (*domain.ShippingCalculation, error) {
	var calc domain.ShippingCalculation
	var dimL, dimW, dimH, pkdL, pkdW, pkdH *float64
	err := r.db.QueryRow(ctx, `
		SELECT id, weight_kg, packed_weight_kg, chargeable_weight_kg,
		       length_cm, width_cm, height_cm,
		       packed_length_cm, packed_width_cm, packed_height_cm,
		       destination_country, preference, results,
		       selected_service_id, selected_cost, created_at
		FROM shipping_calculations
		WHERE id = $1
	`, id).Scan(
		&calc.ID, &calc.WeightKg, &calc.PackedWeightKg, &calc.ChargeableWeightKg,
		&dimL, &dimW, &dimH,
		&pkdL, &pkdW, &pkdH,
		&calc.DestinationCountry, &calc.Preference, &calc.Results,
		&calc.SelectedServiceID, &calc.SelectedCost, &calc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get calculation %s: %w", id, err)
	}

	if dimL != nil {
		calc.Dimensions = &domain.Dimensions{LengthCm: *dimL, WidthCm: *dimW, HeightCm: *dimH}
	}
	if pkdL != nil {
		calc.PackedDimensions = &domain.Dimensions{LengthCm: *pkdL, WidthCm: *pkdW, HeightCm: *pkdH}
	}
	return &calc, nil
}

func (r *calculationRepository) ListCalculations(ctx context.Context, filter domain.CalculationFilter) ([]domain.ShippingCalculation, int64, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM shipping_calculations`
	listQuery := `
		SELECT id, weight_kg, packed_weight_kg, chargeable_weight_kg,
		       destination_country, preference, results,
		       selected_service_id, selected_cost, created_at
		FROM shipping_calculations`
	args := []any{}
	if filter.Country != "" {
		countQuery += ` WHERE destination_country = $1`
		listQuery += ` WHERE destination_country = $1`
		args = append(args, filter.Country)
	}
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count calculations: %w", err)
	}

	listQuery += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list calculations: %w", err)
	}
	defer rows.Close()

	var calcs []domain.ShippingCalculation
	for rows.Next() {
		var calc domain.ShippingCalculation
		if err := rows.Scan(
			&calc.ID, &calc.WeightKg, &calc.PackedWeightKg, &calc.ChargeableWeightKg,
			&calc.DestinationCountry, &calc.Preference, &calc.Results,
			&calc.SelectedServiceID, &calc.SelectedCost, &calc.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan calculation: %w", err)
		}
		calcs = append(calcs, calc)
	}
	return calcs, total, rows.Err()
}
