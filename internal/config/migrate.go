package config

import (
	"errors"
	"fmt"

	"github.com/rpgo/asset-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// Schema versions of persisted portfolios.
//
//	1: maintenance entered as annualExpenses in dollars per year
//	2: management fee entered as a single propertyManagementFee rate
//	3: current shape
const (
	SchemaVersionLegacyExpenses = 1
	SchemaVersionLegacyFee      = 2
	CurrentSchemaVersion        = 3
)

// ErrUnknownSchemaVersion is returned for files written by a newer version.
var ErrUnknownSchemaVersion = errors.New("unknown schema version")

// Migrate upgrades rec in place to CurrentSchemaVersion. A missing version
// is treated as the oldest shape.
func Migrate(rec *PortfolioRecord) error {
	version := rec.SchemaVersion
	if version == 0 {
		version = SchemaVersionLegacyExpenses
	}
	if version < 0 || version > CurrentSchemaVersion {
		return fmt.Errorf("%w: %d (supported up to %d)", ErrUnknownSchemaVersion, rec.SchemaVersion, CurrentSchemaVersion)
	}
	for i := range rec.Properties {
		MigrateProperty(&rec.Properties[i])
	}
	rec.SchemaVersion = CurrentSchemaVersion
	return nil
}

// MigrateProperty rewrites legacy fields of a single property record. It is
// idempotent: migrated fields are cleared.
func MigrateProperty(r *PropertyRecord) {
	if r.AnnualExpenses != nil {
		if r.MaintenanceRate == nil {
			r.MaintenanceRate = maintenanceRateFromExpenses(r)
		}
		r.AnnualExpenses = nil
	}
	if r.PropertyManagementFee != nil {
		if r.MonthlyManagementFeeRate == nil {
			fee := *r.PropertyManagementFee
			r.MonthlyManagementFeeRate = &fee
		}
		if r.PropertyManagementEnabled == nil {
			enabled := r.PropertyManagementFee.Valid && r.PropertyManagementFee.Value.IsPositive()
			r.PropertyManagementEnabled = &enabled
		}
		r.PropertyManagementFee = nil
	}
}

// maintenanceRateFromExpenses converts yearly dollars to a percent of the
// purchase price.
func maintenanceRateFromExpenses(r *PropertyRecord) *Number {
	expenses := resolve(r.AnnualExpenses, decimal.Zero)
	price := resolve(r.PurchasePrice, domain.DefaultPropertyInputs(0).PurchasePrice)
	if !price.IsPositive() {
		return NewNumber(decimal.Zero)
	}
	return NewNumber(expenses.Div(price).Mul(decimal.NewFromInt(100)))
}
