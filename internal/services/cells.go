package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "homeledger/internal/errors"
	"homeledger/internal/models"
)

// parseCellDate reads an edited date cell, which must be YYYY-MM-DD.
func parseCellDate(field, s string) (models.Date, error) {
	d, err := models.ParseDate(s)
	if err != nil {
		return models.Date{}, apperrors.WithMessage(apperrors.ErrInvalidDate,
			fmt.Sprintf("%s %q is not a YYYY-MM-DD date", field, strings.TrimSpace(s)))
	}
	return d, nil
}

// parseCellAmount reads an edited money cell. Blank reads as zero.
func parseCellAmount(field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, apperrors.WithMessage(apperrors.ErrInvalidNumber,
			fmt.Sprintf("%s %q is not a number", field, s))
	}
	if v.IsNegative() {
		return decimal.Zero, apperrors.WithMessage(apperrors.ErrInvalidAmount,
			fmt.Sprintf("%s must not be negative", field))
	}
	return v, nil
}

// parseCellRatio reads an edited ratio cell as a whole percent in 0..100.
// Blank reads as zero.
func parseCellRatio(field, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil || !v.Equal(v.Truncate(0)) {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidNumber,
			fmt.Sprintf("%s %q is not a whole number", field, s))
	}
	if v.IsNegative() || v.GreaterThan(decimal.NewFromInt(models.FullRatio)) {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidNumber,
			fmt.Sprintf("%s must be between 0 and 100", field))
	}
	return int(v.IntPart()), nil
}

func checkRatio(field string, ratio int) error {
	if ratio < 0 || ratio > models.FullRatio {
		return apperrors.WithMessage(apperrors.ErrInvalidNumber,
			fmt.Sprintf("%s must be between 0 and 100", field))
	}
	return nil
}

func currencyOrDefault(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return models.DefaultCurrency
	}
	return code
}

func persistenceError(err error) error {
	return apperrors.Wrap(apperrors.ErrPersistence, err)
}
