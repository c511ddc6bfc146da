// Package numbering generates daily-sequenced invoice numbers of the form
// YYYYMMDDNNNN.
package numbering

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/smallbiznis/railpos/internal/invoice/domain"
	"gorm.io/gorm"
)

const (
	prefixLayout = "20060102"
	seqDigits    = 4
	maxSequence  = 9999
)

type Generator struct{}

func New() domain.Numberer {
	return Generator{}
}

// Next returns the number following the greatest one already issued on day.
// It must run on the same transaction that inserts the invoice; the unique
// index on invoice_number rejects a concurrent duplicate.
func (Generator) Next(ctx context.Context, tx *gorm.DB, day time.Time) (string, error) {
	prefix := day.Format(prefixLayout)

	var last []string
	err := tx.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("invoice_number LIKE ?", prefix+"%").
		Order("invoice_number DESC").
		Limit(1).
		Pluck("invoice_number", &last).Error
	if err != nil {
		return "", err
	}

	seq := 1
	if len(last) > 0 {
		n, err := Sequence(last[0], prefix)
		if err != nil {
			return "", err
		}
		seq = n + 1
	}
	return Format(day, seq)
}

// Format renders the invoice number for the seq-th sale of day.
func Format(day time.Time, seq int) (string, error) {
	if seq < 1 || seq > maxSequence {
		return "", domain.ErrInvoiceNumberExhausted
	}
	return fmt.Sprintf("%s%0*d", day.Format(prefixLayout), seqDigits, seq), nil
}

// Sequence extracts the daily counter from number.
func Sequence(number, prefix string) (int, error) {
	if len(number) != len(prefix)+seqDigits || number[:len(prefix)] != prefix {
		return 0, fmt.Errorf("malformed invoice number %q", number)
	}
	n, err := strconv.Atoi(number[len(prefix):])
	if err != nil {
		return 0, fmt.Errorf("malformed invoice number %q: %w", number, err)
	}
	return n, nil
}
