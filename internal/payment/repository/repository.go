package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	installmentdomain "github.com/smallbiznis/railpos/internal/installment/domain"
	"github.com/smallbiznis/railpos/internal/payment/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, payment *domain.Payment) error {
	err := db.WithContext(ctx).Omit(clause.Associations).Create(payment).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return domain.ErrInstallmentNotFound
	}
	return err
}

func (r *repo) ListByInstallment(ctx context.Context, db *gorm.DB, installmentID snowflake.ID) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := db.WithContext(ctx).
		Where("installment_id = ?", installmentID).
		Order("payment_date ASC").
		Order("id ASC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repo) ListByInvoice(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := db.WithContext(ctx).
		Where("installment_id IN (?)", installmentIDs(db, invoiceID)).
		Order("payment_date ASC").
		Order("id ASC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repo) DeleteByInvoice(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) (int64, error) {
	res := db.WithContext(ctx).
		Where("installment_id IN (?)", installmentIDs(db, invoiceID)).
		Delete(&domain.Payment{})
	return res.RowsAffected, res.Error
}

func installmentIDs(db *gorm.DB, invoiceID snowflake.ID) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Model(&installmentdomain.Installment{}).
		Select("id").
		Where("invoice_id = ?", invoiceID)
}
