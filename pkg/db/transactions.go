package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/marketsurvey/marketsurvey/pkg/domain"
)

// GetTransactions retrieves all transactions for a project, oldest first
func (db *DB) GetTransactions(ctx context.Context, projectID int64) ([]domain.Transaction, error) {
	var dbTransactions []Transaction
	query := "SELECT * FROM transactions WHERE project_id = ? ORDER BY sale_date"
	if err := db.conn.SelectContext(ctx, &dbTransactions, query, projectID); err != nil {
		return nil, fmt.Errorf("get transactions: %w", err)
	}

	transactions := make([]domain.Transaction, 0, len(dbTransactions))
	for i := range dbTransactions {
		transactions = append(transactions, toDomainTransaction(&dbTransactions[i]))
	}
	return transactions, nil
}

// insertTransactionsTx inserts transactions for a project within a transaction
func insertTransactionsTx(ctx context.Context, tx *sqlx.Tx, projectID int64, transactions []domain.Transaction) error {
	query := `
		INSERT INTO transactions (project_id, price, sale_date, unit_size, floor, buyer_type, address, source)
		VALUES (:project_id, :price, :sale_date, :unit_size, :floor, :buyer_type, :address, :source)
	`
	for i := range transactions {
		dbTransaction := fromDomainTransaction(&transactions[i])
		dbTransaction.ProjectID = projectID
		if _, err := tx.NamedExecContext(ctx, query, dbTransaction); err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}
	}
	return nil
}

// toDomainTransaction converts db.Transaction to domain.Transaction
func toDomainTransaction(t *Transaction) domain.Transaction {
	transaction := domain.Transaction{
		ID:        t.ID,
		ProjectID: t.ProjectID,
		Price:     t.Price,
		SaleDate:  t.SaleDate,
		BuyerType: t.BuyerType,
		Address:   t.Address,
		Source:    domain.DataSource(t.Source),
	}
	if t.UnitSize.Valid {
		size := t.UnitSize.Float64
		transaction.UnitSize = &size
	}
	if t.Floor.Valid {
		floor := int(t.Floor.Int64)
		transaction.Floor = &floor
	}
	return transaction
}

// fromDomainTransaction converts domain.Transaction to db.Transaction
func fromDomainTransaction(t *domain.Transaction) *Transaction {
	dbTransaction := &Transaction{
		ID:        t.ID,
		ProjectID: t.ProjectID,
		Price:     t.Price,
		SaleDate:  t.SaleDate,
		BuyerType: t.BuyerType,
		Address:   t.Address,
		Source:    string(t.Source),
	}
	if dbTransaction.Source == "" {
		dbTransaction.Source = string(domain.SourceTaxAuthority)
	}
	if t.UnitSize != nil {
		dbTransaction.UnitSize = sql.NullFloat64{Float64: *t.UnitSize, Valid: true}
	}
	if t.Floor != nil {
		dbTransaction.Floor = sql.NullInt64{Int64: int64(*t.Floor), Valid: true}
	}
	return dbTransaction
}
