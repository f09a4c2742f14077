package pgrepo

import (
	"context"

	"github.com/fsdevblog/etf-ledger/internal/domain"
	"github.com/fsdevblog/etf-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/etf-ledger/pkg/uow"
)

type TransactionRepository struct {
	conn uow.DBTX
}

func NewTransactionRepository(conn uow.DBTX) *TransactionRepository {
	return &TransactionRepository{conn: conn}
}

// Create добавляет запись в журнал операций. Таблица append-only, обновлений нет.
func (t *TransactionRepository) Create(
	ctx context.Context,
	transaction repoargs.TransactionCreate,
) (*domain.Transaction, error) {
	row := t.conn.QueryRow(ctx,
		`INSERT INTO transactions (from_user_id, to_user_id, amount, kind)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, from_user_id, to_user_id, amount, kind`,
		transaction.FromUserID, transaction.ToUserID, transaction.Amount, transaction.Kind,
	)

	var dbTransaction domain.Transaction
	err := row.Scan(
		&dbTransaction.ID,
		&dbTransaction.CreatedAt,
		&dbTransaction.FromUserID,
		&dbTransaction.ToUserID,
		&dbTransaction.Amount,
		&dbTransaction.Kind,
	)
	if err != nil {
		return nil, convertErr(err, "creating transaction")
	}
	return &dbTransaction, nil
}

// GetByUserID возвращает не более limit транзакций юзера (как отправителя, так и получателя),
// отсортированных по дате создания по убыванию, вместе с юзернеймами сторон.
func (t *TransactionRepository) GetByUserID(
	ctx context.Context,
	userID int64,
	limit uint,
) ([]domain.TransactionWithUsernames, error) {
	limitArg, limitErr := safeConvertUintToInt32(limit)
	if limitErr != nil {
		return nil, convertErr(limitErr, "listing transactions of user %d", userID)
	}

	rows, err := t.conn.Query(ctx,
		`SELECT t.id, t.created_at, t.from_user_id, t.to_user_id, t.amount, t.kind,
		        COALESCE(fu.username, ''), COALESCE(tu.username, '')
		 FROM transactions t
		 LEFT JOIN users fu ON fu.id = t.from_user_id
		 LEFT JOIN users tu ON tu.id = t.to_user_id
		 WHERE t.from_user_id = $1 OR t.to_user_id = $1
		 ORDER BY t.created_at DESC, t.id DESC
		 LIMIT $2`,
		userID, limitArg,
	)
	if err != nil {
		return nil, convertErr(err, "listing transactions of user %d", userID)
	}
	defer rows.Close()

	var transactions []domain.TransactionWithUsernames
	for rows.Next() {
		var tr domain.TransactionWithUsernames
		scanErr := rows.Scan(
			&tr.ID,
			&tr.CreatedAt,
			&tr.FromUserID,
			&tr.ToUserID,
			&tr.Amount,
			&tr.Kind,
			&tr.FromUsername,
			&tr.ToUsername,
		)
		if scanErr != nil {
			return nil, convertErr(scanErr, "listing transactions of user %d", userID)
		}
		transactions = append(transactions, tr)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "listing transactions of user %d", userID)
	}
	return transactions, nil
}
