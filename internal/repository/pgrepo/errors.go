package pgrepo

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fsdevblog/etf-ledger/internal/domain"
)

const (
	uniqueViolationCode = "23505"
	checkViolationCode  = "23514"
)

// convertErr приводит ошибку pgx к бизнес-ошибке слоя репозитория:
//   - pgx.ErrNoRows -> domain.ErrRecordNotFound;
//   - нарушение уникального ключа -> domain.ErrDuplicateKey;
//   - нарушение CHECK ограничения (balance >= 0) -> domain.ErrNotEnoughBalance;
//   - всё остальное -> domain.ErrUnknown с оригинальным сообщением.
func convertErr(err error, format string, formatArgs ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, formatArgs...)

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("[repository/%s] %w", msg, domain.ErrRecordNotFound)
	}

	errType := domain.ErrUnknown
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			errType = domain.ErrDuplicateKey
		case checkViolationCode:
			errType = domain.ErrNotEnoughBalance
		}
	}

	return fmt.Errorf("[repository/%s] %w: %s", msg, errType, err.Error())
}
