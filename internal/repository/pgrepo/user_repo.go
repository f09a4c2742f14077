package pgrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/etf-ledger/internal/domain"
	"github.com/fsdevblog/etf-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/etf-ledger/pkg/uow"
)

const userColumns = `id, created_at, updated_at, username, encrypted_password, balance, is_vip, COALESCE(invite_code, '')`

type UserRepository struct {
	conn uow.DBTX
}

func NewUserRepository(conn uow.DBTX) *UserRepository {
	return &UserRepository{conn: conn}
}

// CreateUser создает юзера со стартовым балансом (DEFAULT 20 в схеме). В случае конфликта
// юзернейма возвращает ошибку domain.ErrDuplicateKey.
func (u *UserRepository) CreateUser(ctx context.Context, user repoargs.CreateUser) (*domain.User, error) {
	row := u.conn.QueryRow(ctx,
		`INSERT INTO users (username, encrypted_password) VALUES ($1, $2) RETURNING `+userColumns,
		user.Username, user.EncryptedPassword,
	)
	dbUser, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "creating user")
	}
	return dbUser, nil
}

// FindUserByUsername ищет юзера по юзернейму. Возвращает domain.ErrRecordNotFound если запись
// не найдена.
func (u *UserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := u.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	dbUser, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by username %s", username)
	}
	return dbUser, nil
}

func (u *UserRepository) FindUserByID(ctx context.Context, id int64) (*domain.User, error) {
	row := u.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	dbUser, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by id %d", id)
	}
	return dbUser, nil
}

// DebitBalance списывает amount с баланса юзера. Проверка баланса и списание выполняются одним
// условным UPDATE, поэтому конкурентные списания с одной строки сериализуются блокировкой строки
// и баланс никогда не уходит в минус. Если покрытия не хватает, вернется
// domain.ErrNotEnoughBalance - существование юзера вызывающая сторона проверяет заранее.
func (u *UserRepository) DebitBalance(ctx context.Context, id int64, amount decimal.Decimal) (*domain.User, error) {
	row := u.conn.QueryRow(ctx,
		`UPDATE users SET balance = balance - $2, updated_at = now()
		 WHERE id = $1 AND balance >= $2
		 RETURNING `+userColumns,
		id, amount,
	)
	dbUser, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("[repository/debiting balance of user %d] %w", id, domain.ErrNotEnoughBalance)
		}
		return nil, convertErr(err, "debiting balance of user %d", id)
	}
	return dbUser, nil
}

// CreditBalance зачисляет amount на баланс юзера.
func (u *UserRepository) CreditBalance(ctx context.Context, id int64, amount decimal.Decimal) (*domain.User, error) {
	row := u.conn.QueryRow(ctx,
		`UPDATE users SET balance = balance + $2, updated_at = now() WHERE id = $1 RETURNING `+userColumns,
		id, amount,
	)
	dbUser, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "crediting balance of user %d", id)
	}
	return dbUser, nil
}

// CreditBalanceByUsername зачисляет amount юзеру с указанным юзернеймом и возвращает число
// затронутых строк. Если юзера нет - domain.ErrRecordNotFound.
func (u *UserRepository) CreditBalanceByUsername(ctx context.Context, username string, amount decimal.Decimal) (int64, error) {
	tag, err := u.conn.Exec(ctx,
		`UPDATE users SET balance = balance + $2, updated_at = now() WHERE username = $1`,
		username, amount,
	)
	if err != nil {
		return 0, convertErr(err, "crediting balance of user %s", username)
	}
	if tag.RowsAffected() == 0 {
		return 0, fmt.Errorf("[repository/crediting balance of user %s] %w", username, domain.ErrRecordNotFound)
	}
	return tag.RowsAffected(), nil
}

// MarkVip переводит юзера в VIP и записывает инвайт-код. Переход односторонний: если юзер уже
// VIP, вернется domain.ErrAlreadyVip, флаг и код не изменятся.
func (u *UserRepository) MarkVip(ctx context.Context, id int64, inviteCode string) (*domain.User, error) {
	row := u.conn.QueryRow(ctx,
		`UPDATE users SET is_vip = TRUE, invite_code = $2, updated_at = now()
		 WHERE id = $1 AND is_vip = FALSE
		 RETURNING `+userColumns,
		id, inviteCode,
	)
	dbUser, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("[repository/marking user %d vip] %w", id, domain.ErrAlreadyVip)
		}
		return nil, convertErr(err, "marking user %d vip", id)
	}
	return dbUser, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Username,
		&user.EncryptedPassword,
		&user.Balance,
		&user.IsVip,
		&user.InviteCode,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &user, nil
}
