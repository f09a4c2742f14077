package pgrepo

import (
	"context"

	"github.com/fsdevblog/etf-ledger/internal/domain"
	"github.com/fsdevblog/etf-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/etf-ledger/pkg/uow"
)

type InviteCodeRepository struct {
	conn uow.DBTX
}

func NewInviteCodeRepository(conn uow.DBTX) *InviteCodeRepository {
	return &InviteCodeRepository{conn: conn}
}

// Create сохраняет инвайт-код. Уникальность кода обеспечивает уникальный индекс: на коллизии
// вернется domain.ErrDuplicateKey и вызывающая сторона сгенерирует новый код.
func (i *InviteCodeRepository) Create(
	ctx context.Context,
	code repoargs.InviteCodeCreate,
) (*domain.InviteCode, error) {
	row := i.conn.QueryRow(ctx,
		`INSERT INTO invite_codes (code, created_by) VALUES ($1, $2)
		 RETURNING id, created_at, code, created_by, used_by, is_used`,
		code.Code, code.CreatedBy,
	)

	var dbCode domain.InviteCode
	err := row.Scan(
		&dbCode.ID,
		&dbCode.CreatedAt,
		&dbCode.Code,
		&dbCode.CreatedBy,
		&dbCode.UsedBy,
		&dbCode.IsUsed,
	)
	if err != nil {
		return nil, convertErr(err, "creating invite code")
	}
	return &dbCode, nil
}
