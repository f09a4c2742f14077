package service

import (
	"fmt"

	"github.com/fsdevblog/etf-ledger/internal/service/codes"
	"github.com/fsdevblog/etf-ledger/internal/service/psswd"
	"github.com/fsdevblog/etf-ledger/pkg/uow"
)

type AppServices struct {
	UserService   *UserService
	LedgerService *LedgerService
	AdminService  *AdminService
}

func Factory(unitOfWork uow.UOW, jwtSecret []byte) (*AppServices, error) {
	var hasher psswd.PasswordHash
	var codeGen codes.InviteCode

	userService, userServiceErr := NewUserService(unitOfWork, jwtSecret, hasher)
	if userServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", userServiceErr.Error())
	}

	ledgerService, ledgerServiceErr := NewLedgerService(unitOfWork, codeGen)
	if ledgerServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", ledgerServiceErr.Error())
	}

	adminService, adminServiceErr := NewAdminService(unitOfWork, codeGen)
	if adminServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", adminServiceErr.Error())
	}

	return &AppServices{
		UserService:   userService,
		LedgerService: ledgerService,
		AdminService:  adminService,
	}, nil
}
