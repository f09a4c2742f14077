package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fsdevblog/etf-ledger/internal/domain"
	"github.com/fsdevblog/etf-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/etf-ledger/internal/transport/api/tokens"
	"github.com/fsdevblog/etf-ledger/pkg/uow"
)

const JWTTokenExpire = 1 * time.Hour

type UserService struct {
	uow            uow.UOW
	userRepo       UserRepository
	psswd          PasswordHasher
	jwtTokenSecret []byte
}

func NewUserService(u uow.UOW, jwtTokenSecret []byte, psswd PasswordHasher) (*UserService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr
	}
	return &UserService{
		uow:            u,
		userRepo:       userRepo,
		psswd:          psswd,
		jwtTokenSecret: jwtTokenSecret,
	}, nil
}

type RegisterUserArgs struct {
	Username string
	Password string
}

// Register создает юзера со стартовым балансом и сразу аутентифицирует его. Пароль хранится
// только в виде bcrypt хеша. Возвращает 3 значения: созданный юзер, jwt токен и ошибка.
// Если юзернейм занят, вернется ошибка domain.ErrDuplicateKey.
func (s *UserService) Register(ctx context.Context, args RegisterUserArgs) (*domain.User, string, error) {
	password, hashErr := s.psswd.HashPassword(args.Password)
	if hashErr != nil {
		return nil, "", fmt.Errorf("registering user: %s", hashErr.Error())
	}
	var user *domain.User
	var token string
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		var userErr, tokenErr error
		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}
		user, userErr = userRepo.CreateUser(c, repoargs.CreateUser{
			Username:          args.Username,
			EncryptedPassword: password,
		})
		if userErr != nil {
			return userErr //nolint:wrapcheck
		}

		token, tokenErr = tokens.GenerateUserJWT(user.ID, JWTTokenExpire, s.jwtTokenSecret)
		if tokenErr != nil {
			return tokenErr //nolint:wrapcheck
		}
		return nil
	})

	if txErr != nil {
		return nil, "", fmt.Errorf("registering user: %w", txErr)
	}
	return user, token, nil
}

type LoginUserArgs struct {
	Username string
	Password string
}

// Login аутентифицирует юзера по паре юзернейм/пароль. Возвращает юзера, jwt токен и ошибку.
// Ошибки: domain.ErrRecordNotFound если юзер не найден, domain.ErrPasswordMissMatch при
// неверном пароле.
func (s *UserService) Login(ctx context.Context, args LoginUserArgs) (*domain.User, string, error) {
	user, findErr := s.userRepo.FindUserByUsername(ctx, args.Username)
	if findErr != nil {
		return nil, "", fmt.Errorf("logging in user: %w", findErr)
	}

	if !s.psswd.ComparePassword(args.Password, user.EncryptedPassword) {
		return nil, "", fmt.Errorf("logging in user: %w", domain.ErrPasswordMissMatch)
	}

	token, tokenErr := tokens.GenerateUserJWT(user.ID, JWTTokenExpire, s.jwtTokenSecret)
	if tokenErr != nil {
		return nil, "", fmt.Errorf("logging in user: %s", tokenErr.Error())
	}
	return user, token, nil
}

// Profile возвращает юзера по его id. Ошибка domain.ErrRecordNotFound если запись не найдена.
func (s *UserService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return user, nil
}
