package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/etf-ledger/internal/transport/api/middlewares"
)

const (
	DefaultServiceTimeout = 3 * time.Second
)

const (
	RouteGroup        = "/api"
	RegisterRoute     = "/register"
	LoginRoute        = "/login"
	ProfileRoute      = "/profile"
	UpgradeVipRoute   = "/upgrade-vip"
	TransferRoute     = "/transfer"
	TransactionsRoute = "/transactions"
	HealthRoute       = "/health"

	AdminRouteGroup        = "/admin"
	AdminAddBalanceRoute   = "/add-balance"
	AdminCreateInviteRoute = "/create-invite"
)

type RouterArgs struct {
	Logger        *logrus.Logger
	UserService   UserServicer
	LedgerService LedgerServicer
	AdminService  AdminServicer
	JWTSecretKey  []byte
	AdminToken    string
}

func New(args RouterArgs) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.CORS())
	r.Use(middlewares.Errors())

	authHandler := NewAuthHandler(args.UserService)
	ledgerHandler := NewLedgerHandler(args.LedgerService)
	adminHandler := NewAdminHandler(args.AdminService)

	api := r.Group(RouteGroup)

	api.GET(HealthRoute, Health)
	api.POST(RegisterRoute, authHandler.Register)
	api.POST(LoginRoute, authHandler.Login)

	admin := api.Group(AdminRouteGroup, middlewares.AdminRequired(args.AdminToken))
	admin.POST(AdminAddBalanceRoute, adminHandler.AddBalance)
	admin.POST(AdminCreateInviteRoute, adminHandler.CreateInvite)

	api.Use(middlewares.AuthRequired(args.JWTSecretKey))
	// ниже все роуты группы требуют авторизованного пользователя.
	api.GET(ProfileRoute, authHandler.Profile)
	api.POST(UpgradeVipRoute, ledgerHandler.UpgradeVip)
	api.POST(TransferRoute, ledgerHandler.Transfer)
	api.GET(TransactionsRoute, ledgerHandler.Transactions)
	return r
}
