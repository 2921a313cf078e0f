package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/GregMSThompson/bookkeeping-backend/internal/bootstrap"
	"github.com/GregMSThompson/bookkeeping-backend/internal/config"
	"github.com/GregMSThompson/bookkeeping-backend/internal/handlers"
	"github.com/GregMSThompson/bookkeeping-backend/internal/response"
	"github.com/GregMSThompson/bookkeeping-backend/internal/router"
	"github.com/GregMSThompson/bookkeeping-backend/internal/services"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// a missing .env is fine; the environment may already be set
	_ = godotenv.Load()

	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// stores
	stores := bs.Stores

	// ownership validators
	bankAccountOwnership := services.NewBankAccountOwnershipValidator(stores.BankAccounts)
	categoryOwnership := services.NewCategoryOwnershipValidator(stores.Categories)
	transactionOwnership := services.NewTransactionOwnershipValidator(stores.Transactions)

	// services
	userv := services.NewUserService(stores.Users)
	baserv := services.NewBankAccountService(stores.BankAccounts, bankAccountOwnership)
	caserv := services.NewCategoryService(stores.Categories, categoryOwnership)
	trserv := services.NewTransactionService(stores.Transactions, bankAccountOwnership, categoryOwnership, transactionOwnership)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Firebase = bs.Firebase
	deps.UserSvc = userv
	deps.BankAccountSvc = baserv
	deps.CategorySvc = caserv
	deps.TransactionSvc = trserv

	// router
	r := router.NewRouter(deps)
	bs.Log.Info("listening", "port", cfg.Port)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
