package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/bookkeeping-backend/internal/handlers"
	"github.com/GregMSThompson/bookkeeping-backend/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	lm := middleware.NewLoggerMiddleware(deps.Log)
	am := middleware.NewMiddleware(deps.Firebase)

	r.Use(chimiddleware.RequestID)
	r.Use(lm.LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(am.FirebaseAuth)

	ush := handlers.NewUserHandlers(deps)
	bah := handlers.NewBankAccountHandlers(deps)
	cah := handlers.NewCategoryHandlers(deps)
	trh := handlers.NewTransactionHandlers(deps)

	r.Mount("/users", ush.UserRoutes())
	r.Mount("/bank-accounts", bah.BankAccountRoutes())
	r.Mount("/categories", cah.CategoryRoutes())
	r.Mount("/transactions", trh.TransactionRoutes())
	return r
}
