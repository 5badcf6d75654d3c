package services

import (
	portsrepo "github.com/granaapp/grana_backend/internal/core/ports/repositories"
	portssvc "github.com/granaapp/grana_backend/internal/core/ports/services"
	"github.com/granaapp/grana_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Token = NewTokenService(cfg)
	container.User = NewUserService(repos.UserRepo, container.Token)

	container.Account = NewAccountService(repos.AccountRepo, repos.TransactionRepo)
	container.Card = NewCardService(repos.CardRepo, repos.InvoiceRepo, repos.TransactionRepo)
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Tag = NewTagService(repos.TagRepo)
	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		repos.AccountRepo,
		repos.CardRepo,
		repos.CategoryRepo,
		repos.TagRepo,
	)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.TransactionRepo, container.Account)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.UserSvcFacade        = (*userService)(nil)
	_ portssvc.TokenSvcFacade       = (*tokenService)(nil)
	_ portssvc.AccountSvcFacade     = (*accountService)(nil)
	_ portssvc.CardSvcFacade        = (*cardService)(nil)
	_ portssvc.CategorySvcFacade    = (*categoryService)(nil)
	_ portssvc.TagSvcFacade         = (*tagService)(nil)
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
	_ portssvc.ReportingSvcFacade   = (*reportingService)(nil)
)
