package services

import (
	portsrepo "github.com/SscSPs/banking_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/banking_app/internal/core/ports/services"
	"github.com/SscSPs/banking_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	identityProvider portssvc.IdentityProvider,
	publisher portssvc.EventPublisher,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Token = NewTokenService(cfg)
	container.User = NewUserService(repos.UserRepo, identityProvider, container.Token)
	container.Account = NewAccountService(
		repos.AccountRepo,
		repos.TransactionRepo,
		repos.TxManager,
		WithEventPublisher(publisher),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade = (*accountService)(nil)
	_ portssvc.UserSvcFacade    = (*userService)(nil)
	_ portssvc.TokenSvcFacade   = (*tokenService)(nil)
)
