package services

import (
	portsrepo "github.com/SscSPs/retail_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/retail_ledger/internal/core/ports/services"
	"github.com/SscSPs/retail_ledger/internal/platform/config"
	"github.com/SscSPs/retail_ledger/internal/platform/events"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// publisher and locker may be nil.
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	publisher events.Publisher,
	locker portssvc.AccountLocker,
) *portssvc.ServiceContainer {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	refs := NewReferenceGenerator(nil, nil)

	container := &portssvc.ServiceContainer{}

	balanceSvc := NewBalanceService(repos.BalanceRepo)
	container.Balance = balanceSvc

	// Transfers only need to read accounts; the account service funds new accounts through them.
	transferSvc := NewTransferService(
		repos.TransactionRepo,
		repos.AccountRepo,
		balanceSvc,
		WithTransferEvents(publisher),
		WithTransferReferences(refs),
	)
	container.Transfer = transferSvc

	container.Account = NewAccountService(
		repos.AccountRepo,
		balanceSvc,
		transferSvc,
		WithAccountEvents(publisher),
		WithAccountNumbers(refs),
	)

	container.History = NewHistoryService(repos.TransactionRepo)

	var sessionOpts []SessionServiceOption
	if locker != nil {
		sessionOpts = append(sessionOpts, WithAccountLocker(locker))
	}
	container.Session = NewSessionService(
		container.Account,
		balanceSvc,
		transferSvc,
		container.History,
		sessionOpts...,
	)

	container.Customer = NewCustomerService(repos.CustomerRepo)
	container.Token = NewTokenService(cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)

	return container
}
