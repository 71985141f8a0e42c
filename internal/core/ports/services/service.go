package services

// ServiceContainer holds instances of all the application services.
// Handlers receive it from main.
type ServiceContainer struct {
	Balance  BalanceSvcFacade
	Account  AccountSvcFacade
	Transfer TransferSvcFacade
	History  HistorySvc
	Session  SessionSvc
	Customer CustomerSvcFacade
	Token    TokenSvc
}
