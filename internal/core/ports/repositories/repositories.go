package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// Together they form the Ledger Store. Implementations must serialise
// conflicting writes to the same row; the services do not lock.
type RepositoryProvider struct {
	AccountRepo     AccountRepositoryFacade
	BalanceRepo     BalanceRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
	CustomerRepo    CustomerRepositoryFacade
}
