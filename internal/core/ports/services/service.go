package services

// ServiceContainer holds all service facades needed by the HTTP layer.
type ServiceContainer struct {
	Session   SessionSvcFacade
	Ledger    LedgerSvcFacade
	Reporting ReportingSvcFacade
	User      UserSvcFacade
}
