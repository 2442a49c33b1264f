package services

import (
	portsrepo "github.com/playware/game_lounge_app/internal/core/ports/repositories"
	portssvc "github.com/playware/game_lounge_app/internal/core/ports/services"
)

// NewContainer creates a service container with properly initialized dependencies.
func NewContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Session:   NewSessionService(repos.SessionRepo),
		Ledger:    NewLedgerService(repos.LedgerRepo),
		Reporting: NewReportingService(repos.ReportingRepo, repos.LedgerRepo),
		User:      NewUserService(repos.UserRepo),
	}
}
