// Package di provides dependency injection configuration for the StaffPicks server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/staffpicks/staffpicks-server/internal/di/providers"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)
	do.Provide(injector, providers.ProvideSessionKey)
	do.Provide(injector, providers.ProvideSessionService)

	// Storage
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideSearchIndex)

	// External clients
	do.Provide(injector, providers.ProvideISBNClient)
	do.Provide(injector, providers.ProvideUploader)

	// Business services
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideCompanyService)
	do.Provide(injector, providers.ProvideStoreService)
	do.Provide(injector, providers.ProvideUserService)
	do.Provide(injector, providers.ProvideBookService)
	do.Provide(injector, providers.ProvideListService)
	do.Provide(injector, providers.ProvideProfileService)
	do.Provide(injector, providers.ProvideSearchService)

	// HTTP server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap eagerly constructs the server and its dependency graph.
func Bootstrap(injector do.Injector) error {
	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}

	providers.TriggerSearchRebuildIfNeeded(injector)

	return nil
}
