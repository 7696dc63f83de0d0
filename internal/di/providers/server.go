package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/staffpicks/staffpicks-server/internal/api"
	"github.com/staffpicks/staffpicks-server/internal/config"
	"github.com/staffpicks/staffpicks-server/internal/logger"
	"github.com/staffpicks/staffpicks-server/internal/media/images"
	"github.com/staffpicks/staffpicks-server/internal/metadata/isbndb"
	"github.com/staffpicks/staffpicks-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	apiServer *api.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := h.Server.Shutdown(ctx)
	h.apiServer.Close()
	return err
}

// ProvideHTTPServer provides the HTTP server and starts it.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	uploader := do.MustInvoke[*images.Uploader](i)
	isbnClient := do.MustInvoke[*isbndb.Client](i)

	services := &api.Services{
		Auth:    do.MustInvoke[*service.AuthService](i),
		Company: do.MustInvoke[*service.CompanyService](i),
		Store:   do.MustInvoke[*service.StoreService](i),
		User:    do.MustInvoke[*service.UserService](i),
		Book:    do.MustInvoke[*service.BookService](i),
		List:    do.MustInvoke[*service.ListService](i),
		Profile: do.MustInvoke[*service.ProfileService](i),
		Search:  do.MustInvoke[*service.SearchService](i),
	}

	handler := api.NewServer(cfg, storeHandle.Store, services, uploader, isbnClient, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv, apiServer: handler}, nil
}
