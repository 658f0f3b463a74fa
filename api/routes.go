package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/julender/julender/api/_routers"
	"github.com/julender/julender/api/custom"
	v1 "github.com/julender/julender/api/v1"
	"github.com/julender/julender/common/config"
	"github.com/sirupsen/logrus"
)

func buildRoutes(cfg *config.MainRepoConfig, h *v1.Handlers) http.Handler {
	counter := &_routers.RequestCounter{}
	router := buildPrimaryRouter(cfg, counter)

	// Calendar
	register([]string{"GET", "HEAD"}, "/image/{day}", router, makeRoute(h.GetImage, "get_image", cfg, counter))
	register([]string{"GET"}, "/v1/calendar", router, makeRoute(h.GetCalendar, "get_calendar", cfg, counter))

	// Admin
	clearCacheRoute := makeRoute(_routers.RequireApiKey(h.ClearCache), "clear_cache", cfg, counter)
	register([]string{"DELETE"}, "/v1/cache", router, clearCacheRoute)
	register([]string{"DELETE"}, "/v1/cache/{cacheType}", router, clearCacheRoute)
	register([]string{"PUT"}, "/v1/images/{day}/{size}", router, makeRoute(_routers.RequireApiKey(h.BuildThumbnail), "build_thumbnail", cfg, counter))
	register([]string{"DELETE"}, "/v1/images/{day}/{size}", router, makeRoute(_routers.RequireApiKey(h.DeleteThumbnail), "delete_thumbnail", cfg, counter))

	// Top-level
	register([]string{"GET", "HEAD"}, "/healthz", router, makeRoute(custom.GetHealthz, "healthz", cfg, counter))
	register([]string{"GET"}, "/version", router, makeRoute(custom.GetVersion, "get_version", cfg, counter))

	return panicRouter{next: router}
}

func makeRoute(generator _routers.GeneratorFn, name string, cfg *config.MainRepoConfig, counter *_routers.RequestCounter) http.Handler {
	return _routers.NewInstallMetadataRouter(name, counter,
		_routers.NewInstallHeadersRouter(
			_routers.NewRemoteAddrRouter(cfg.General.TrustAnyForward,
				_routers.NewSessionRouter(cfg.Sessions,
					_routers.NewMetricsRequestRouter(
						_routers.NewRContextRouter(generator, cfg, _routers.NewMetricsResponseRouter(nil)),
					),
				),
			),
		))
}

func register(methods []string, path string, router *mux.Router, handler http.Handler) {
	router.Handle(path, handler).Methods(methods...)
	router.Handle(path, optionsHandler).Methods("OPTIONS")
	logrus.Debug("Registering route: ", methods, path)
}
