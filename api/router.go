package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gorilla/mux"
	"github.com/julender/julender/api/_responses"
	"github.com/julender/julender/api/_routers"
	"github.com/julender/julender/common/config"
	"github.com/julender/julender/common/rcontext"
	"github.com/julender/julender/util"
	"github.com/sirupsen/logrus"
)

func buildPrimaryRouter(cfg *config.MainRepoConfig, counter *_routers.RequestCounter) *mux.Router {
	router := mux.NewRouter()
	router.NotFoundHandler = makeRoute(notFoundFn, "not_found", cfg, counter)
	router.MethodNotAllowedHandler = makeRoute(methodNotAllowedFn, "method_not_allowed", cfg, counter)
	return router
}

func notFoundFn(r *http.Request, rctx rcontext.RequestContext) interface{} {
	return _responses.NotFoundError()
}

func methodNotAllowedFn(r *http.Request, rctx rcontext.RequestContext) interface{} {
	return _responses.MethodNotAllowed()
}

var optionsHandler = _routers.NewInstallHeadersRouter(http.HandlerFunc(finishCorsFn))

func finishCorsFn(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

type panicRouter struct {
	next http.Handler
}

func (p panicRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if i := recover(); i != nil {
			panicFn(w, r, i)
		}
	}()
	p.next.ServeHTTP(w, r)
}

func panicFn(w http.ResponseWriter, r *http.Request, i interface{}) {
	logrus.Errorf("Panic received on %s %s?%s: %v", r.Method, r.URL.Path, util.GetLogSafeQueryString(r), i)

	//goland:noinspection GoTypeAssertionOnErrors
	if e, ok := i.(error); ok {
		sentry.CaptureException(e)
	} else {
		sentry.CaptureException(util.PanicToError(i))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)

	b, err := json.Marshal(_responses.InternalServerError("unexpected error"))
	if err != nil {
		sentry.CaptureException(fmt.Errorf("error preparing InternalServerError: %v", err))
		logrus.Errorf("error preparing InternalServerError: %v", err)
		return
	}
	_, _ = w.Write(b)
}
