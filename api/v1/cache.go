package v1

import (
	"net/http"

	"github.com/julender/julender/api/_responses"
	"github.com/julender/julender/api/_routers"
	"github.com/julender/julender/common/rcontext"
	"github.com/sirupsen/logrus"
)

func (h *Handlers) ClearCache(r *http.Request, rctx rcontext.RequestContext) interface{} {
	cacheType := _routers.GetParam("cacheType", r)
	rctx = rctx.LogWithFields(logrus.Fields{"cacheType": cacheType})

	result, err := h.Maintenance.ClearCaches(rctx, cacheType)
	if err != nil {
		return err
	}
	return &_responses.DoNotCacheResponse{Payload: result}
}
