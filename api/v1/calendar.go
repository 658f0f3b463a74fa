package v1

import (
	"net/http"

	"github.com/julender/julender/api/_responses"
	"github.com/julender/julender/api/_routers"
	"github.com/julender/julender/common/rcontext"
)

func (h *Handlers) GetCalendar(r *http.Request, rctx rcontext.RequestContext) interface{} {
	calendar, err := h.Calendar.GetCalendar(rctx, _routers.GetSessionId(r))
	if err != nil {
		return err
	}
	return &_responses.DoNotCacheResponse{Payload: calendar}
}
