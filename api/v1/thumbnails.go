package v1

import (
	"errors"
	"net/http"

	"github.com/julender/julender/api/_responses"
	"github.com/julender/julender/api/_routers"
	"github.com/julender/julender/common"
	"github.com/julender/julender/common/rcontext"
	"github.com/sirupsen/logrus"
)

type ThumbnailResponse struct {
	Day    string `json:"day"`
	Size   string `json:"size"`
	Status string `json:"status"`
}

func (h *Handlers) BuildThumbnail(r *http.Request, rctx rcontext.RequestContext) interface{} {
	day := _routers.GetParam("day", r)
	size := _routers.GetParam("size", r)
	rctx = rctx.LogWithFields(logrus.Fields{"day": day, "size": size})

	if err := h.Thumbnails.BuildThumbnail(rctx, day, size); err != nil {
		return err
	}
	return &_responses.DoNotCacheResponse{
		Payload: &ThumbnailResponse{Day: day, Size: size, Status: "built"},
	}
}

func (h *Handlers) DeleteThumbnail(r *http.Request, rctx rcontext.RequestContext) interface{} {
	day := _routers.GetParam("day", r)
	size := _routers.GetParam("size", r)
	rctx = rctx.LogWithFields(logrus.Fields{"day": day, "size": size})

	err := h.Thumbnails.DeleteThumbnail(rctx, day, size)
	if errors.Is(err, common.ErrThumbnailNotFound) {
		return &_responses.NoContentResponse{}
	}
	if err != nil {
		return err
	}
	return &_responses.DoNotCacheResponse{
		Payload: &ThumbnailResponse{Day: day, Size: size, Status: "deleted"},
	}
}
