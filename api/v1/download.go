package v1

import (
	"bytes"
	"io"
	"net/http"

	"github.com/julender/julender/api/_responses"
	"github.com/julender/julender/api/_routers"
	"github.com/julender/julender/common/rcontext"
	"github.com/julender/julender/controllers/download_controller"
	"github.com/sirupsen/logrus"
)

func (h *Handlers) GetImage(r *http.Request, rctx rcontext.RequestContext) interface{} {
	req := download_controller.Request{
		Day:         _routers.GetParam("day", r),
		Size:        r.URL.Query().Get("size"),
		Disposition: r.URL.Query().Get("disposition"),
		SessionId:   _routers.GetSessionId(r),
	}

	rctx = rctx.LogWithFields(logrus.Fields{
		"day":         req.Day,
		"size":        req.Size,
		"disposition": req.Disposition,
	})

	img, err := h.Downloads.GetImage(rctx, req)
	if err != nil {
		return err
	}

	return &_responses.DownloadResponse{
		ContentType: img.ContentType,
		Filename:    img.Filename,
		SizeBytes:   img.SizeBytes,
		Data:        io.NopCloser(bytes.NewReader(img.Data)),
	}
}
