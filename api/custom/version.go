package custom

import (
	"net/http"

	"github.com/julender/julender/api/_responses"
	"github.com/julender/julender/common/rcontext"
	"github.com/julender/julender/common/version"
)

func GetVersion(r *http.Request, rctx rcontext.RequestContext) interface{} {
	return &_responses.DoNotCacheResponse{
		Payload: map[string]interface{}{
			"Version":   version.Version,
			"GitCommit": version.GitCommit,
		},
	}
}
