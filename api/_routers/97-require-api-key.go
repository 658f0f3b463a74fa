package _routers

import (
	"crypto/subtle"
	"net/http"

	"github.com/julender/julender/common"
	"github.com/julender/julender/common/rcontext"
	"github.com/julender/julender/util"
	"github.com/sirupsen/logrus"
)

// RequireApiKey only calls the generator when the request carries the configured admin key. No key
// configured means nobody gets in.
func RequireApiKey(generator GeneratorFn) GeneratorFn {
	return func(r *http.Request, ctx rcontext.RequestContext) interface{} {
		expected := ""
		if ctx.Config != nil {
			expected = ctx.Config.Admin.ApiKey
		}
		if expected == "" {
			ctx.Log.Warn("Rejecting admin request: no api key is configured")
			return common.ErrBadApiKey
		}

		provided := util.GetApiKeyFromRequest(r)
		if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			ctx.Log.Info("Rejecting admin request: bad or missing api key")
			return common.ErrBadApiKey
		}

		return generator(r, ctx.LogWithFields(logrus.Fields{"apiKeyAuth": true}))
	}
}
