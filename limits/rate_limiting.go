package limits

import (
	"encoding/json"
	"time"

	"github.com/didip/tollbooth"
	"github.com/didip/tollbooth/limiter"
	"github.com/julender/julender/api/_responses"
	"github.com/julender/julender/common/config"
)

func NewRequestLimiter(conf config.RateLimitConfig) *limiter.Limiter {
	requestLimiter := tollbooth.NewLimiter(conf.RequestsPerSecond, nil)
	requestLimiter.SetIPLookups([]string{"X-Forwarded-For", "X-Real-IP", "RemoteAddr"})
	requestLimiter.SetTokenBucketExpirationTTL(time.Hour)
	requestLimiter.SetBurst(conf.BurstCount)

	b, _ := json.Marshal(_responses.RateLimitReached())
	requestLimiter.SetMessage(string(b))
	requestLimiter.SetMessageContentType("application/json")

	return requestLimiter
}
