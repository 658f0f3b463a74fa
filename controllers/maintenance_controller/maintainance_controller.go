package maintenance_controller

import (
	"fmt"
	"os"
	"strings"

	"github.com/julender/julender/common"
	"github.com/julender/julender/common/config"
	"github.com/julender/julender/common/rcontext"
	"github.com/julender/julender/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

type CacheDomain int

const (
	DomainImage CacheDomain = iota
	DomainFrontend
	DomainContainer
	DomainAll
)

const StatusSuccess = "success"
const StatusError = "error"

func ParseCacheDomain(token string) (CacheDomain, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "", "all":
		return DomainAll, nil
	case "image":
		return DomainImage, nil
	case "frontend":
		return DomainFrontend, nil
	case "container":
		return DomainContainer, nil
	default:
		return DomainAll, fmt.Errorf("%w: %q", common.ErrUnknownCacheDomain, token)
	}
}

func (d CacheDomain) String() string {
	switch d {
	case DomainImage:
		return "image"
	case DomainFrontend:
		return "frontend"
	case DomainContainer:
		return "container"
	case DomainAll:
		return "all"
	default:
		return fmt.Sprintf("CacheDomain(%d)", int(d))
	}
}

// Expand lists the concrete domains covered by d.
func (d CacheDomain) Expand() []CacheDomain {
	if d == DomainAll {
		return []CacheDomain{DomainImage, DomainFrontend, DomainContainer}
	}
	return []CacheDomain{d}
}

type Controller struct {
	caches config.CachesConfig
}

func New(caches config.CachesConfig) *Controller {
	return &Controller{caches: caches}
}

func (c *Controller) directory(d CacheDomain) string {
	switch d {
	case DomainImage:
		return c.caches.ImagePath
	case DomainFrontend:
		return c.caches.FrontendPath
	case DomainContainer:
		return c.caches.ContainerPath
	default:
		return ""
	}
}

// ClearCaches removes the directory of every domain named by the token. One domain failing does not
// stop the others; each gets its own status in the result.
func (c *Controller) ClearCaches(ctx rcontext.RequestContext, token string) (map[string]string, error) {
	domain, err := ParseCacheDomain(token)
	if err != nil {
		return nil, err
	}

	result := make(map[string]string)
	for _, d := range domain.Expand() {
		status := c.clear(ctx, d)
		result[d.String()] = status
		metrics.CachesCleared.With(prometheus.Labels{"domain": d.String(), "status": status}).Inc()
	}
	return result, nil
}

func (c *Controller) clear(ctx rcontext.RequestContext, d CacheDomain) string {
	dir := c.directory(d)
	log := ctx.Log.WithFields(logrus.Fields{"cacheDomain": d.String(), "directory": dir})
	if dir == "" {
		log.Warn("No directory configured for cache domain")
		return StatusSuccess
	}

	if err := os.RemoveAll(dir); err != nil {
		log.Error("Error clearing cache: ", err)
	}
	if _, err := os.Stat(dir); err == nil || !os.IsNotExist(err) {
		return StatusError
	}
	log.Info("Cache cleared")
	return StatusSuccess
}
