package rcontext

import (
	"context"
	"net/http"

	"github.com/julender/julender/common"
	"github.com/julender/julender/common/config"
	"github.com/sirupsen/logrus"
)

func Initial(cfg *config.MainRepoConfig) RequestContext {
	return RequestContext{
		Context: context.Background(),
		Log:     logrus.WithFields(logrus.Fields{"nocontext": true}),
		Config:  cfg,
		Request: nil,
	}.populate()
}

type RequestContext struct {
	context.Context

	// These are also stored on the context object itself
	Log     *logrus.Entry          // jul.logger
	Config  *config.MainRepoConfig // jul.config
	Request *http.Request          // jul.request
}

func (c RequestContext) populate() RequestContext {
	c.Context = context.WithValue(c.Context, common.ContextLogger, c.Log)
	c.Context = context.WithValue(c.Context, common.ContextConfig, c.Config)
	c.Context = context.WithValue(c.Context, common.ContextRequest, c.Request)
	return c
}

func (c RequestContext) ReplaceLogger(log *logrus.Entry) RequestContext {
	ctx := context.WithValue(c.Context, common.ContextLogger, log)
	return RequestContext{
		Context: ctx,
		Log:     log,
		Config:  c.Config,
		Request: c.Request,
	}
}

func (c RequestContext) LogWithFields(fields logrus.Fields) RequestContext {
	return c.ReplaceLogger(c.Log.WithFields(fields))
}

func FromRequest(r *http.Request, log *logrus.Entry, cfg *config.MainRepoConfig) RequestContext {
	return RequestContext{
		Context: r.Context(),
		Log:     log,
		Config:  cfg,
		Request: r,
	}.populate()
}
