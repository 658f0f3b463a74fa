package common

type JulContextKey string

const (
	ContextLogger     JulContextKey = "jul.logger"
	ContextAction     JulContextKey = "jul.action"
	ContextRequest    JulContextKey = "jul.request"
	ContextRequestId  JulContextKey = "jul.request_id"
	ContextConfig     JulContextKey = "jul.config"
	ContextSessionId  JulContextKey = "jul.session_id"
	ContextStatusCode JulContextKey = "jul.status_code"
)
