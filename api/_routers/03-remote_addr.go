package _routers

import (
	"net"
	"net/http"
	"strings"

	"github.com/sebest/xff"
)

type RemoteAddrRouter struct {
	next            http.Handler
	trustAnyForward bool
}

func NewRemoteAddrRouter(trustAnyForward bool, next http.Handler) *RemoteAddrRouter {
	return &RemoteAddrRouter{next: next, trustAnyForward: trustAnyForward}
}

func (h *RemoteAddrRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var raddr string
	if h.trustAnyForward {
		raddr = strings.TrimSpace(strings.Split(r.Header.Get("X-Forwarded-For"), ",")[0])
	} else {
		raddr = xff.GetRemoteAddr(r)
	}
	if raddr == "" {
		raddr = r.RemoteAddr
	}
	host, _, err := net.SplitHostPort(raddr)
	if err != nil {
		// already a bare address
		host = raddr
	}
	r.RemoteAddr = host
	r = withLogger(r, GetLogger(r).WithField("remoteAddr", host))

	if h.next != nil {
		h.next.ServeHTTP(w, r)
	}
}
