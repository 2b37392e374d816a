package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"

	"github.com/nspcc-dev/jsarray/pkg/config"
	"go.uber.org/zap"
)

// Service serves metrics.
type Service struct {
	http        []*http.Server
	addrs       []net.Addr
	config      config.BasicService
	log         *zap.Logger
	serviceType string
	started     atomic.Bool
}

// NewService configures logger and returns new service instance.
func NewService(name string, httpServers []*http.Server, cfg config.BasicService, log *zap.Logger) *Service {
	return &Service{
		http:        httpServers,
		config:      cfg,
		serviceType: name,
		log:         log.With(zap.String("service", name)),
	}
}

// Start runs http service with the exposed endpoint on the configured port.
// Listeners are opened synchronously, requests are served in separate
// goroutines.
func (ms *Service) Start() error {
	if !ms.config.Enabled {
		ms.log.Info("service hasn't started since it's disabled")
		return nil
	}
	if !ms.started.CompareAndSwap(false, true) {
		ms.log.Info("service already started")
		return nil
	}
	for _, srv := range ms.http {
		ln, err := net.Listen("tcp", srv.Addr)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", srv.Addr, err)
		}
		ms.addrs = append(ms.addrs, ln.Addr())
		ms.log.Info("serving metrics", zap.Stringer("endpoint", ln.Addr()))
		go func(srv *http.Server) {
			err := srv.Serve(ln)
			if !errors.Is(err, http.ErrServerClosed) {
				ms.log.Error("failed to serve metrics", zap.String("endpoint", srv.Addr), zap.Error(err))
			}
		}(srv)
	}
	return nil
}

// Addrs returns addresses the service listens on, it's only meaningful after
// a successful Start.
func (ms *Service) Addrs() []net.Addr {
	return ms.addrs
}

// ShutDown stops the service.
func (ms *Service) ShutDown() {
	if !ms.config.Enabled || !ms.started.CompareAndSwap(true, false) {
		return
	}
	for _, srv := range ms.http {
		ms.log.Info("shutting down service", zap.String("endpoint", srv.Addr))
		err := srv.Shutdown(context.Background())
		if err != nil {
			ms.log.Error("can't shut service down", zap.String("endpoint", srv.Addr), zap.Error(err))
		}
	}
	_ = ms.log.Sync()
}
