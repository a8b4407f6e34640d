package utils

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	serverReadTimeout  = 60 * time.Second
	serverWriteTimeout = 60 * time.Second
	shutdownGrace      = 30 * time.Second

	// A child spawned for zero-downtime restart inherits the listening
	// socket as fd 3 and finds this variable in its environment.
	gracefulEnvKey = "MUFRADAT_GRACEFUL"
	gracefulFD     = 3
)

// graceServer serves HTTP with zero-downtime restart: SIGUSR2 forks a fresh
// process that inherits the listener, then the old process drains and exits.
// SIGTERM and SIGINT drain without replacement.
type graceServer struct {
	httpServer *http.Server
	listener   net.Listener
	inherited  bool
	signals    chan os.Signal
	drained    chan struct{}
}

// GraceServer listens on addr and serves handler until the process is asked
// to stop. It blocks for the lifetime of the server.
func GraceServer(addr string, handler http.Handler) error {
	srv := &graceServer{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  serverReadTimeout,
			WriteTimeout: serverWriteTimeout,
		},
		inherited: os.Getenv(gracefulEnvKey) != "",
		signals:   make(chan os.Signal, 1),
		drained:   make(chan struct{}),
	}

	ln, err := srv.listen(addr)
	if err != nil {
		return err
	}
	srv.listener = ln

	go srv.watchSignals()
	err = srv.httpServer.Serve(ln)
	<-srv.drained
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *graceServer) listen(addr string) (net.Listener, error) {
	if s.inherited {
		ln, err := net.FileListener(os.NewFile(gracefulFD, ""))
		if err != nil {
			return nil, fmt.Errorf("inherit listener: %w", err)
		}
		return ln, nil
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	return ln, nil
}

func (s *graceServer) watchSignals() {
	signal.Notify(s.signals, syscall.SIGTERM, syscall.SIGINT, syscall.SIGUSR2)

	for sig := range s.signals {
		switch sig {
		case syscall.SIGTERM, syscall.SIGINT:
			Sugar.Infof("received %s, draining connections", sig)
			s.drain()
			return
		case syscall.SIGUSR2:
			pid, err := s.forkChild()
			if err != nil {
				Sugar.Errorf("restart failed, keeping current process: %v", err)
				continue
			}
			Sugar.Infof("restart: handed listener to pid %d, draining old process", pid)
			s.drain()
			return
		}
	}
}

func (s *graceServer) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		Sugar.Errorf("shutdown: %v", err)
	}
	close(s.drained)
}

func (s *graceServer) forkChild() (int, error) {
	tcpLn, ok := s.listener.(*net.TCPListener)
	if !ok {
		return 0, fmt.Errorf("listener %T cannot be inherited", s.listener)
	}
	file, err := tcpLn.File()
	if err != nil {
		return 0, fmt.Errorf("dup listener fd: %w", err)
	}

	env := []string{gracefulEnvKey + "=1"}
	for _, e := range os.Environ() {
		if e != gracefulEnvKey+"=1" {
			env = append(env, e)
		}
	}

	return syscall.ForkExec(os.Args[0], os.Args, &syscall.ProcAttr{
		Env:   env,
		Files: []uintptr{os.Stdin.Fd(), os.Stdout.Fd(), os.Stderr.Fd(), file.Fd()},
	})
}
