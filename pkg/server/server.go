package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net"
	"os/exec"
	"sync"
	"time"

	"github.com/creack/pty"
	"github.com/gliderlabs/ssh"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	gossh "golang.org/x/crypto/ssh"
)

const ServerIdleTimeout = 5 * time.Minute

var ErrNoListenAddress = errors.New("ssh server listen address must be specified")

// Server hosts the game over ssh. Every session runs its own game binary
// on a pty, sessions share nothing.
type Server struct {
	ListenAddress string
	Binary        string
	// HostKey is a private key file, a key is generated when empty
	HostKey     string
	IdleTimeout time.Duration

	Metrics *Metrics
	Log     logrus.FieldLogger

	srv *ssh.Server
}

func (s *Server) log() logrus.FieldLogger {
	if s.Log == nil {
		l := logrus.New()
		l.SetOutput(ioutil.Discard)
		s.Log = l
	}
	return s.Log
}

func (s *Server) init() error {
	if s.srv != nil {
		return nil
	}

	idle := s.IdleTimeout
	if idle == 0 {
		idle = ServerIdleTimeout
	}

	srv := &ssh.Server{
		Addr:        s.ListenAddress,
		IdleTimeout: idle,
		Handler:     s.handle,
		PtyCallback: func(ctx ssh.Context, pty ssh.Pty) bool {
			return true
		},
		PublicKeyHandler: func(ctx ssh.Context, key ssh.PublicKey) bool {
			return true
		},
		PasswordHandler: func(ctx ssh.Context, password string) bool {
			return true
		},
		KeyboardInteractiveHandler: func(ctx ssh.Context, challenger gossh.KeyboardInteractiveChallenge) bool {
			return true
		},
	}

	if s.HostKey != "" {
		if err := srv.SetOption(ssh.HostKeyFile(s.HostKey)); err != nil {
			return fmt.Errorf("host key %s: %w", s.HostKey, err)
		}
	}

	s.srv = srv
	return nil
}

// ListenAndServe blocks until the server is shut down
func (s *Server) ListenAndServe() error {
	if s.ListenAddress == "" {
		return ErrNoListenAddress
	}
	if err := s.init(); err != nil {
		return err
	}

	s.log().WithField("addr", s.ListenAddress).Info("ssh server listening")
	return s.srv.ListenAndServe()
}

// Serve accepts sessions on l
func (s *Server) Serve(l net.Listener) error {
	if err := s.init(); err != nil {
		return err
	}

	s.log().WithField("addr", l.Addr().String()).Info("ssh server listening")
	return s.srv.Serve(l)
}

// Shutdown stops accepting sessions and waits for open ones until ctx is
// done
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func (s *Server) record(result string, started time.Time) {
	if s.Metrics == nil {
		return
	}

	s.Metrics.SessionsTotal.WithLabelValues(result).Inc()
	if result == ResultPlayed {
		s.Metrics.SessionDuration.Observe(time.Since(started).Seconds())
	}
}

func (s *Server) handle(sess ssh.Session) {
	started := time.Now()
	nick := Nickname(sess.User())
	log := s.log().WithFields(logrus.Fields{
		"session": uuid.New().String(),
		"user":    sess.User(),
		"nick":    nick,
		"remote":  sess.RemoteAddr().String(),
	})

	ptyReq, winCh, isPty := sess.Pty()
	if !isPty {
		io.WriteString(sess, "failed to start termtris: non-interactive terminals are not supported\n")

		log.Info("rejected session without pty")
		s.record(ResultRejected, started)
		sess.Exit(1)
		return
	}

	if s.Metrics != nil {
		s.Metrics.SessionsActive.Inc()
		defer s.Metrics.SessionsActive.Dec()
	}

	cmdCtx, cancelCmd := context.WithCancel(sess.Context())
	defer cancelCmd()

	cmd := exec.CommandContext(cmdCtx, s.Binary, "--nick", nick)
	cmd.Env = append(sess.Environ(), fmt.Sprintf("TERM=%s", ptyReq.Term))

	f, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(ptyReq.Window.Height),
		Cols: uint16(ptyReq.Window.Width),
	})
	if err != nil {
		io.WriteString(sess, fmt.Sprintf("failed to initialize pseudo-terminal: %s\n", err))

		log.WithError(err).Error("failed to start game")
		s.record(ResultFailed, started)
		sess.Exit(1)
		return
	}
	defer f.Close()

	log.Info("session started")

	// The resize loop must be gone before f is closed, winCh outlives the
	// handler
	resizeDone := make(chan struct{})
	var resizing sync.WaitGroup
	resizing.Add(1)
	defer func() {
		close(resizeDone)
		resizing.Wait()
	}()

	go func() {
		defer resizing.Done()
		for {
			select {
			case win, ok := <-winCh:
				if !ok {
					return
				}
				if err := pty.Setsize(f, &pty.Winsize{Rows: uint16(win.Height), Cols: uint16(win.Width)}); err != nil {
					log.WithError(err).Debug("failed to resize pty")
				}
			case <-resizeDone:
				return
			}
		}
	}()

	go func() {
		io.Copy(f, sess)
	}()
	io.Copy(sess, f)

	cancelCmd()
	err = cmd.Wait()

	s.record(ResultPlayed, started)
	log.WithField("duration", time.Since(started).String()).Info("session ended")

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		sess.Exit(exitErr.ExitCode())
	}
}
