package server

import (
	"bytes"
	"context"
	"errors"
	"io/ioutil"
	"net"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gossh "golang.org/x/crypto/ssh"
)

func startServer(t *testing.T, binary string) (*Server, string) {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := &Server{
		Binary:  binary,
		Metrics: NewMetrics(prometheus.NewRegistry()),
	}
	require.NoError(t, s.init())

	go s.Serve(l)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.Shutdown(ctx)
	})

	return s, l.Addr().String()
}

func dial(t *testing.T, addr string, user string) *gossh.Session {
	t.Helper()

	client, err := gossh.Dial("tcp", addr, &gossh.ClientConfig{
		User:            user,
		Auth:            []gossh.AuthMethod{gossh.Password("")},
		HostKeyCallback: gossh.InsecureIgnoreHostKey(),
		Timeout:         5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	sess, err := client.NewSession()
	require.NoError(t, err)

	return sess
}

func TestListenAndServeNeedsAddress(t *testing.T) {
	s := &Server{}
	assert.Equal(t, ErrNoListenAddress, s.ListenAndServe())
}

func TestBadHostKey(t *testing.T) {
	s := &Server{ListenAddress: ":0", HostKey: "/nonexistent/id_rsa"}
	assert.Error(t, s.ListenAndServe())
}

func TestRejectWithoutPty(t *testing.T) {
	s, addr := startServer(t, "true")
	sess := dial(t, addr, "alice")

	out, err := sess.CombinedOutput("")
	assert.Contains(t, string(out), "non-interactive terminals are not supported")

	var exitErr *gossh.ExitError
	require.True(t, errors.As(err, &exitErr), "err %v", err)
	assert.Equal(t, 1, exitErr.ExitStatus())

	assert.Equal(t, float64(1), testutil.ToFloat64(s.Metrics.SessionsTotal.WithLabelValues(ResultRejected)))
	assert.Equal(t, float64(0), testutil.ToFloat64(s.Metrics.SessionsActive))
}

func TestRunsBinaryOnPty(t *testing.T) {
	echo, err := exec.LookPath("echo")
	if err != nil {
		t.Skip("echo not available")
	}

	s, addr := startServer(t, echo)
	sess := dial(t, addr, "alice")

	require.NoError(t, sess.RequestPty("xterm", 24, 80, gossh.TerminalModes{}))

	var out bytes.Buffer
	sess.Stdout = &out
	require.NoError(t, sess.Shell())
	require.NoError(t, sess.Wait())

	assert.Contains(t, out.String(), "--nick alice")
	assert.Equal(t, float64(1), testutil.ToFloat64(s.Metrics.SessionsTotal.WithLabelValues(ResultPlayed)))
	assert.Equal(t, float64(0), testutil.ToFloat64(s.Metrics.SessionsActive))
	assert.Equal(t, 1, testutil.CollectAndCount(s.Metrics.SessionDuration))
}

func TestWindowChangeResizesPty(t *testing.T) {
	for _, bin := range []string{"sh", "stty", "sleep"} {
		if _, err := exec.LookPath(bin); err != nil {
			t.Skipf("%s not available", bin)
		}
	}

	script := filepath.Join(t.TempDir(), "game.sh")
	require.NoError(t, ioutil.WriteFile(script, []byte("#!/bin/sh\nsleep 1\nstty size\necho \"$@\"\n"), 0755))

	s, addr := startServer(t, script)
	sess := dial(t, addr, "carol")

	require.NoError(t, sess.RequestPty("xterm", 24, 80, gossh.TerminalModes{}))

	var out bytes.Buffer
	sess.Stdout = &out
	require.NoError(t, sess.Shell())

	for i := 0; i < 5; i++ {
		require.NoError(t, sess.WindowChange(30+i, 100))
	}
	require.NoError(t, sess.Wait())

	assert.Contains(t, out.String(), "34 100")
	assert.Contains(t, out.String(), "--nick carol")
	assert.Equal(t, float64(1), testutil.ToFloat64(s.Metrics.SessionsTotal.WithLabelValues(ResultPlayed)))
}

func TestMissingBinary(t *testing.T) {
	s, addr := startServer(t, "/nonexistent/termtris")
	sess := dial(t, addr, "bob")

	require.NoError(t, sess.RequestPty("xterm", 24, 80, gossh.TerminalModes{}))

	var out bytes.Buffer
	sess.Stdout = &out
	require.NoError(t, sess.Shell())

	var exitErr *gossh.ExitError
	err := sess.Wait()
	require.True(t, errors.As(err, &exitErr), "err %v", err)
	assert.Equal(t, 1, exitErr.ExitStatus())
	assert.Contains(t, out.String(), "failed to initialize pseudo-terminal")
	assert.Equal(t, float64(1), testutil.ToFloat64(s.Metrics.SessionsTotal.WithLabelValues(ResultFailed)))
}
