// Package remote provides one authenticated SSH session to a gateway with
// command execution and SFTP file transfer primitives.
package remote

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// Target identifies the gateway to connect to. Addr is host:port.
type Target struct {
	Addr     string
	User     string
	Password string
}

// Session owns one authenticated SSH connection. It is not safe for
// concurrent use; flows hold it exclusively for their lifetime.
type Session struct {
	client *ssh.Client
	ftp    *sftp.Client
}

const dialTimeout = 30 * time.Second

// Dial connects and authenticates with password auth. Gateways in the field
// are reinstalled often and addressed by IP, so host keys are not verified.
func Dial(t Target) (*Session, error) {
	cfg := &ssh.ClientConfig{
		User:            t.User,
		Auth:            []ssh.AuthMethod{ssh.Password(t.Password)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec
		Timeout:         dialTimeout,
	}
	client, err := ssh.Dial("tcp", t.Addr, cfg)
	if err != nil {
		if isAuthFailure(err) {
			return nil, fmt.Errorf("%w: %v", ErrAuth, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}
	return &Session{client: client}, nil
}

// isAuthFailure distinguishes credential rejections from network failures.
// The ssh package reports both through ssh.Dial without a typed error.
func isAuthFailure(err error) bool {
	return strings.Contains(err.Error(), "unable to authenticate")
}

// Close shuts down the SFTP sub-channel, if open, and the SSH connection.
func (s *Session) Close() error {
	if s.ftp != nil {
		_ = s.ftp.Close()
		s.ftp = nil
	}
	return s.client.Close()
}

// Run executes cmd to completion and returns its captured stdout. Stderr is
// not captured, and a remote non-zero exit status is not an error; the
// commands this tool runs encode their outcome in their output.
func (s *Session) Run(cmd string) (string, error) {
	sess, err := s.client.NewSession()
	if err != nil {
		return "", execErr(cmd, err)
	}
	defer sess.Close()

	var out bytes.Buffer
	sess.Stdout = &out
	if err := sess.Run(cmd); err != nil {
		var exitErr *ssh.ExitError
		if !errors.As(err, &exitErr) {
			return "", execErr(cmd, err)
		}
	}
	return out.String(), nil
}

// Upload writes the full contents of the local file to remotePath with the
// given permission bits.
func (s *Session) Upload(localPath, remotePath string, mode os.FileMode) error {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return transferErr(localPath, err)
	}

	ftp, err := s.sftpClient()
	if err != nil {
		return transferErr(remotePath, err)
	}
	f, err := ftp.Create(remotePath)
	if err != nil {
		return transferErr(remotePath, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return transferErr(remotePath, err)
	}
	if err := f.Close(); err != nil {
		return transferErr(remotePath, err)
	}
	if err := ftp.Chmod(remotePath, mode); err != nil {
		return transferErr(remotePath, err)
	}
	return nil
}

// Download reads the full contents of remotePath.
func (s *Session) Download(remotePath string) ([]byte, error) {
	ftp, err := s.sftpClient()
	if err != nil {
		return nil, transferErr(remotePath, err)
	}
	f, err := ftp.Open(remotePath)
	if err != nil {
		return nil, transferErr(remotePath, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, transferErr(remotePath, err)
	}
	return buf.Bytes(), nil
}

// ListDir returns the entry names of a remote directory via SFTP, in the
// order the server reports them. Names never contain separators, so entries
// with unusual characters stay intact.
func (s *Session) ListDir(remotePath string) ([]string, error) {
	ftp, err := s.sftpClient()
	if err != nil {
		return nil, transferErr(remotePath, err)
	}
	infos, err := ftp.ReadDir(remotePath)
	if err != nil {
		return nil, transferErr(remotePath, err)
	}
	names := make([]string, len(infos))
	for i, fi := range infos {
		names[i] = fi.Name()
	}
	return names, nil
}

// sftpClient opens the SFTP sub-channel on first use.
func (s *Session) sftpClient() (*sftp.Client, error) {
	if s.ftp != nil {
		return s.ftp, nil
	}
	ftp, err := sftp.NewClient(s.client)
	if err != nil {
		return nil, err
	}
	s.ftp = ftp
	return ftp, nil
}

func execErr(cmd string, err error) error {
	return fmt.Errorf("%w: %q: %v", ErrExec, cmd, err)
}

func transferErr(path string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrTransfer, path, err)
}
