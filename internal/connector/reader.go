package connector

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
)

const readBufSize = 1024

// StreamReader adapts an io.ReadCloser to LineReader. Lines are returned
// without their trailing newline.
type StreamReader struct {
	r      *bufio.Reader
	c      io.Closer
	closed atomic.Bool
	once   sync.Once
	err    error
}

// NewStreamReader wraps rc. Close closes rc.
func NewStreamReader(rc io.ReadCloser) *StreamReader {
	return &StreamReader{r: bufio.NewReaderSize(rc, readBufSize), c: rc}
}

// ReadLine returns the next line. A partial final line is returned as a line;
// after that, and after Close, io.EOF is returned.
func (s *StreamReader) ReadLine() (string, error) {
	if s.closed.Load() {
		return "", io.EOF
	}
	line, err := s.r.ReadString('\n')
	if err != nil {
		if line != "" && errors.Is(err, io.EOF) {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if s.closed.Load() || errors.Is(err, os.ErrClosed) {
			return "", io.EOF
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Close closes the underlying stream once.
func (s *StreamReader) Close() error {
	s.once.Do(func() {
		s.closed.Store(true)
		s.err = s.c.Close()
	})
	return s.err
}

// ProcessReader reads lines from a child process's standard output. Close
// kills the process, which ends the stream and unblocks ReadLine.
type ProcessReader struct {
	*StreamReader
	cmd  *exec.Cmd
	once sync.Once
}

// StartProcess starts cmd and returns a reader over its stdout. Errors
// starting the process wrap ErrStreamUnavailable.
//
// The read end of stdout is owned by the reader rather than by cmd, so
// Close can unblock a pending ReadLine before reaping the process.
func StartProcess(cmd *exec.Cmd) (*ProcessReader, error) {
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStreamUnavailable, err)
	}
	cmd.Stdout = pw
	if err := cmd.Start(); err != nil {
		pr.Close()
		pw.Close()
		return nil, fmt.Errorf("%w: %w", ErrStreamUnavailable, err)
	}
	// The child holds its own copy of the write end.
	pw.Close()
	return &ProcessReader{StreamReader: NewStreamReader(pr), cmd: cmd}, nil
}

// Close kills the process, closes the stream and waits for the process to
// exit.
func (p *ProcessReader) Close() error {
	var err error
	p.once.Do(func() {
		if p.cmd.Process != nil {
			_ = p.cmd.Process.Kill()
		}
		err = p.StreamReader.Close()
		// Wait does not touch the read end; the exit status of a killed
		// process is not interesting.
		_ = p.cmd.Wait()
	})
	return err
}
