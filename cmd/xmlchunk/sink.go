package main

import (
	"errors"
	"io"

	"github.com/google/renameio"
)

var errSinkClosed = errors.New("write to closed output")

// cleanupWriteCloser is an output that only takes effect once closed. Cleanup
// discards it if it has not been closed, and may always be deferred.
type cleanupWriteCloser interface {
	io.WriteCloser
	Cleanup() error
}

// openOutput opens the named output file for atomic replacement, or wraps
// stdout if name is "-" or empty.
func openOutput(name string, stdout io.Writer) (cleanupWriteCloser, error) {
	if name == "" || name == "-" {
		return &streamSink{w: stdout}, nil
	}
	f, err := renameio.TempFile("", name)
	if err != nil {
		return nil, err
	}
	return &pendingReplaceFile{PendingFile: f}, nil
}

type pendingReplaceFile struct {
	*renameio.PendingFile
	closed bool
}

func (rf *pendingReplaceFile) Close() error {
	if rf.closed {
		return nil
	}
	err := rf.Chmod(0644)
	if err == nil {
		err = rf.CloseAtomicallyReplace()
	}
	rf.closed = err == nil
	return err
}

func (rf *pendingReplaceFile) Cleanup() error {
	if rf.closed {
		return nil
	}
	rf.closed = true
	return rf.PendingFile.Cleanup()
}

// streamSink passes writes through until closed.
type streamSink struct {
	w      io.Writer
	closed bool
}

func (ss *streamSink) Write(p []byte) (int, error) {
	if ss.closed {
		return 0, errSinkClosed
	}
	return ss.w.Write(p)
}

func (ss *streamSink) Close() error {
	ss.closed = true
	return nil
}

func (ss *streamSink) Cleanup() error {
	ss.closed = true
	return nil
}
