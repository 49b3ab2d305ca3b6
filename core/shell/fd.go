package shell

import (
	"os"

	"golang.org/x/sys/unix"
)

// ownedFd is a descriptor the executor opened for a single stage. A nil
// *ownedFd means "no redirection" and is safe to Close.
type ownedFd struct {
	fd int
}

// openFile opens path close-on-exec so only the stage it's handed to sees it.
func openFile(path string, flags int, perm uint32) (*ownedFd, error) {
	fd, err := unix.Open(path, flags|unix.O_CLOEXEC, perm)
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: path, Err: err}
	}
	return &ownedFd{fd: fd}, nil
}

// newPipe creates a pipe whose ends are both close-on-exec.
func newPipe() (r, w *ownedFd, err error) {
	var p [2]int
	if err := unix.Pipe2(p[:], unix.O_CLOEXEC); err != nil {
		return nil, nil, os.NewSyscallError("pipe2", err)
	}
	return &ownedFd{fd: p[0]}, &ownedFd{fd: p[1]}, nil
}

// or returns the descriptor number, or the fallback's if there's no
// redirection.
func (o *ownedFd) or(fallback *os.File) uintptr {
	if o == nil {
		return fallback.Fd()
	}
	return uintptr(o.fd)
}

// Close releases the descriptor, further calls are no-ops.
func (o *ownedFd) Close() error {
	if o == nil || o.fd < 0 {
		return nil
	}
	fd := o.fd
	o.fd = -1
	if err := unix.Close(fd); err != nil {
		return os.NewSyscallError("close", err)
	}
	return nil
}

// closeAll closes every descriptor and returns the first failure.
func closeAll(fds ...*ownedFd) error {
	var first error
	for _, fd := range fds {
		if err := fd.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
