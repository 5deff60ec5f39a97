package codec

import (
	"bufio"
	"errors"
	"io"
	"os"
)

// pendingFile writes to "<path>.tmp" and only renames onto path on commit,
// so a failed write never leaves a partial weights file behind.
type pendingFile struct {
	path string
	tmp  string
	f    *os.File
	w    *bufio.Writer
	done bool
}

func createPending(path string) (*pendingFile, error) {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return nil, err
	}
	return &pendingFile{path: path, tmp: tmp, f: f, w: bufio.NewWriter(f)}, nil
}

// commit flushes, closes and renames the temp file onto the target.
func (p *pendingFile) commit() error {
	if p.done {
		return nil
	}
	p.done = true
	err := p.w.Flush()
	if cerr := p.f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(p.tmp)
		return err
	}
	return os.Rename(p.tmp, p.path)
}

// abort closes and removes the temp file. Safe after commit.
func (p *pendingFile) abort() error {
	if p.done {
		return nil
	}
	p.done = true
	return errors.Join(p.f.Close(), os.Remove(p.tmp))
}

// CopyFile copies src to dst byte for byte through a pending temp file.
// Used when a conversion changes neither format nor IDs.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	p, err := createPending(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(p.w, in); err != nil {
		return errors.Join(err, p.abort())
	}
	return p.commit()
}
