// Package format maps spectrum files to the codecs that understand them.
package format

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/VictorDenisov/spectra/spc"
	"github.com/VictorDenisov/spectra/spectrum"
)

// ErrUnknownFormat is returned when no registered codec accepts a file.
var ErrUnknownFormat = errors.New("unknown spectrum format")

// Codec reads and writes one spectrum file format.
type Codec interface {
	Extension() string
	Detect(r io.ReaderAt) (dim int, err error)
	Read(r io.ReaderAt, sess *spectrum.Session) (*spectrum.Spectrum, error)
	Write(w io.Writer, s *spectrum.Spectrum) error
}

// Registry holds codecs in registration order.
type Registry struct {
	codecs []Codec
}

func NewRegistry(codecs ...Codec) *Registry {
	return &Registry{codecs: codecs}
}

// Default returns a registry that knows SPC files.
func Default() *Registry {
	return NewRegistry(spc.Codec{})
}

func (r *Registry) Register(c Codec) {
	r.codecs = append(r.codecs, c)
}

// Extensions lists the plain extensions of every codec, for file filters.
func (r *Registry) Extensions() []string {
	exts := make([]string, len(r.codecs))
	for i, c := range r.codecs {
		exts[i] = c.Extension()
	}
	return exts
}

// Lookup picks the codec for path by extension, after stripping any
// compression suffix.
func (r *Registry) Lookup(path string) (Codec, Compression, error) {
	base, comp := splitCompression(path)
	ext := strings.ToLower(filepath.Ext(base))
	for _, c := range r.codecs {
		if strings.ToLower(c.Extension()) == ext {
			return c, comp, nil
		}
	}
	return nil, comp, fmt.Errorf("%w: extension %q", ErrUnknownFormat, ext)
}

// Detect asks every codec in turn whether it accepts the file at path and
// returns the first that does, with the declared dimension.
func (r *Registry) Detect(path string) (Codec, int, error) {
	_, comp := splitCompression(path)
	ra, closeFn, err := openReaderAt(path, comp)
	if err != nil {
		return nil, 0, err
	}
	defer closeFn()

	var errs []error
	for _, c := range r.codecs {
		dim, err := c.Detect(ra)
		if err == nil {
			log.WithFields(log.Fields{"path": path, "codec": c.Extension(), "dim": dim}).Debug("format detected")
			return c, dim, nil
		}
		errs = append(errs, err)
	}
	return nil, 0, fmt.Errorf("%s: %w: %v", path, ErrUnknownFormat, errors.Join(errs...))
}

// Open reads the spectrum at path. The codec is chosen by extension and
// falls back to content detection.
func (r *Registry) Open(path string, sess *spectrum.Session) (*spectrum.Spectrum, error) {
	c, comp, err := r.Lookup(path)
	if err != nil {
		var derr error
		if c, _, derr = r.Detect(path); derr != nil {
			return nil, derr
		}
	}
	ra, closeFn, err := openReaderAt(path, comp)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	sp, err := c.Read(ra, sess)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.WithFields(log.Fields{"path": path, "spectrum": sp.String(), "compression": comp}).Info("spectrum loaded")
	return sp, nil
}

// Save stamps s with the current time and writes it to path. The file is
// encoded in memory and then moved into place, so a failed save leaves any
// existing file untouched.
func (r *Registry) Save(path string, s *spectrum.Spectrum) error {
	c, comp, err := r.Lookup(path)
	if err != nil {
		return err
	}
	s.Date = time.Now()

	var buf bytes.Buffer
	if err := c.Write(&buf, s); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	data := buf.Bytes()
	if comp != None {
		if data, err = comp.encode(data); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := writeFileAtomic(path, data); err != nil {
		return err
	}
	log.WithFields(log.Fields{"path": path, "spectrum": s.String(), "compression": comp}).Info("spectrum saved")
	return nil
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it over path.
func writeFileAtomic(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// openReaderAt returns random access to the decoded contents of path.
func openReaderAt(path string, comp Compression) (io.ReaderAt, func() error, error) {
	if comp == None {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, err
		}
		return f, f.Close, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	data, err = comp.decode(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return bytes.NewReader(data), func() error { return nil }, nil
}
