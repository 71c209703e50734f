package spectrum

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
)

// Channels is implemented by *OneDim and *TwoDim.
type Channels interface {
	Dimension() int
	Max() int
	Total() int
}

// Spectrum is a named, dated channel set. Its dimension never changes
// after construction.
type Spectrum struct {
	name     string
	ref      int64
	channels Channels

	Date time.Time
}

func (s *Spectrum) Name() string { return s.name }

// SetName renames the spectrum. Blank names are rejected.
func (s *Spectrum) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	s.name = name
	return nil
}

func (s *Spectrum) Dimension() int { return s.channels.Dimension() }

// Ref is the reference number assigned by the owning Session.
func (s *Spectrum) Ref() int64 { return s.ref }

func (s *Spectrum) Channels() Channels { return s.channels }

// OneDim returns the channels of a 1D spectrum.
func (s *Spectrum) OneDim() (*OneDim, bool) {
	c, ok := s.channels.(*OneDim)
	return c, ok
}

// TwoDim returns the channels of a 2D spectrum.
func (s *Spectrum) TwoDim() (*TwoDim, bool) {
	c, ok := s.channels.(*TwoDim)
	return c, ok
}

func (s *Spectrum) String() string {
	return fmt.Sprintf("#%d %s (%dD)", s.ref, s.name, s.Dimension())
}

// Session hands out increasing reference numbers to the spectra it creates.
type Session struct {
	next atomic.Int64
}

func NewSession() *Session {
	return &Session{}
}

// NewSpectrum wraps ch under a fresh reference number, dated now.
func (s *Session) NewSpectrum(name string, ch Channels) (*Spectrum, error) {
	if ch == nil {
		return nil, ErrNoChannels
	}
	sp := &Spectrum{
		name:     strings.TrimSpace(name),
		ref:      s.next.Add(1),
		channels: ch,
		Date:     time.Now(),
	}
	log.WithFields(log.Fields{"ref": sp.ref, "name": sp.name, "dim": ch.Dimension()}).Trace("spectrum created")
	return sp, nil
}

func (s *Session) Add(a, b *Spectrum) (*Spectrum, error)      { return s.Combine(OpAdd, a, b) }
func (s *Session) Subtract(a, b *Spectrum) (*Spectrum, error) { return s.Combine(OpSubtract, a, b) }
func (s *Session) Multiply(a, b *Spectrum) (*Spectrum, error) { return s.Combine(OpMultiply, a, b) }
func (s *Session) Divide(a, b *Spectrum) (*Spectrum, error)   { return s.Combine(OpDivide, a, b) }

// Combine applies op to copies of a's channels and returns the result as a
// new spectrum named "<a>_<op>_<b>". Neither operand is modified.
func (s *Session) Combine(op Op, a, b *Spectrum) (*Spectrum, error) {
	if a.Dimension() != b.Dimension() {
		return nil, fmt.Errorf("%w: %dD %s %dD", ErrDimension, a.Dimension(), op, b.Dimension())
	}
	var ch Channels
	switch ca := a.channels.(type) {
	case *OneDim:
		cb, ok := b.channels.(*OneDim)
		if !ok {
			return nil, fmt.Errorf("%w: %T", ErrDimension, b.channels)
		}
		res := ca.Clone()
		if err := res.Apply(op, cb); err != nil {
			return nil, err
		}
		ch = res
	case *TwoDim:
		cb, ok := b.channels.(*TwoDim)
		if !ok {
			return nil, fmt.Errorf("%w: %T", ErrDimension, b.channels)
		}
		res := ca.Clone()
		if err := res.Apply(op, cb); err != nil {
			return nil, err
		}
		ch = res
	default:
		return nil, fmt.Errorf("%w: unsupported channels %T", ErrDimension, a.channels)
	}
	return s.NewSpectrum(a.name+"_"+op.Symbol()+"_"+b.name, ch)
}
