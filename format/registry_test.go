package format

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/VictorDenisov/spectra/spc"
	"github.com/VictorDenisov/spectra/spectrum"
)

func testSpectrum(t *testing.T, sess *spectrum.Session) *spectrum.Spectrum {
	t.Helper()
	counts := make([]int, 5000)
	for i := range counts {
		if i%7 == 0 {
			counts[i] = i
		}
	}
	ch, err := spectrum.NewOneDim(counts, nil)
	if err != nil {
		t.Fatal(err)
	}
	sp, err := sess.NewSpectrum("calib", ch)
	if err != nil {
		t.Fatal(err)
	}
	return sp
}

func TestLookup(t *testing.T) {
	r := Default()
	tests := []struct {
		path string
		comp Compression
	}{
		{"a.spc", None},
		{"dir/A.SPC", None},
		{"a.spc.zst", Zstd},
		{"a.spc.lzma", LZMA},
	}
	for _, tt := range tests {
		c, comp, err := r.Lookup(tt.path)
		if err != nil {
			t.Errorf("Lookup(%q): %v", tt.path, err)
			continue
		}
		if c.Extension() != spc.Extension || comp != tt.comp {
			t.Errorf("Lookup(%q) = %s, %v; want .spc, %v", tt.path, c.Extension(), comp, tt.comp)
		}
	}
	if _, _, err := r.Lookup("a.txt"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Lookup(a.txt) err = %v, want ErrUnknownFormat", err)
	}
	if got := r.Extensions(); !reflect.DeepEqual(got, []string{".spc"}) {
		t.Errorf("Extensions = %v", got)
	}
}

func TestSaveOpen_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"plain.spc", "packed.spc.zst", "packed.spc.lzma"} {
		t.Run(name, func(t *testing.T) {
			r := Default()
			sess := spectrum.NewSession()
			sp := testSpectrum(t, sess)
			sp.Date = time.Time{}
			path := filepath.Join(dir, name)

			before := time.Now().Add(-time.Second)
			if err := r.Save(path, sp); err != nil {
				t.Fatal(err)
			}
			if sp.Date.Before(before) {
				t.Errorf("Save did not stamp the date: %v", sp.Date)
			}

			got, err := r.Open(path, sess)
			if err != nil {
				t.Fatal(err)
			}
			want, _ := sp.OneDim()
			gc, ok := got.OneDim()
			if !ok || !reflect.DeepEqual(gc.Counts(), want.Counts()) {
				t.Errorf("counts differ after %s round trip", name)
			}
			if got.Name() != "calib" {
				t.Errorf("name = %q", got.Name())
			}
		})
	}
}

// pointChannels is a channel set no codec knows how to write.
type pointChannels struct{}

func (pointChannels) Dimension() int { return 1 }
func (pointChannels) Max() int       { return 1 }
func (pointChannels) Total() int     { return 1 }

func TestSave_FailureKeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"keep.spc", "keep.spc.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			old := []byte("previous contents of the spectrum")
			if err := os.WriteFile(path, old, 0o644); err != nil {
				t.Fatal(err)
			}
			sess := spectrum.NewSession()
			sp, err := sess.NewSpectrum("point", pointChannels{})
			if err != nil {
				t.Fatal(err)
			}
			if err := Default().Save(path, sp); !errors.Is(err, spc.ErrUnsupportedSpectrum) {
				t.Fatalf("Save err = %v, want ErrUnsupportedSpectrum", err)
			}
			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != string(old) {
				t.Errorf("file = %q after failed save, want %q", got, old)
			}
		})
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("dir holds %d entries after failed saves, want 2", len(entries))
	}
}

func TestOpen_DetectsWithoutExtension(t *testing.T) {
	dir := t.TempDir()
	r := Default()
	sess := spectrum.NewSession()
	sp := testSpectrum(t, sess)
	b, err := spc.Marshal(sp)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "run.dat")
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatal(err)
	}
	c, dim, err := r.Detect(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Extension() != ".spc" || dim != 1 {
		t.Errorf("Detect = %s, %d", c.Extension(), dim)
	}
	if _, err := r.Open(path, sess); err != nil {
		t.Errorf("Open: %v", err)
	}
}

func TestDetect_Unknown(t *testing.T) {
	dir := t.TempDir()
	b := make([]byte, 2048)
	b[142], b[154] = 5, 1
	path := filepath.Join(dir, "junk.bin")
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Default().Detect(path); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("err = %v, want ErrUnknownFormat", err)
	}
	if _, err := Default().Open(path, spectrum.NewSession()); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Open err = %v, want ErrUnknownFormat", err)
	}
}

func TestOpen_Missing(t *testing.T) {
	_, err := Default().Open(filepath.Join(t.TempDir(), "none.spc"), spectrum.NewSession())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want ErrNotExist", err)
	}
}

func TestCompression_RoundTrip(t *testing.T) {
	data := []byte("spectrum payload spectrum payload spectrum payload")
	for _, c := range []Compression{None, Zstd, LZMA} {
		enc, err := c.encode(data)
		if err != nil {
			t.Fatalf("%v encode: %v", c, err)
		}
		dec, err := c.decode(enc)
		if err != nil {
			t.Fatalf("%v decode: %v", c, err)
		}
		if string(dec) != string(data) {
			t.Errorf("%v round trip = %q", c, dec)
		}
	}
}
