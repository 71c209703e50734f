package spectrum

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestOneDim_Compress(t *testing.T) {
	c, _ := NewOneDim([]int{1, 2, 3, 4, 5, 6, 7, 8}, nil)

	got, err := c.Compress(1, GroupSum)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got.Counts(), []int{3, 7, 11, 15}) {
		t.Errorf("counts = %v, want [3 7 11 15]", got.Counts())
	}
	if !approx(got.Uncertainty(0), math.Sqrt(3), 1e-9) {
		t.Errorf("uncertainty[0] = %v, want sqrt(3)", got.Uncertainty(0))
	}

	got, err = c.Compress(2, GroupSum)
	if err != nil {
		t.Fatal(err)
	}
	if got.Shape() != 2 {
		t.Errorf("Shape = %d, want 2", got.Shape())
	}
	if c.Shape() != 8 {
		t.Errorf("source changed shape: %d", c.Shape())
	}
}

func TestOneDim_CompressLegacy(t *testing.T) {
	c, _ := NewOneDim([]int{1, 2, 3, 4, 5, 6, 7, 8}, nil)
	got, err := c.Compress(1, GroupLegacy)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got.Counts(), []int{2, 4, 6, 8}) {
		t.Errorf("counts = %v, want [2 4 6 8]", got.Counts())
	}
	if !approx(got.Uncertainty(1), math.Sqrt(3+4), 1e-9) {
		t.Errorf("uncertainty[1] = %v, want sqrt(7)", got.Uncertainty(1))
	}
}

func TestOneDim_CompressRejects(t *testing.T) {
	c, _ := NewOneDim([]int{1, 2, 3, 4}, nil)
	if got, err := c.Compress(1, GroupSum); err != nil || got.Shape() != 2 {
		t.Errorf("Compress(1) = %v, %v; want 2 channels", got, err)
	}
	for _, e := range []int{2, 3, -1} {
		if _, err := c.Compress(e, GroupSum); !errors.Is(err, ErrExponent) {
			t.Errorf("Compress(%d) err = %v, want ErrExponent", e, err)
		}
	}
}

func TestTwoDim_Compress(t *testing.T) {
	c, _ := NewTwoDim([][]int{
		{1, 1, 2, 2},
		{1, 1, 2, 2},
		{3, 3, 4, 4},
		{3, 3, 4, 4},
	}, nil)
	got, err := c.Compress(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got.Counts(), [][]int{{4, 8}, {12, 16}}) {
		t.Errorf("counts = %v", got.Counts())
	}
	if !approx(got.Uncertainty(1, 1), 4, 1e-9) {
		t.Errorf("uncertainty = %v, want 4", got.Uncertainty(1, 1))
	}

	got, err = c.Compress(0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if rows, cols := got.Shape(); rows != 4 || cols != 2 {
		t.Errorf("Shape = %dx%d, want 4x2", rows, cols)
	}
	if _, err := c.Compress(2, 0); !errors.Is(err, ErrExponent) {
		t.Errorf("err = %v, want ErrExponent", err)
	}
}
