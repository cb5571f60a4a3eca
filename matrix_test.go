package vis

import (
	"math"
	"testing"
)

func TestMatrixIsAxisAligned(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want bool
	}{
		{"identity", Identity(), true},
		{"translation", Translate(10, -3), true},
		{"scale", Scale(2, 0.5), true},
		{"negative scale", Scale(-1, 1), true},
		{"rotation 45deg", Rotate(math.Pi / 4), false},
		{"rotation 90deg", Rotate(math.Pi / 2), true},
		{"rotation 180deg", Rotate(math.Pi), true},
		{"tiny rotation", Rotate(0.01), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.IsAxisAligned(); got != tt.want {
				t.Errorf("Matrix%+v.IsAxisAligned() = %v, want %v", tt.m, got, tt.want)
			}
		})
	}
}

func TestMatrixTransformRect(t *testing.T) {
	r := RectWH(0, 0, 10, 20)

	got, exact := Translate(5, 5).TransformRect(r)
	if !exact {
		t.Error("translation should be exact")
	}
	if want := RectWH(5, 5, 10, 20); !got.Eq(want) {
		t.Errorf("translated rect = %v, want %v", got, want)
	}

	got, exact = Rotate(math.Pi / 4).TransformRect(RectWH(-1, -1, 2, 2))
	if exact {
		t.Error("rotation must report an inexact bounding box")
	}
	s := math.Sqrt2
	want := NewRect(Pt(-s, -s), Pt(s, s))
	if !got.Eq(want) {
		t.Errorf("rotated bbox = %v, want %v", got, want)
	}
}

func TestMatrixInvertRoundTrip(t *testing.T) {
	m := Translate(3, 5).Multiply(Rotate(0.7)).Multiply(Scale(2, 3))
	p := Pt(4, -2)

	back := m.Invert().TransformPoint(m.TransformPoint(p))
	if !back.Eq(p) {
		t.Errorf("round trip = %v, want %v", back, p)
	}
}

func TestMatrixMultiplyOrder(t *testing.T) {
	// Translate then scale is not scale then translate.
	ts := Translate(10, 0).Multiply(Scale(2, 2))
	st := Scale(2, 2).Multiply(Translate(10, 0))

	p := Pt(1, 1)
	if got, want := ts.TransformPoint(p), Pt(12, 2); !got.Eq(want) {
		t.Errorf("T*S point = %v, want %v", got, want)
	}
	if got, want := st.TransformPoint(p), Pt(22, 2); !got.Eq(want) {
		t.Errorf("S*T point = %v, want %v", got, want)
	}
}
