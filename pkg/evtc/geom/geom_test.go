package geom

import (
	"encoding/json"
	"math"
	"testing"
)

func approxEqual(a, b, maxRelative float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	largest := math.Max(math.Abs(a), math.Abs(b))
	return diff <= largest*maxRelative || diff < 1e-6
}

func TestMumbleConversion(t *testing.T) {
	pos := New(3993.409, 6225.539, -549.570)

	mumble := pos.ToMumble()
	want := [3]float32{101.433, 13.959, 158.129}
	for i := range want {
		if !approxEqual(float64(mumble[i]), float64(want[i]), 1e-3) {
			t.Errorf("ToMumble()[%d] = %v, want %v", i, mumble[i], want[i])
		}
	}

	back := FromMumble(mumble)
	got := back.Array()
	orig := pos.Array()
	for i := range orig {
		if !approxEqual(float64(got[i]), float64(orig[i]), 1e-5) {
			t.Errorf("FromMumble(ToMumble())[%d] = %v, want %v", i, got[i], orig[i])
		}
	}
}

func TestRotate(t *testing.T) {
	rotation := New(0, 0.25*math.Pi, 0.5*math.Pi)
	vector := New(1, 0, 0)

	got := rotation.Rotate(vector)
	want := New(0, math.Sqrt2/2, -math.Sqrt2/2)

	if math.Abs(float64(got.X-want.X)) > 1e-6 ||
		math.Abs(float64(got.Y-want.Y)) > 1e-6 ||
		math.Abs(float64(got.Z-want.Z)) > 1e-6 {
		t.Errorf("Rotate() = %+v, want %+v", got, want)
	}
}

func TestRotate_Identity(t *testing.T) {
	v := New(1, 2, 3)
	got := New(0, 0, 0).Rotate(v)
	if got != v {
		t.Errorf("Rotate() with zero angles = %+v, want %+v", got, v)
	}
}

func TestLen(t *testing.T) {
	if got := New(3, 4, 12).Len(); got != 13 {
		t.Errorf("Len() = %v, want 13", got)
	}
}

func TestArithmetic(t *testing.T) {
	a := New(1, 2, 3)
	b := New(4, 5, 6)

	if got := a.Add(b); got != New(5, 7, 9) {
		t.Errorf("Add() = %+v", got)
	}
	if got := b.Sub(a); got != New(3, 3, 3) {
		t.Errorf("Sub() = %+v", got)
	}
	if got := a.Scale(2); got != New(2, 4, 6) {
		t.Errorf("Scale() = %+v", got)
	}
}

func TestOrientationToInt16(t *testing.T) {
	tests := []struct {
		name string
		in   float32
		want int16
	}{
		{"zero", 0, 0},
		{"positive", 12.345, 12345},
		{"second component", 6.789, 6789},
		{"rounds up", 30.9999, 31000},
		{"negative", -1.5, -1500},
		{"saturates max", 12345.0, math.MaxInt16},
		{"saturates min", -6789.0, math.MinInt16},
		{"nan", float32(math.NaN()), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OrientationToInt16(tt.in); got != tt.want {
				t.Errorf("OrientationToInt16(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestOrientationFromFloats(t *testing.T) {
	got := OrientationFromFloats(12.345, 6.789, 0)
	want := [3]int16{12345, 6789, 0}
	if got != want {
		t.Errorf("OrientationFromFloats() = %v, want %v", got, want)
	}

	back := OrientationFromInt16s(got)
	if math.Abs(float64(back.X-12.345)) > 1e-3 || math.Abs(float64(back.Y-6.789)) > 1e-3 || back.Z != 0 {
		t.Errorf("OrientationFromInt16s() = %+v", back)
	}
}

func TestFromScaledInt16(t *testing.T) {
	got := FromScaledInt16(100, -200, 3, 10)
	if got != New(1000, -2000, 30) {
		t.Errorf("FromScaledInt16() = %+v", got)
	}
}

func TestPosition_MarshalJSON(t *testing.T) {
	inf := float32(math.Inf(1))
	nan := float32(math.NaN())

	tests := []struct {
		name string
		pos  Position
		want string
	}{
		{"finite", New(1.5, -2, 0), `{"x":1.5,"y":-2,"z":0}`},
		{"infinite", New(inf, inf, inf), `{"x":null,"y":null,"z":null}`},
		{"mixed", New(nan, 3, float32(math.Inf(-1))), `{"x":null,"y":3,"z":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.pos)
			if err != nil {
				t.Fatalf("json.Marshal() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("json.Marshal() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFloat_MarshalJSON(t *testing.T) {
	tests := []struct {
		f    Float
		want string
	}{
		{0.995, "0.995"},
		{-4, "-4"},
		{Float(math.Inf(1)), "null"},
		{Float(math.Inf(-1)), "null"},
		{Float(math.NaN()), "null"},
	}

	for _, tt := range tests {
		got, err := json.Marshal(struct {
			V Float `json:"v"`
		}{tt.f})
		if err != nil {
			t.Fatalf("json.Marshal(%v) error = %v", tt.f, err)
		}
		if want := `{"v":` + tt.want + `}`; string(got) != want {
			t.Errorf("json.Marshal(%v) = %s, want %s", tt.f, got, want)
		}
	}
}
