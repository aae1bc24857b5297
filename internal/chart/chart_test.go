package chart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/hydraulics"
	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/sizing"
)

func curvePoints(t *testing.T) []sizing.CurvePoint {
	t.Helper()
	eng := sizing.NewEngine(hydraulics.DefaultConfig())
	in := sizing.Input{
		FlowM3H: 72,
		Suction: sizing.Leg{
			Segments: []hydraulics.Segment{
				{LengthM: 10, DiameterM: 0.1, Material: "pvc", Connections: 2},
			},
		},
		Destinations: []sizing.Destination{{
			Leg: sizing.Leg{
				LevelM: 20,
				Segments: []hydraulics.Segment{
					{LengthM: 50, DiameterM: 0.1, Material: "pvc", Connections: 5},
				},
			},
		}},
	}
	points := eng.Curve(in, 50)
	if points == nil {
		t.Fatal("no curve points")
	}
	return points
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, curvePoints(t), 72, 24); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("empty image")
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Errorf("output is not a PNG, starts with % x", buf.Bytes()[:4])
	}
}

func TestWritePNGNoPoints(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, nil, 72, 24); err == nil {
		t.Error("expected an error for an empty curve")
	}
}

func TestASCII(t *testing.T) {
	got := ASCII(curvePoints(t), 60, 12)
	if got == "" {
		t.Fatal("empty plot")
	}
	if !strings.Contains(got, "\n") {
		t.Error("expected a multi-line plot")
	}
	if !strings.Contains(got, "head (m)") {
		t.Errorf("caption missing: %q", got)
	}
}

func TestASCIIEmpty(t *testing.T) {
	if got := ASCII(nil, 60, 12); got != "" {
		t.Errorf("ASCII(nil) = %q, want empty", got)
	}
}
