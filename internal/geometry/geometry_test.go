package geometry

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"testing"
)

const eps = 1e-9

func near(a, b Point) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func square() Polygon {
	return Polygon{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)}
}

func TestClosestPointOnSquare(t *testing.T) {
	cases := []struct {
		name   string
		target Point
		want   Point
	}{
		{"below bottom edge", Pt(5, -5), Pt(5, 0)},
		{"just below bottom edge", Pt(5, -3), Pt(5, 0)},
		{"edge midpoint", Pt(10, 5), Pt(10, 5)},
		{"inside near left", Pt(1, 5), Pt(0, 5)},
		{"outside corner", Pt(12, 13), Pt(10, 10)},
		{"on boundary", Pt(10, 4), Pt(10, 4)},
		{"right of closing edge", Pt(-4, 7), Pt(0, 7)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClosestPointOnSimplePolygonToTarget(square(), tc.target)
			if !near(got, tc.want) {
				t.Fatalf("closest to %v = %v, want %v", tc.target, got, tc.want)
			}
		})
	}
}

func TestClosestPointOnEdgeIsExact(t *testing.T) {
	for _, target := range []Point{Pt(5, 0), Pt(10, 5), Pt(5, 10), Pt(0, 5)} {
		if got := ClosestPointOnSimplePolygonToTarget(square(), target); got != target {
			t.Errorf("closest to %v = %v, want the target itself", target, got)
		}
	}
}

func TestClosestPointSingleVertex(t *testing.T) {
	poly := Polygon{Pt(3, 4)}
	for _, target := range []Point{Pt(0, 0), Pt(3, 4), Pt(-100, 55)} {
		if got := ClosestPointOnSimplePolygonToTarget(poly, target); got != Pt(3, 4) {
			t.Fatalf("got %v, want the vertex", got)
		}
	}
}

func TestClosestPointEmptyPolygon(t *testing.T) {
	if got := ClosestPointOnSimplePolygonToTarget(nil, Pt(1, 2)); got != Pt(1, 2) {
		t.Fatalf("got %v", got)
	}
}

func TestClosestPointTieTakesFirstEdge(t *testing.T) {
	// Centre of the square is 5 away from every edge; edge 0 wins.
	got := ClosestPointOnSimplePolygonToTarget(square(), Pt(5, 5))
	if !near(got, Pt(5, 0)) {
		t.Fatalf("got %v, want point on first edge", got)
	}
}

func TestClosestPointDegenerateEdge(t *testing.T) {
	poly := Polygon{Pt(0, 0), Pt(0, 0), Pt(4, 0)}
	got := ClosestPointOnSimplePolygonToTarget(poly, Pt(-1, 0))
	if !near(got, Pt(0, 0)) {
		t.Fatalf("got %v", got)
	}
}

func TestClosestPointDoesNotMutate(t *testing.T) {
	poly := square()
	before := ClonePolygon(poly)
	ClosestPointOnSimplePolygonToTarget(poly, Pt(50, 50))
	if !poly.Equal(before) {
		t.Fatalf("polygon mutated: %v", poly)
	}
}

func randomConvex(r *rand.Rand) Polygon {
	n := 3 + r.Intn(8)
	angles := make([]float64, n)
	for i := range angles {
		angles[i] = r.Float64() * 2 * math.Pi
	}
	sort.Float64s(angles)
	cx, cy := r.Float64()*200-100, r.Float64()*200-100
	radius := 1 + r.Float64()*50
	poly := make(Polygon, n)
	for i, a := range angles {
		poly[i] = Pt(cx+radius*math.Cos(a), cy+radius*math.Sin(a))
	}
	return poly
}

func onSomeEdge(poly Polygon, p Point) bool {
	n := len(poly)
	for i := range poly {
		q := ClosestPointOnSegment(poly[i], poly[(i+1)%n], p)
		if math.Hypot(q.X-p.X, q.Y-p.Y) < 1e-7 {
			return true
		}
	}
	return false
}

func TestClosestPointRandomConvex(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		poly := randomConvex(r)
		for j := 0; j < 200; j++ {
			target := Pt(r.Float64()*400-200, r.Float64()*400-200)
			got := ClosestPointOnSimplePolygonToTarget(poly, target)
			if !onSomeEdge(poly, got) {
				t.Fatalf("polygon %d target %v: %v is not on the boundary", i, target, got)
			}
			d := got.DistanceFrom(target)
			for _, v := range poly {
				if v.DistanceFrom(target) < d-1e-9 {
					t.Fatalf("polygon %d target %v: vertex %v closer than %v", i, target, v, got)
				}
			}
		}
	}
}

func TestClonePolygonIndependent(t *testing.T) {
	orig := square()
	clone := ClonePolygon(orig)
	clone[0] = Pt(99, 99)
	if orig[0] != Pt(0, 0) {
		t.Fatalf("mutating clone changed original: %v", orig)
	}
	orig[1].X = -1
	if clone[1] != Pt(10, 0) {
		t.Fatalf("mutating original changed clone: %v", clone)
	}
	if ClonePolygon(nil) != nil {
		t.Fatalf("expected nil clone of nil")
	}
}

func TestTranslate(t *testing.T) {
	got := square().Translate(Pt(2, -1))
	want := Polygon{Pt(2, -1), Pt(12, -1), Pt(12, 9), Pt(2, 9)}
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestContains(t *testing.T) {
	poly := square()
	if !poly.Contains(Pt(5, 5)) {
		t.Errorf("centre not contained")
	}
	if poly.Contains(Pt(15, 5)) {
		t.Errorf("outside point contained")
	}
	if (Polygon{Pt(0, 0), Pt(1, 1)}).Contains(Pt(0.5, 0.5)) {
		t.Errorf("degenerate polygon contains a point")
	}
	tri := Polygon{Pt(0, -40), Pt(40, 30), Pt(-40, 30)}
	if !tri.Contains(Pt(0, 0)) || tri.Contains(Pt(35, -30)) {
		t.Errorf("triangle hit test wrong")
	}
}

func TestBounds(t *testing.T) {
	b := Polygon{Pt(3, -2), Pt(-1, 7), Pt(5, 1)}.Bounds()
	if b.Min != Pt(-1, -2) || b.Max != Pt(5, 7) {
		t.Fatalf("bounds = %v", b)
	}
}

func TestRegularPolygon(t *testing.T) {
	hex := RegularPolygon(6, 40)
	if len(hex) != 6 {
		t.Fatalf("len = %d", len(hex))
	}
	if !near(hex[0], Pt(40, 0)) {
		t.Fatalf("first vertex %v", hex[0])
	}
	for _, v := range hex {
		if math.Abs(math.Hypot(v.X, v.Y)-40) > eps {
			t.Fatalf("vertex %v off the circle", v)
		}
	}
}

func TestFinite(t *testing.T) {
	if !Finite(Pt(1, -2)) {
		t.Errorf("ordinary point reported non-finite")
	}
	for _, p := range []Point{Pt(math.NaN(), 0), Pt(0, math.Inf(1)), Pt(math.Inf(-1), 3)} {
		if Finite(p) {
			t.Errorf("%v reported finite", p)
		}
	}
}

func TestRings(t *testing.T) {
	polys := []Polygon{square(), {Pt(1, 2)}}
	got := Rings(polys)
	if len(got) != 2 || len(got[0]) != 4 || got[0][2] != [2]float64{10, 10} || got[1][0] != [2]float64{1, 2} {
		t.Fatalf("rings = %v", got)
	}
	got[0][0] = [2]float64{99, 99}
	if polys[0][0] != Pt(0, 0) {
		t.Fatalf("rings share storage with polygons")
	}
}

func TestParsePoint(t *testing.T) {
	p, err := ParsePoint(" 3.5, -2 ")
	if err != nil || p != Pt(3.5, -2) {
		t.Fatalf("ParsePoint = %v, %v", p, err)
	}
	for _, in := range []string{"NaN,1", "1,Inf", "-inf,0", "1", "a,b"} {
		if _, err := ParsePoint(in); err == nil {
			t.Errorf("ParsePoint(%q): expected error", in)
		}
	}
	if _, err := ParsePoint("nan,1"); !errors.Is(err, ErrNotFinite) {
		t.Errorf("expected ErrNotFinite, got %v", err)
	}
	poly, err := ParsePolygon("0,0 10,0 10,10")
	if err != nil || len(poly) != 3 || poly.String() != "0,0 10,0 10,10" {
		t.Fatalf("ParsePolygon = %v, %v", poly, err)
	}
}
