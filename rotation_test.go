package monooled

import "testing"

func TestRotationMap(t *testing.T) {
	const w, h = 16, 8

	tests := []struct {
		name   string
		r      Rotation
		x, y   int
		wx, wy int
	}{
		{"0° origin", Rotate0, 0, 0, 0, 0},
		{"0° corner", Rotate0, 15, 7, 15, 7},
		{"90° origin", Rotate90, 0, 0, 15, 0},
		{"90° point", Rotate90, 2, 5, 10, 2},
		{"180° origin", Rotate180, 0, 0, 15, 7},
		{"180° point", Rotate180, 3, 1, 12, 6},
		{"270° origin", Rotate270, 0, 0, 0, 7},
		{"270° point", Rotate270, 2, 5, 5, 5},
		{"unknown is identity", Rotation(7), 4, 3, 4, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := tt.r.Map(tt.x, tt.y, w, h)
			if x != tt.wx || y != tt.wy {
				t.Errorf("Map(%d, %d) = (%d, %d), want (%d, %d)", tt.x, tt.y, x, y, tt.wx, tt.wy)
			}
		})
	}
}

// Every logical pixel must land on a distinct physical pixel inside the panel.
func TestRotationMapIsBijective(t *testing.T) {
	const w, h = 16, 8

	for _, r := range []Rotation{Rotate0, Rotate90, Rotate180, Rotate270} {
		lw, lh := r.Size(w, h)
		seen := make(map[[2]int]bool)
		for y := 0; y < lh; y++ {
			for x := 0; x < lw; x++ {
				px, py := r.Map(x, y, w, h)
				if px < 0 || px >= w || py < 0 || py >= h {
					t.Fatalf("%v: Map(%d, %d) = (%d, %d) outside %dx%d", r, x, y, px, py, w, h)
				}
				if seen[[2]int{px, py}] {
					t.Fatalf("%v: Map(%d, %d) = (%d, %d) hit twice", r, x, y, px, py)
				}
				seen[[2]int{px, py}] = true
			}
		}
		if len(seen) != w*h {
			t.Errorf("%v: covered %d pixels, want %d", r, len(seen), w*h)
		}
	}
}

func TestRotationSize(t *testing.T) {
	tests := []struct {
		r      Rotation
		ww, wh int
	}{
		{Rotate0, 128, 64},
		{Rotate90, 64, 128},
		{Rotate180, 128, 64},
		{Rotate270, 64, 128},
	}

	for _, tt := range tests {
		if w, h := tt.r.Size(128, 64); w != tt.ww || h != tt.wh {
			t.Errorf("%v.Size(128, 64) = (%d, %d), want (%d, %d)", tt.r, w, h, tt.ww, tt.wh)
		}
	}
}

func TestRotationString(t *testing.T) {
	if got := Rotate270.String(); got != "270°" {
		t.Errorf("Rotate270.String() = %q, want %q", got, "270°")
	}
	if got := Rotation(9).String(); got != "Rotation(9)" {
		t.Errorf("Rotation(9).String() = %q, want %q", got, "Rotation(9)")
	}
}
