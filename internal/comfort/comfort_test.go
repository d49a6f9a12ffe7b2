package comfort

import "testing"

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		value      float64
		acceptable float64
		want       Level
	}{
		{"far below half", 100, 600, LevelReallyBad},
		{"just under half", 299.9, 600, LevelReallyBad},
		{"exactly half", 300, 600, LevelBad},
		{"below acceptable", 599, 600, LevelBad},
		{"exactly acceptable", 600, 600, LevelGood},
		{"within 120 percent", 700, 600, LevelGood},
		{"exactly 120 percent", 720, 600, LevelGood},
		{"above 120 percent", 721, 600, LevelReallyGood},
		{"scenario co2 300 at threshold 600", 300, 600, LevelBad},
		{"zero value", 0, 45, LevelReallyBad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.value, tt.acceptable); got != tt.want {
				t.Fatalf("Classify(%v, %v) = %v, want %v", tt.value, tt.acceptable, got, tt.want)
			}
		})
	}
}

// Being under the acceptable value must score worse than being over it by
// the same margin; flattening this into a symmetric band is a regression.
func TestClassifyAsymmetry(t *testing.T) {
	acceptable := 100.0

	if got := Classify(90, acceptable); got != LevelBad {
		t.Fatalf("10%% under acceptable = %v, want %v", got, LevelBad)
	}
	if got := Classify(110, acceptable); got != LevelGood {
		t.Fatalf("10%% over acceptable = %v, want %v", got, LevelGood)
	}
}

func TestWorstOf(t *testing.T) {
	rb, b, g, rg := LevelReallyBad, LevelBad, LevelGood, LevelReallyGood

	tests := []struct {
		name   string
		levels []*Level
		want   *Level
	}{
		{"really bad dominates", []*Level{&rb, &g, nil, &g}, &rb},
		{"all unknown", []*Level{nil, nil, nil, nil}, nil},
		{"good beats really good", []*Level{&g, &rg}, &g},
		{"bad beats good", []*Level{&g, &b, &rg}, &b},
		{"single unknown excluded", []*Level{nil, &rg}, &rg},
		{"empty", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WorstOf(tt.levels...)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("WorstOf() = %v, want %v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Fatalf("WorstOf() = %v, want %v", *got, *tt.want)
			}
		})
	}
}

func TestWorstOfDoesNotAliasInput(t *testing.T) {
	g := LevelGood
	got := WorstOf(&g)
	if got == &g {
		t.Fatal("WorstOf returned a pointer into its input")
	}
	*got = LevelReallyBad
	if g != LevelGood {
		t.Fatal("mutating the result changed the input")
	}
}

func TestDistributionTotalsMatchRoomCount(t *testing.T) {
	rb, g := LevelReallyBad, LevelGood

	var empty Distribution
	if empty.Total() != 0 {
		t.Fatalf("empty distribution total = %d, want 0", empty.Total())
	}

	var d Distribution
	statuses := []*Level{&rb, &g, nil, &g, nil}
	for _, s := range statuses {
		d.Add(s)
	}

	if d.Total() != len(statuses) {
		t.Fatalf("distribution total = %d, want %d", d.Total(), len(statuses))
	}
	if d.ReallyBad != 1 || d.Good != 2 || d.Unknown != 2 {
		t.Fatalf("unexpected buckets: %+v", d)
	}
}

func TestDistributionUnknownLevelFallsInUnknownBucket(t *testing.T) {
	bogus := Level("FINE_I_GUESS")
	var d Distribution
	d.Add(&bogus)
	if d.Unknown != 1 || d.Total() != 1 {
		t.Fatalf("unexpected buckets for invalid level: %+v", d)
	}
}
