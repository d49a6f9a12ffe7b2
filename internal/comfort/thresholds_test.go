package comfort

import "testing"

func TestComputeAcceptableReferenceRoom(t *testing.T) {
	got := ComputeAcceptable(70)

	if got.CO2 != 800 {
		t.Errorf("co2 = %v, want 800", got.CO2)
	}
	if got.Decibel != 35 {
		t.Errorf("decibel = %v, want 35", got.Decibel)
	}
	if got.Humidity != 45 {
		t.Errorf("humidity = %v, want 45", got.Humidity)
	}
	if got.Temperature != 21 {
		t.Errorf("temperature = %v, want 21", got.Temperature)
	}
}

func TestComputeAcceptableSmallRoom(t *testing.T) {
	// 35m² is half the reference: 800*0.5^0.7 ≈ 493, floored at 600;
	// decibel 35 + (0.5-1)*2 = 34 inside the clamp band.
	got := ComputeAcceptable(35)

	if got.CO2 != 600 {
		t.Errorf("co2 = %v, want 600", got.CO2)
	}
	if got.Decibel != 34 {
		t.Errorf("decibel = %v, want 34", got.Decibel)
	}
}

func TestComputeAcceptableCO2Floor(t *testing.T) {
	sizes := []float64{0.5, 1, 5, 10, 20, 35, 40}
	for _, size := range sizes {
		if got := ComputeAcceptable(size); got.CO2 < 600 {
			t.Errorf("size %v: co2 = %v, want >= 600", size, got.CO2)
		}
	}
}

func TestComputeAcceptableCO2NonDecreasing(t *testing.T) {
	sizes := []float64{1, 10, 35, 50, 70, 100, 150, 250, 500, 1000}
	prev := 0.0
	for _, size := range sizes {
		got := ComputeAcceptable(size)
		if got.CO2 < prev {
			t.Fatalf("co2 decreased: size %v gave %v after %v", size, got.CO2, prev)
		}
		prev = got.CO2
	}
}

func TestComputeAcceptableDecibelClamped(t *testing.T) {
	sizes := []float64{1, 10, 35, 70, 150, 300, 1000, 10000}
	for _, size := range sizes {
		got := ComputeAcceptable(size)
		if got.Decibel < 30 || got.Decibel > 40 {
			t.Errorf("size %v: decibel = %v, want within [30, 40]", size, got.Decibel)
		}
	}
}

func TestComputeAcceptableConstants(t *testing.T) {
	for _, size := range []float64{5, 70, 400} {
		got := ComputeAcceptable(size)
		if got.Humidity != 45 {
			t.Errorf("size %v: humidity = %v, want 45", size, got.Humidity)
		}
		if got.Temperature != 21 {
			t.Errorf("size %v: temperature = %v, want 21", size, got.Temperature)
		}
	}
}
