package quiz

import "testing"

func TestGrade(t *testing.T) {
	tests := []struct {
		correct int
		total   int
		want    float64
	}{
		{3, 4, 3.75},
		{0, 3, 0.00},
		{5, 5, 5.00},
		{1, 4, 1.25},
		{2, 2, 5.00},
		{1, 3, 1.67},
		{2, 3, 3.33},
		{1, 6, 0.83},
		{0, 0, 0.00},
	}

	for _, tt := range tests {
		got := Grade(tt.correct, tt.total)
		if got != tt.want {
			t.Errorf("Grade(%d, %d) = %v, want %v", tt.correct, tt.total, got, tt.want)
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.625, 0.63},
		{3.7444, 3.74},
		{1.6666666, 1.67},
		{0, 0},
		{5, 5},
	}

	for _, tt := range tests {
		got := Round2(tt.in)
		if got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
