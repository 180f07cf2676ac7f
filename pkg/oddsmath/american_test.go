package oddsmath_test

import (
	"math"
	"testing"

	"github.com/clutchcall/ledger-platform/pkg/oddsmath"
)

func TestAmericanToDecimal(t *testing.T) {
	tests := []struct {
		name     string
		american float64
		want     float64
	}{
		{"even odds +100", 100, 2.0},
		{"underdog +150", 150, 2.5},
		{"underdog +200", 200, 3.0},
		{"favorite -110", -110, 1.909090909},
		{"favorite -120", -120, 1.833333333},
		{"favorite -200", -200, 1.5},
		{"zero is neutral", 0, 1.0},
		{"NaN is neutral", math.NaN(), 1.0},
		{"+Inf is neutral", math.Inf(1), 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := oddsmath.AmericanToDecimal(tt.american)
			if math.Abs(got-tt.want) > 0.0001 {
				t.Errorf("AmericanToDecimal(%f) = %f, want %f", tt.american, got, tt.want)
			}
		})
	}
}

func TestDecimalToAmerican(t *testing.T) {
	tests := []struct {
		name    string
		decimal float64
		want    float64
	}{
		{"even odds 2.0", 2.0, 100},
		{"underdog 2.5", 2.5, 150},
		{"underdog 3.0", 3.0, 200},
		{"favorite 1.5", 1.5, -200},
		{"degenerate 1.0", 1.0, 0},
		{"below one", 0.5, 0},
		{"NaN", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := oddsmath.DecimalToAmerican(tt.decimal)
			if math.Abs(got-tt.want) > 1 {
				t.Errorf("DecimalToAmerican(%f) = %f, want %f", tt.decimal, got, tt.want)
			}
		})
	}
}

func TestRoundTripConversion(t *testing.T) {
	tests := []float64{-110, -150, -200, -350, 100, 150, 200, 250, 300, 1200}

	for _, american := range tests {
		decimal := oddsmath.AmericanToDecimal(american)
		got := oddsmath.DecimalToAmerican(decimal)

		// Tolerância de arredondamento
		if math.Abs(got-american) > 1 {
			t.Errorf("round trip: %f -> %f -> %f", american, decimal, got)
		}
	}
}

func TestCombinedAmerican(t *testing.T) {
	t.Run("single leg is identity", func(t *testing.T) {
		for _, odds := range []float64{-200, -110, 100, 150, 300} {
			got := oddsmath.CombinedAmerican([]float64{odds})
			if math.Abs(got-odds) > 1 {
				t.Errorf("CombinedAmerican([%f]) = %f", odds, got)
			}
		}
	})

	t.Run("two legs +150 and -120", func(t *testing.T) {
		// 2.5 * 1.8333... = 4.5833... => +358
		got := oddsmath.CombinedAmerican([]float64{150, -120})
		if math.Abs(got-358) > 1 {
			t.Errorf("CombinedAmerican(+150,-120) = %f, want ~+358", got)
		}
	})

	t.Run("empty slip is degenerate", func(t *testing.T) {
		if got := oddsmath.CombinedAmerican(nil); got != 0 {
			t.Errorf("CombinedAmerican(nil) = %f, want 0", got)
		}
	})

	t.Run("zero-odds leg is dropped from parlay", func(t *testing.T) {
		with := oddsmath.CombinedAmerican([]float64{150, 0})
		without := oddsmath.CombinedAmerican([]float64{150})
		if with != without {
			t.Errorf("zero leg should be neutral: %f != %f", with, without)
		}
	})
}

func TestPotentialWinAndPayout(t *testing.T) {
	tests := []struct {
		name     string
		stake    float64
		american float64
		wantWin  float64
	}{
		{"positive odds", 100, 150, 150},
		{"negative odds", 100, -120, 83.333333},
		{"even odds", 50, 100, 50},
		{"degenerate zero odds", 100, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			win := oddsmath.PotentialWin(tt.stake, tt.american)
			if math.Abs(win-tt.wantWin) > 0.0001 {
				t.Errorf("PotentialWin(%f, %f) = %f, want %f", tt.stake, tt.american, win, tt.wantWin)
			}

			payout := oddsmath.TotalPayout(tt.stake, tt.american)
			if math.Abs(payout-(tt.stake+tt.wantWin)) > 0.0001 {
				t.Errorf("TotalPayout(%f, %f) = %f, want %f", tt.stake, tt.american, payout, tt.stake+tt.wantWin)
			}
		})
	}
}

func TestImpliedProbability(t *testing.T) {
	tests := []struct {
		american float64
		want     float64
	}{
		{100, 0.50},
		{-110, 0.5238},
		{-200, 0.6667},
		{150, 0.40},
		{300, 0.25},
	}

	for _, tt := range tests {
		got := oddsmath.ImpliedProbability(tt.american)
		if math.Abs(got-tt.want) > 0.01 {
			t.Errorf("ImpliedProbability(%f) = %f, want %f", tt.american, got, tt.want)
		}
	}
}
