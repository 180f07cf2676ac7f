package oddsmath

import "math"

// Conversões entre odds americanas e decimais.
// A política aqui é leniente: entrada inválida vira multiplicador neutro,
// nunca erro. Validação de slip/stake é responsabilidade do chamador.

// AmericanToDecimal converte odds americanas para decimais
// +150 → 2.50, -150 → 1.67
// Zero ou não-finito → 1 (multiplicador neutro, remove a leg do parlay)
func AmericanToDecimal(american float64) float64 {
	if !isFinite(american) || american == 0 {
		return 1
	}
	if american > 0 {
		return american/100 + 1
	}
	return 100/math.Abs(american) + 1
}

// DecimalToAmerican converte odds decimais para americanas
// 2.50 → +150, 1.67 → -150
// Não-finito ou <= 1 → 0 (odd degenerada)
func DecimalToAmerican(decimal float64) float64 {
	if !isFinite(decimal) || decimal <= 1 {
		return 0
	}
	if decimal >= 2 {
		return math.Round((decimal - 1) * 100)
	}
	return math.Round(-100 / (decimal - 1))
}

// ParlayDecimal retorna o produto das odds decimais de cada leg
// Produto vazio = 1
func ParlayDecimal(american []float64) float64 {
	total := 1.0
	for _, a := range american {
		total *= AmericanToDecimal(a)
	}
	return total
}

// CombinedAmerican calcula a odd americana combinada de um parlay
// Com uma única leg reproduz a odd da leg (ida e volta, arredondada)
func CombinedAmerican(american []float64) float64 {
	return DecimalToAmerican(ParlayDecimal(american))
}

// PotentialWin calcula o lucro potencial de um stake na odd americana dada
func PotentialWin(stake, american float64) float64 {
	switch {
	case american > 0:
		return stake * american / 100
	case american < 0:
		return stake * 100 / math.Abs(american)
	default:
		return 0
	}
}

// TotalPayout = stake + lucro potencial
func TotalPayout(stake, american float64) float64 {
	return stake + PotentialWin(stake, american)
}

// ImpliedProbability retorna a probabilidade implícita da odd americana
// +100 → 0.50, -200 → 0.667
func ImpliedProbability(american float64) float64 {
	return 1 / AmericanToDecimal(american)
}

func isFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}
