package gamble

import "math"

// FullTurn один полный оборот колеса в радианах
const FullTurn = 2 * math.Pi

// PointerAngle положение стрелки в неповернутом пространстве колеса (строго вверх)
const PointerAngle = -math.Pi / 2

// Arc полуоткрытый угловой интервал [Start, End) сектора при нулевом повороте
type Arc struct {
	Start float64
	End   float64
}

// Center возвращает середину дуги
func (a Arc) Center() float64 {
	return a.Start + (a.End-a.Start)/2
}

// Size возвращает угловой размер дуги
func (a Arc) Size() float64 {
	return a.End - a.Start
}

// Contains проверяет, лежит ли угол в [Start, End)
func (a Arc) Contains(angle float64) bool {
	return angle >= a.Start && angle < a.End
}

// Normalize приводит угол к диапазону [0, 2π)
func Normalize(angle float64) float64 {
	a := math.Mod(angle, FullTurn)
	if a < 0 {
		a += FullTurn
	}
	if a >= FullTurn {
		a = 0
	}
	return a
}

// boundary угол границы после первых n секторов
func (w *Wheel) boundary(cumulative int) float64 {
	return float64(cumulative) / float64(w.totalWeight) * FullTurn
}

// ArcOf возвращает дугу сектора i. Границы дуг это накопленные доли весов.
func (w *Wheel) ArcOf(i int) Arc {
	cumulative := 0
	for j := 0; j < i; j++ {
		cumulative += w.outcomes[j].Weight
	}
	return Arc{
		Start: w.boundary(cumulative),
		End:   w.boundary(cumulative + w.outcomes[i].Weight),
	}
}

// IndexAtAngle возвращает сектор, дуга которого содержит угол (в неповернутом пространстве).
// Если ни одна дуга не подошла, возвращается 0.
func (w *Wheel) IndexAtAngle(angle float64) int {
	a := Normalize(angle)

	cumulative := 0
	for i, o := range w.outcomes {
		start := w.boundary(cumulative)
		cumulative += o.Weight
		if a >= start && a < w.boundary(cumulative) {
			return i
		}
	}

	return 0
}

// PointerHit возвращает сектор под стрелкой при заданном повороте колеса (по часовой)
func (w *Wheel) PointerHit(rotation float64) int {
	return w.IndexAtAngle(PointerAngle - rotation)
}

// TargetRotation поворот, при котором центр сектора i оказывается под стрелкой
// после turns полных оборотов
func (w *Wheel) TargetRotation(i, turns int) float64 {
	return float64(turns)*FullTurn + (PointerAngle - w.ArcOf(i).Center())
}
