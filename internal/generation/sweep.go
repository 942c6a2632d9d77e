package generation

// Sweep returns the linearly spaced controlled-variable values of a
// measurement: start, start+step and so on, points entries in total.
func Sweep(start, step float64, points int) []float64 {
	if points < 1 {
		return nil
	}
	values := make([]float64, points)
	for i := range values {
		values[i] = start + float64(i)*step
	}
	return values
}
