package fu

func Mean(a []float64) float64 {
	var c float64
	for _, x := range a {
		c += x
	}
	return c / float64(len(a))
}

func Mse(a, b []float64) float64 {
	var c float64
	for i, x := range a {
		q := x - b[i]
		c += q * q
	}
	return c / float64(len(a))
}

/*
Flatnr concatenates rows into one slice, row-major
*/
func Flatnr(a [][]float64) []float64 {
	n := 0
	for _, x := range a {
		n += len(x)
	}
	r := make([]float64, n)
	i := 0
	for _, x := range a {
		copy(r[i:i+len(x)], x)
		i += len(x)
	}
	return r
}

/*
Indmaxd returns index of the first maximal value, or -1 for an empty slice
*/
func Indmaxd(a []float64) int {
	if len(a) == 0 {
		return -1
	}
	j := 0
	for i, x := range a[1:] {
		if x > a[j] {
			j = i + 1
		}
	}
	return j
}

func Maxi(a int, b ...int) int {
	for _, x := range b {
		if x > a {
			a = x
		}
	}
	return a
}
