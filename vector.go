package main

func sumV(v []float64) (s float64) {
	for i := 0; i < len(v); i++ {
		s += v[i]
	}
	return s
}

func divVS(dst []float64, s float64) {
	for i := 0; i < len(dst); i++ {
		dst[i] /= s
	}
}

func sqV(v []float64) (res []float64) {
	res = make([]float64, len(v))
	for i := 0; i < len(v); i++ {
		res[i] = v[i] * v[i]
	}
	return res
}

func toFloat(v []int) (res []float64) {
	res = make([]float64, len(v))
	for i := 0; i < len(v); i++ {
		res[i] = float64(v[i])
	}
	return res
}

func rng(n int) []int {
	r := make([]int, n)
	for i := 0; i < n; i++ {
		r[i] = i
	}
	return r
}
