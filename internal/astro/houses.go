package astro

// HouseOf finds the house 1..12 whose half-open interval
// [cusp[i], cusp[i+1]) contains the longitude, going forward with
// wraparound. Cusps and the point are rebased on cusp 1 so the scan is a
// plain ascending lookup with no modular comparisons; the last interval
// catches the wraparound by construction. A longitude exactly on a cusp
// belongs to the house starting there.
func HouseOf(lon float64, cusps [12]float64) int {
	base := Normalize(cusps[0])
	p := Normalize(lon - base)

	var rel [12]float64
	for i, c := range cusps {
		rel[i] = Normalize(c - base)
	}

	// rel[0] == 0, so the scan always terminates at house 1.
	for i := 11; i >= 0; i-- {
		if p >= rel[i] {
			return i + 1
		}
	}
	return 1
}
