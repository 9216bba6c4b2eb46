package games

// DefaultKenoPayouts maps picks count -> per-hits multiplier, so
// table[k][hits] is the multiplier for k picks with that many hits.
// Authoritative game content, supplied as configuration, not derived;
// top prize is 100000x for 10/10.
func DefaultKenoPayouts() map[int][]int64 {
	return map[int][]int64{
		1:  {0, 3},
		2:  {0, 2, 12},
		3:  {0, 1, 3, 46},
		4:  {0, 1, 2, 5, 91},
		5:  {0, 0, 2, 4, 21, 387},
		6:  {0, 0, 1, 3, 7, 40, 1500},
		7:  {0, 0, 1, 2, 4, 20, 100, 7500},
		8:  {0, 0, 0, 2, 3, 9, 44, 335, 25000},
		9:  {0, 0, 0, 1, 2, 5, 25, 142, 1000, 40000},
		10: {0, 0, 0, 0, 2, 4, 17, 70, 400, 1800, 100000},
	}
}
