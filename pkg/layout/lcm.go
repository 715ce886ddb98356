package layout

import "math/big"

// LCM returns the least common multiple of sizes. Empty input yields 1 and a
// single size yields itself. The reduction pairs halves recursively on
// arbitrary precision integers so intermediate products stay small.
func LCM(sizes []int) int {
	values := make([]*big.Int, 0, len(sizes))
	for _, size := range sizes {
		values = append(values, big.NewInt(int64(size)))
	}
	return int(lcmOf(values).Int64())
}

// Max returns the largest size, or 0 for empty input.
func Max(sizes []int) int {
	max := 0
	for _, size := range sizes {
		if size > max {
			max = size
		}
	}
	return max
}

func lcmOf(values []*big.Int) *big.Int {
	switch len(values) {
	case 0:
		return big.NewInt(1)
	case 1:
		return new(big.Int).Set(values[0])
	case 2:
		return lcmPair(values[0], values[1])
	}
	half := len(values) / 2
	return lcmPair(lcmOf(values[:half]), lcmOf(values[half:]))
}

func lcmPair(a, b *big.Int) *big.Int {
	gcd := new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
	if gcd.Sign() == 0 {
		return big.NewInt(0)
	}
	product := new(big.Int).Mul(a, b)
	product.Abs(product)
	return product.Quo(product, gcd)
}
