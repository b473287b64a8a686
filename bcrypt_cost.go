//go:build !race

package finpulse

// passwordHashCost stays above the 12 round floor the credential flow
// requires.
func passwordHashCost() int {
	return 14
}
