//go:build !race

package feed

func secretHashCost() int {
	return 14
}
