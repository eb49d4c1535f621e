//go:build race

package feed

import "golang.org/x/crypto/bcrypt"

func secretHashCost() int {
	// Reduce cost for race-enabled builds so test suites can run with strict timeouts.
	return bcrypt.DefaultCost
}
