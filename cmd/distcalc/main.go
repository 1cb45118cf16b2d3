// Command distcalc geocodes Japanese addresses and measures the straight-line
// distance between them. It runs either as an HTTP service or as a one-shot CLI.
//
// Usage:
//
//	distcalc serve
//	distcalc resolve 東京駅 渋谷駅
//	distcalc resolve 渋谷駅            # measured from the default base address
//	distcalc reverse 35.681236 139.767125
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
