package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultBaseAddress is used as the origin when only a destination is given.
const DefaultBaseAddress = "東京都千代田区九段北１丁目８−１０"

// NormalizeAddress folds full-width characters to their canonical forms
// (NFKC) and collapses runs of whitespace, so "東京都　千代田区１−１" and
// "東京都 千代田区1−1" reach the providers identically.
func NormalizeAddress(address string) (string, error) {
	s := norm.NFKC.String(address)
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return "", ErrEmptyAddress
	}
	return s, nil
}
