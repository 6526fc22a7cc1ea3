// Copyright (c) 2026 Bookstore API. All rights reserved.
// Author: ukjong.dev@gmail.com

// Package isbn validates International Standard Book Numbers.
//
// # Overview
//
// Both the legacy 10-digit and the modern 13-digit forms are accepted.
// Separators (spaces and hyphens) are ignored, so "978-89-6626-123-5" and
// "9788966261235" validate identically. For the 13-digit form the final
// digit is verified against the EAN-13 weighted checksum.
package isbn

import "strings"

// Normalize strips spaces and hyphens from a raw ISBN string.
func Normalize(raw string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, raw)
}

// Valid reports whether raw is a structurally valid ISBN-10 or ISBN-13.
//
// ISBN-10 is checked for shape only (ten digits, or nine digits followed by
// the check character X). ISBN-13 additionally has its checksum verified.
func Valid(raw string) bool {
	normalized := Normalize(raw)

	switch len(normalized) {
	case 10:
		return validShape10(normalized)
	case 13:
		return allDigits(normalized) && checkDigit13(normalized[:12]) == int(normalized[12]-'0')
	default:
		return false
	}
}

// checkDigit13 computes the EAN-13 check digit for the first twelve digits.
//
// Digits are weighted 1, 3, 1, 3, ... left to right; the check digit is the
// value that rounds the weighted sum up to the next multiple of ten.
func checkDigit13(first12 string) int {
	sum := 0
	for i := 0; i < 12; i++ {
		digit := int(first12[i] - '0')
		if i%2 == 0 {
			sum += digit
		} else {
			sum += digit * 3
		}
	}
	return (10 - sum%10) % 10
}

// validShape10 accepts ten digits, allowing a trailing X check character.
func validShape10(s string) bool {
	if !allDigits(s[:9]) {
		return false
	}
	last := s[9]
	return (last >= '0' && last <= '9') || last == 'X' || last == 'x'
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
