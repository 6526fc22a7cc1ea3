// Copyright (c) 2026 Bookstore API. All rights reserved.
// Author: ukjong.dev@gmail.com

package isbn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid_ISBN13WithCorrectChecksum(t *testing.T) {
	// 978-0-13-468599-1 is "The Go Programming Language" (2nd printing line).
	assert.True(t, Valid("9780134685991"))
	assert.True(t, Valid("978-0-13-468599-1"))
	assert.True(t, Valid("978 0 13 468599 1"))
}

func TestValid_ISBN13WithWrongChecksum(t *testing.T) {
	// Same digits with the check digit altered.
	assert.False(t, Valid("9780134685990"))
	assert.False(t, Valid("978-0-13-468599-2"))
}

func TestValid_ISBN10ShapeOnly(t *testing.T) {
	assert.True(t, Valid("0134685997"))
	assert.True(t, Valid("0-13-468599-7"))
	// Trailing X check character is legal for ISBN-10.
	assert.True(t, Valid("043942089X"))
	assert.True(t, Valid("043942089x"))
}

func TestValid_RejectsWrongLengthOrCharset(t *testing.T) {
	assert.False(t, Valid(""))
	assert.False(t, Valid("12345"))
	assert.False(t, Valid("97801346859911"))   // 14 digits
	assert.False(t, Valid("97801346859AB"))    // letters in 13-digit form
	assert.False(t, Valid("X134685997"))       // X anywhere but last in 10-digit form
	assert.False(t, Valid("-- --- ------ -"))  // separators only
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "9780134685991", Normalize("978-0 13-468599 1"))
}
