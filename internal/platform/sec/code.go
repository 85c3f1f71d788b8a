// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

package sec

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// codeAlphabet excludes visually ambiguous characters (0/O, 1/I/L) because
// the code is transcribed by hand from an email.
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// GenerateConfirmationCode produces a random confirmation code of the given
// length drawn from [codeAlphabet].
func GenerateConfirmationCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("sec: confirmation code length must be positive")
	}

	buffer := make([]byte, length)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("sec: failed to read random bytes: %w", err)
	}

	for i, b := range buffer {
		buffer[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}

	return string(buffer), nil
}

// HashCode hashes a confirmation code with bcrypt before it is stored.
//
// Codes are short and low-entropy compared to real secrets, so a slow hash
// at rest matters more here than it would for a 32-byte random token.
func HashCode(plainCode string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainCode), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash confirmation code: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckCodeHash compares a plain-text confirmation code with its stored hash
// using bcrypt's constant-time comparison.
func CheckCodeHash(plainCode, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainCode))
	return err == nil
}
