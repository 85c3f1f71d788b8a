// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

package auth

// # Confirmation-Code Constraints

const (
	// MaxCodeAttempts is the number of failed verification attempts after
	// which a confirmation code is consumed. Bounds brute-force guessing of
	// a short code within its validity window; on top of this the global
	// per-IP rate limiter applies. Dedicated signup-endpoint rate limiting
	// remains a known hardening gap.
	MaxCodeAttempts = 5

	// EmailMaxLength bounds the stored email address (RFC 5321 limit).
	EmailMaxLength = 254
)
