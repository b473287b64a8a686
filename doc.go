// Package finpulse implements the authentication core of the FinPulse
// personal finance application: credential verification, JWT session
// issuance, and the per-request route authorization gate.
//
// Session lifecycle:
//   - Tokens carry one explicit claims struct (JWTClaims) with the user id,
//     display name, email, and onboarded flag. There is no map-claims
//     patching; every read site sees the same typed payload.
//   - The onboarded flag is monotonic. While a token still says false, each
//     re-validation performs one read of the user record; once the store
//     says true the flag is re-signed into the token and never re-checked
//     or downgraded for the remainder of the token's life.
//
// Route gate:
//   - Gate is a pure decision function over (path, session). Paths are
//     classified as public, onboarding, or protected; anything unknown is
//     protected. The fiber middleware in http.go evaluates the gate once
//     per request before any page handler runs.
package finpulse
