// Package auth holds the credential and authorization core of faculty.
//
// Passwords are never stored, only their salted hashes (bcrypt by default,
// argon2id when configured). A successful login yields a signed bearer token
// carrying the user id and role, valid for a fixed window (7 days unless
// configured otherwise).
//
// Tokens are self contained: verifying one only needs the process secret,
// nothing is looked up in the database. The flip side is that a role change
// only takes effect after the old token expires, there is no revocation list.
//
// Authorization is a plain equality check between the role in the token and
// the role required by a route. pl does not imply lecturer, lecturer does not
// imply student, and so on.
//
// Email addresses are compared case-insensitively (see EmailKey) both when
// registering and when logging in, while the casing used at registration is
// kept for display.
package auth
