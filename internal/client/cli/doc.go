// Package cli implements the visitor-register command.
//
// The root command registers one visitor against the makerspace backend and
// exits with a code describing the outcome:
//
//	0   Accepted
//	2   Rejected (local validation or server 4xx)
//	3   AlreadyExists
//	4   TransportFailure
//	64  usage error
//
// The password is only accepted on stdin (--password-stdin) so it never shows
// up in process listings. Subcommands: list (visits in a time window),
// signin and signout (card reader visits) and version.
package cli
