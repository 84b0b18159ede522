// Package cli is the interactive interestnet command-line client.
//
// App wires the config and the API client and runs a REPL on stdin. The
// session token lives only in memory: it is lost on logout, on account
// deletion and when the program exits.
package cli
