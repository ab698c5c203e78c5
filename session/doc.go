// Package session holds the state of one calculator run and executes input
// lines against it.
//
// A [Session] owns the angle [Mode] and the history of results. Each input
// line is classified into a [Command] and executed by [Session.Execute],
// which returns a [Reply]: the lines to show and whether to stop. Replies
// carry a [Kind] per line so that front-ends can style output without
// parsing it.
//
// A Session is not safe for concurrent use. It is owned by the loop that
// reads input.
package session
