// Package kev is a layered environment-variable store.
//
// A key is either bare ("API_KEY") or namespaced ("os:API_KEY",
// ".env.local:API_KEY"). Bare keys resolve through an in-memory cache and
// then an ordered list of sources (the process environment and dotenv
// files); the first non-empty hit is cached together with its provenance and
// stays cached until it is set again or cleared. Namespaced keys go straight
// to one backend and are never cached.
//
// The empty string means "not found" everywhere: a source holding KEY= is
// indistinguishable from a source without KEY.
//
// Malformed keys, missing required values, unparseable typed values and
// destructive bulk operations on live backends are programmer errors and
// panic with an *offensive.Violation. Absence never panics.
//
// Set and Unset on the "os" namespace mutate the real process environment,
// which is inherited by child processes started afterwards.
package kev
