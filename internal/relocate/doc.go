// Package relocate moves downloaded videos out of the working directory and
// into the media server library.
//
// A Relocator drives one run through a fixed sequence of states: validate
// preconditions, select matching entries, optionally confirm with the
// operator, copy each entry into the library and remove the original, hand
// the result to the media server account, and finally ask the configured
// notifiers to rescan. Collisions with existing library entries are skipped;
// every other failure aborts the run.
//
// Filesystem listing, ownership changes, validation, and notification are
// injected through Dependencies so the state machine is testable without
// root privileges or a running media server. Console presentation is left to
// the Reporter supplied by the caller.
package relocate
