// Package preflight provides the precondition checks mvvid runs before it
// touches the filesystem, plus the readiness checks shown by "mvvid check".
//
// These checks run in two contexts:
//   - Every relocation run calls CheckWorkingDirectory and CheckPrivileges
//     through Validate. A failure aborts the run before any listing.
//   - The "mvvid check" command calls RunAll to display library access,
//     scanner availability, and media server reachability.
//
// Checks never mutate anything; each returns a Result.
package preflight
