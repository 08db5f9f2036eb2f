// Package state persists values handed off between the install and cleanup
// phases of one job.
//
// Three stores are provided:
//
//   - MemoryStore keeps values in memory, scoped by job-run id.
//   - EnvStore reads the step environment and exports values to later steps
//     through the CI platform.
//   - FileStore keeps values in a TOML file, scoped by run id, for runs
//     outside CI where install and cleanup are separate processes.
//
// An empty value means unset.
package state
