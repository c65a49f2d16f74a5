// Package preflight provides readiness checks for the filesystem paths and
// external binaries a run depends on.
//
// The pipeline calls RunAll after probing the input and before extracting
// any frames, so a full scratch disk or an unwritable output directory fails
// the run before minutes of extraction work. The doctor command uses the
// individual checks to display environment health.
package preflight
