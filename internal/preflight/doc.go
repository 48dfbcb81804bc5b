// Package preflight provides readiness checks for the filesystem paths and
// services dvdshop depends on.
//
// These checks run in two contexts:
//   - The CLI "dvdshop status" command runs RunAll and renders the results.
//   - The server runs RunAll at startup and logs failures as warnings; a
//     failing cache never blocks pricing.
//
// Each check is gated by its config toggle -- disabled features are skipped.
package preflight
