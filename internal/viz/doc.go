// Package viz renders reactor solutions in the terminal.
//
// The package draws axial profiles as ASCII line charts and formats
// run summaries as styled panels:
//
//   - [ProfilePlot]: asciigraph chart of one profile variable vs position
//   - [Summary]: bordered panel of outlet quantities for a run
//
// Interactive browsing of profiles lives in the tui package; viz only
// produces strings suitable for printing to stdout.
package viz
