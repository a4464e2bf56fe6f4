// Package cli implements the doorcut command-line interface.
//
// The commands derive door-and-frame dimensions, list the sheet catalog,
// plan and write per-face DXF cutting drawings, import door schedules from
// spreadsheets, and inspect drawings written earlier. The CLI is built with
// cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - dims: print every derived dimension and cutout for one door
//   - sheets: list the stock sheet catalog
//   - generate: write face DXFs (and optional PDF, labels, XLSX) for a door or schedule
//   - import: convert a CSV or XLSX schedule to JSON, YAML or TOML
//   - inspect: read a face DXF back
//   - backup: export or restore config and catalog
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli
