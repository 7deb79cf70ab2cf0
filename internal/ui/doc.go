// Package ui provides terminal UI components for the gwscan CLI.
//
// Everything here renders to stderr. Stdout is reserved for the scan report
// so that `gwscan 10.0.0.1..10.0.0.255 > gateways.json` keeps working while a
// progress display is shown.
//
// # Components
//
//   - Header: banner with the range and scan parameters
//   - ScanModel: Bubble Tea model with a spinner and a progress bar, fed by
//     the scanner's progress hook
//   - Result: summary box printed when the scan ends
//
// Styles shared with the table report live in styles.go.
//
// # Usage Pattern
//
//	ctx, cancel := context.WithCancel(ctx)
//	defer cancel()
//
//	err := ui.RunScan(os.Stderr, "Scanning 10.0.0.1..10.0.0.255", cancel,
//	    func(onProgress func(scanner.Progress)) error {
//	        s.OnProgress = onProgress
//	        detections, err = s.Scan(ctx, rng)
//	        return err
//	    })
//
// Pressing ctrl+c or q cancels the scan context. The model keeps running until
// the scan returns so partial results are still reported.
//
// # Logging Integration
//
// Log output also goes to stderr. The progress display is only enabled with
// --progress on a terminal; raise the level with -v or GWSCAN_LOG_LEVEL when
// the display is off.
package ui
