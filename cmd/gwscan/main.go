// Gwscan finds RTLS gateways on an IPv4 network.
//
// Every address in the range is checked for an open HTTP port and then
// fingerprinted as a G1 or MG3 gateway. Detected gateways are written to
// stdout as JSON (or a table), logs and progress go to stderr.
//
// Usage:
//
//	gwscan [RANGE] [flags]
//
// RANGE is "start..end" (e.g. 192.168.1.1..192.168.1.255) or a CIDR prefix.
// Without it the /24 around this host's IPv4 address is scanned.
// See 'gwscan --help' for available flags.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rtls-ctl/gwscan/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gwscan [RANGE]",
	Short: "Scan an IPv4 range for RTLS gateways",
	Long: `Scan an IPv4 address range for G1 and MG3 RTLS gateways.

Each address is first checked for an open HTTP port. Reachable hosts are
then probed with both gateway fingerprints at once; the first one to
answer with a valid MAC address identifies the gateway.

If no range is given, x.y.z.1..x.y.z.255 around this host's IPv4 address
is scanned.`,
	Example: `  # Scan the local /24
  gwscan

  # Scan an explicit range with more logging
  gwscan 10.0.0.1..10.0.3.255 -v

  # Scan a prefix and show a table with live progress
  gwscan 172.16.8.0/22 --format table --progress

  # Lower the load on slow links
  gwscan 192.168.1.1..192.168.1.255 -c 32 --race-timeout 5s`,
	Args:    cobra.MaximumNArgs(1),
	Version: version.Version,
	RunE:    runScan,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceErrors = true

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Get())
	},
}
