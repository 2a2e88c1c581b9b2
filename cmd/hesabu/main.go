// Hesabu — MCP server for business accounting with a bilingual
// natural-language routing front end.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hesabu",
	Short: "Hesabu — MCP accounting server with bilingual natural-language tool routing.",
	Long: `Hesabu exposes a business accounting API as narrow, typed MCP tools
(invoices, orders, contacts, products, deliveries, financial reports) and
routes free-text questions in English or Indonesian to the right tool with
pre-filled parameters.`,
	RunE:          runServe, // Default to serve mode.
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, routeCmd, versionCmd)
	_ = godotenv.Load()

}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}
