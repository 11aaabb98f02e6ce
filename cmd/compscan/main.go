package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/compscan/compscan/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "compscan",
		Short:   "compscan - component dependency graph analyzer",
		Long:    `compscan builds a component dependency graph for a React or Vue project and reports circular dependencies, unused props, dead code, coupling, and hub components.`,
		Version: version.Version,
	}

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				fmt.Println(version.GetFullVersion())
			} else {
				fmt.Printf("compscan version %s\n", version.GetVersion())
			}
		},
	}
	cmd.Flags().BoolP("verbose", "v", false, "Show detailed version information")
	return cmd
}
