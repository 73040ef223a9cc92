package cmd

import "github.com/spf13/cobra"

// AttachCLIFlags attaches command line flags to command
func AttachCLIFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringP("port", "p", "", "port the http api listens on")
	rootCmd.PersistentFlags().StringP("workspace", "w", "", "workspace the split manifests are written to")
}
