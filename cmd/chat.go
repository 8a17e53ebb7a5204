package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat [question]",
	Short: "Ask the help desk assistant one question",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		a := newAssistant(ctx, nil)
		fmt.Println(a.GetResponse(ctx, strings.Join(args, " ")))
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
