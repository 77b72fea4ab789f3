package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/carrace/internal/platform/tui"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Detect key codes for the configuration file",
	Long: `Asks you to press the keys you want for steering and quitting and
prints the codes to put in the configuration file.

Examples:
  carrace keys
  carrace keys >> ~/.arcade/configs/carrace.yaml`,
	Args: cobra.NoArgs,
	Run:  runKeys,
}

// keyPrompts pairs each prompt with the configuration key it fills.
var keyPrompts = []struct {
	prompt string
	field  string
}{
	{"steer left", "left_arrow_key"},
	{"steer right", "right_arrow_key"},
	{"quit", "quit_key"},
}

func runKeys(_ *cobra.Command, _ []string) {
	prompts := make([]string, len(keyPrompts))
	for i, p := range keyPrompts {
		prompts[i] = p.prompt
	}

	detected, err := tui.RunKeyDetector(prompts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if detected == nil {
		fmt.Fprintln(os.Stderr, "Aborted.")
		return
	}

	for i, d := range detected {
		fmt.Printf("%s: %d # %s\n", keyPrompts[i].field, d.Code, tui.KeyName(d.Code))
	}
}
