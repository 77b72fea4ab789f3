// carrace is a terminal game: steer a block left and right to dodge obstacles
// that fall faster and faster.
//
// Usage:
//
//	carrace                  - Play (same as carrace play)
//	carrace play             - Play a game
//	carrace keys             - Detect the key codes your terminal sends
//	carrace config show      - Print the resolved configuration
//	carrace config schema    - Print the JSON Schema for config files
//	carrace config check     - Validate a configuration file
//
// Global flags:
//
//	--config <path>      - Configuration file (YAML or JSON)
//	--difficulty <name>  - easy, normal, hard or fixed
//	--seed <value>       - RNG seed for reproducible obstacles
//	--log-file <path>    - Write logs to a file while playing
//	--verbose            - Debug logging
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "carrace",
	Short: "Car Race - dodge falling obstacles in your terminal",
	Long: `Car Race is a terminal arcade game. Obstacles fall from the top of the
arena and speed up over time; steer your block left and right to avoid them.
The game ends when you hit an obstacle or press the quit key.

Configuration is searched in this order:
  --config path
  ~/.arcade/configs/carrace.yaml
  ./configs/carrace.yaml
  ./config.json
  built-in defaults

Examples:
  carrace
  carrace play --difficulty hard
  carrace --config ./config.json --seed 42
  carrace keys
  carrace config schema > carrace.schema.json`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file while playing")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(configCmd)
}
