/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/igafem/g1mp/model_problems"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build, solve and reconstruct the two-patch model problem",
	Long: `Runs the full pipeline on the two-patch model domain: classify,
assemble the transformation matrix, finalize, solve the manufactured
reduced system and reconstruct the multi-patch field.`,
	Run: func(cmd *cobra.Command, args []string) {
		ipFile, _ := cmd.Flags().GetString("inputParametersFile")
		prof, _ := cmd.Flags().GetBool("profile")
		if prof {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		}

		logger := log.New(os.Stderr)
		gp := processInput(ipFile)
		gp.Print()

		m, err := model_problems.NewG1TwoPatch(gp.PolynomialOrder, gp.KnotMultiplicity, gp.Elements,
			optionsFromParameters(gp))
		if err != nil {
			logger.Fatal("configuration", "err", err)
		}
		m.MaxIterations = gp.MaxIterations
		m.Tolerance = gp.Tolerance
		if err = m.Run(logger); err != nil {
			logger.Fatal("run failed", "err", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("inputParametersFile", "I", "", "YAML input parameters file")
	runCmd.Flags().Bool("profile", false, "write a CPU profile to the working directory")
}
