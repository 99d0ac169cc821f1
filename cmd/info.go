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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/igafem/g1mp/InputParameters"
	"github.com/igafem/g1mp/g1system"
	"github.com/igafem/g1mp/model_problems"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the DOF offset tables for a two-patch configuration",
	Long: `Classifies the two-patch model topology for the given basis
parameters and prints the per-category DOF offset tables, vertex
classification and plus-space sizes.`,
	Run: func(cmd *cobra.Command, args []string) {
		ipFile, _ := cmd.Flags().GetString("inputParametersFile")
		gp := processInput(ipFile)
		gp.Print()

		m, err := model_problems.NewG1TwoPatch(gp.PolynomialOrder, gp.KnotMultiplicity, gp.Elements,
			optionsFromParameters(gp))
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		sys := m.System()
		dimK, dimG1Dofs, dimG1Bdy := sys.Dims()
		fmt.Printf("%v\t= dim_K\n%v\t= dim_G1_Dofs\n%v\t= dim_G1_Bdy\n", dimK, dimG1Dofs, dimG1Bdy)
		for c := g1system.InterfaceFunctions; c <= g1system.PatchInteriorInterfaceFunctions; c++ {
			fmt.Printf("%v = %v functions\n", sys.Table(c), c)
		}
		fmt.Printf("%v = kind of vertex\n", sys.KindOfVertex())
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().StringP("inputParametersFile", "I", "", "YAML input parameters file")
}

func processInput(ipFile string) (gp *InputParameters.G1Parameters) {
	gp = &InputParameters.G1Parameters{
		Title:            "Two patch G1 system",
		TwoPatch:         true,
		Isogeometric:     true,
		PolynomialOrder:  3,
		KnotMultiplicity: 1,
		Elements:         4,
		Tolerance:        1.e-12,
	}
	if len(ipFile) == 0 {
		return
	}
	data, err := os.ReadFile(ipFile)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	if err = gp.Parse(data); err != nil {
		fmt.Printf("error: unable to parse %s: %s\n", ipFile, err.Error())
		os.Exit(1)
	}
	return
}

func optionsFromParameters(gp *InputParameters.G1Parameters) g1system.Options {
	return g1system.Options{
		TwoPatch:      gp.TwoPatch,
		NeumannBdy:    gp.NeumannBdy,
		Isogeometric:  gp.Isogeometric,
		InnerKnotMult: gp.InnerKnotMult,
	}
}
