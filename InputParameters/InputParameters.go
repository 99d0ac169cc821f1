package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type G1Parameters struct {
	Title            string  `yaml:"Title"`
	TwoPatch         bool    `yaml:"TwoPatch"`
	NeumannBdy       bool    `yaml:"NeumannBdy"`
	Isogeometric     bool    `yaml:"Isogeometric"`
	InnerKnotMult    int     `yaml:"InnerKnotMult"`
	PolynomialOrder  int     `yaml:"PolynomialOrder"`
	KnotMultiplicity int     `yaml:"KnotMultiplicity"`
	Elements         int     `yaml:"Elements"`
	MaxIterations    int     `yaml:"MaxIterations"`
	Tolerance        float64 `yaml:"Tolerance"`
}

func (gp *G1Parameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, gp)
}

func (gp *G1Parameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", gp.Title)
	fmt.Printf("[%v]\t\t\t= TwoPatch\n", gp.TwoPatch)
	fmt.Printf("[%v]\t\t\t= NeumannBdy\n", gp.NeumannBdy)
	fmt.Printf("[%v]\t\t\t= Isogeometric\n", gp.Isogeometric)
	fmt.Printf("[%d]\t\t\t\t= InnerKnotMult\n", gp.InnerKnotMult)
	fmt.Printf("[%d]\t\t\t\t= Polynomial Order\n", gp.PolynomialOrder)
	fmt.Printf("[%d]\t\t\t\t= Knot Multiplicity\n", gp.KnotMultiplicity)
	fmt.Printf("[%d]\t\t\t\t= Elements\n", gp.Elements)
	fmt.Printf("[%d]\t\t\t= MaxIterations\n", gp.MaxIterations)
	fmt.Printf("%8.2e\t\t= Tolerance\n", gp.Tolerance)
}
