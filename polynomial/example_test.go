package polynomial_test

import (
	"fmt"

	"github.com/katalvlaran/polyopt/polynomial"
)

func ExampleParse() {
	p, err := polynomial.Parse("f(x_1,x_2) = x_1^2 - x_2^2")
	if err != nil {
		fmt.Println(err)
		return
	}
	g, _ := p.Gradient([]float64{1, 2})
	fmt.Println(p.NumVars(), p.NumTerms(), g)
	fmt.Print(p.Coefficients())
	// Output:
	// 2 2 [2 -4]
	// [1, 2, 0]
	// [-1, 0, 2]
}
