package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/polyopt/matrix"
)

// ExampleInverse inverts a 2×2 Hessian-like matrix.
func ExampleInverse() {
	h, _ := matrix.NewDenseFrom(2, 2, []float64{2, 0, 0, 4})
	inv, err := matrix.Inverse(h)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Print(inv)
	// Output:
	// [0.5, 0]
	// [0, 0.25]
}

// ExampleFormat renders a coefficient/exponent table in report style.
func ExampleFormat() {
	m, _ := matrix.NewDenseFrom(2, 3, []float64{1, 2, 0, 3, 1, 1})
	fmt.Print(matrix.Format(m, 0))
	// Output:
	// ( 1	2	0	)
	// ( 3	1	1	)
}
