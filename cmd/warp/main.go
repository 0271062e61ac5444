// Package main provides the warp command-line entry point.
package main

import (
	"fmt"
	"os"

	"github.com/warp-ml/warp/tensor"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("warp %s\n", version)
		return
	}

	fmt.Printf("warp %s - strided tensor engine\n\n", version)

	// A small tour of the view algebra.
	t, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("t          = %v\n", t)

	row, _ := t.Narrow(1, 2, 1)
	fmt.Printf("row 2      = %v\n", row)

	tt, _ := t.Transpose(1, 2)
	fmt.Printf("transpose  = %v (contiguous: %v)\n", tt, tt.IsContiguous())

	col, _ := tt.Select(2, 1)
	fmt.Printf("column 1   = %v\n", col)

	windows, _ := col.Unfold(1, 2, 1)
	fmt.Printf("unfold 2/1 = %v\n", windows)
}
