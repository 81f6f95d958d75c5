// cmd/tools/artifact-inspector/main.go
//
// Small operational tool: loads an artifact bundle the same way the server
// does and prints a summary, so a broken or mismatched bundle can be
// diagnosed without starting the service.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"greenverify/internal/model"
)

func main() {
	dir := flag.String("dir", "models", "Path to the artifact bundle directory")
	flag.Parse()

	arts, err := model.Load(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: bundle at %s failed to load: %v\n", *dir, err)
		os.Exit(1)
	}

	fmt.Printf("Artifact bundle: %s\n\n", *dir)

	fmt.Printf("Features (%d, training order):\n", len(arts.Schema.Features))
	for _, name := range arts.Schema.Features {
		kind := "numeric"
		if arts.Schema.IsCategorical(name) {
			kind = "categorical"
		}
		fmt.Printf("  %-28s %s\n", name, kind)
	}

	fmt.Printf("\nLabel encoders (%d):\n", len(arts.LabelEncoders))
	names := make([]string, 0, len(arts.LabelEncoders))
	for name := range arts.LabelEncoders {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		enc := arts.LabelEncoders[name]
		fmt.Printf("  %-28s %d classes: %s\n", name, len(enc.Classes), strings.Join(enc.Classes, ", "))
	}

	fmt.Printf("\nScaler: %d numeric fields\n", len(arts.Scaler.Mean))

	fmt.Printf("\nClassifier: %d classes, %d trees, base score %.4f\n",
		arts.Booster.NumClasses, len(arts.Booster.Trees), arts.Booster.BaseScore)

	fmt.Printf("\nClass index -> star rating:\n")
	indices := make([]int, 0, len(arts.ReverseMapping))
	for idx := range arts.ReverseMapping {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	for _, idx := range indices {
		fmt.Printf("  %d -> %d stars\n", idx, arts.ReverseMapping[idx])
	}

	fmt.Println("\nBundle is consistent.")
}
