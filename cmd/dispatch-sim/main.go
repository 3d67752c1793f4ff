package main

import (
	"fmt"
	"os"

	// Import to register the simulation
	_ "github.com/wildfire/dispatch-sim/cmd/dispatch-sim/simulation"
)

func main() {
	fmt.Println("Wildfire Dispatch simulation registered. Use 'dispatch-sim-cli run' to execute.")
	os.Exit(0)
}
