// rovlog - session log loader and query tool
//
// rovlog ingests a robotic vehicle's timestamped log files, normalizes
// them into columnar tables, and answers time-windowed series queries
// for plotting and inspection.
package main

import (
	"os"

	"rovlog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
