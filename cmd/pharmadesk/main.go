// Command pharmadesk is the pharmacy back-office CLI and HTTP server.
package main

import "github.com/mesh-intelligence/pharmadesk/internal/cli"

func main() {
	cli.Execute()
}
