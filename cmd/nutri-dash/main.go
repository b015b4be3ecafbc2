// cmd/nutri-dash/main.go
package main

import (
	"nutri-dash/internal/cmd"
)

func main() {
	cmd.Execute()
}
