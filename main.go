// ./main.go
package main

import (
	"github.com/kynelabs/graphscope/cmd"
)

func main() {
	cmd.Execute()
}
