// Command validity считает сроки контрактов без базы и сервера:
// по дате колокации и длительности, как это делает API.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
