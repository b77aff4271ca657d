package display

import (
	"fmt"
	"os"

	"github.com/backmassage/pdfarc/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Magenta != "" {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, ` ____  ____  _____ _
|  _ \|  _ \|  ___/ \   _ __ ___
| |_) | | | | |_ / _ \ | '__/ __|
|  __/| |_| |  _/ ___ \| | | (__
|_|   |____/|_|/_/   \_\_|  \___|
`)
	if term.Magenta != "" {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
