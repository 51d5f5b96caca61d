package coverage

import (
	"fmt"
	"io"
)

// WriteText renders the human-readable coverage report.
//
// Missing mnemonics are enumerated one per line, never summarized to a
// count, so a bring-up log always names exactly what is absent.
func (r *Report) WriteText(w io.Writer) {
	if r.OK {
		fmt.Fprintf(w, "all %d required mnemonics present\n", len(r.Required))
		return
	}

	fmt.Fprintf(w, "coverage incomplete: %d of %d required mnemonics missing\n",
		len(r.Missing), len(r.Required))
	for _, m := range r.Missing {
		fmt.Fprintf(w, "  missing: %s\n", m)
	}
}
