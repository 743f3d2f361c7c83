package tui

import (
	"fmt"
	"strings"

	"github.com/convoy-rl/convoy/validate"
)

// RenderResult renders a validation result as a human-readable report.
// With styled=false the output is plain text suitable for pipes and CI.
func RenderResult(styles *StyleSet, result *validate.Result, styled bool) string {
	var b strings.Builder

	for _, w := range result.Warnings {
		if styled {
			b.WriteString(styles.Warning.Render("WARNING") + " " + w + "\n")
		} else {
			b.WriteString("WARNING: " + w + "\n")
		}
	}

	for _, e := range result.Errors {
		line := fmt.Sprintf("[%s] %s", e.Kind, e.Error())
		if styled {
			b.WriteString(styles.Error.Render("ERROR") + " " + line + "\n")
		} else {
			b.WriteString("ERROR: " + line + "\n")
		}
	}

	if result.IsValid() {
		msg := "Validation passed."
		if len(result.Warnings) > 0 {
			msg = fmt.Sprintf("Validation passed with %d warning(s).", len(result.Warnings))
		}
		if styled {
			b.WriteString(styles.Success.Render(msg) + "\n")
		} else {
			b.WriteString(msg + "\n")
		}
	} else {
		msg := fmt.Sprintf("Validation failed: %d error(s).", len(result.Errors))
		if styled {
			b.WriteString(styles.Error.Render(msg) + "\n")
		} else {
			b.WriteString(msg + "\n")
		}
	}

	return b.String()
}
