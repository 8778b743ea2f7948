package consolewriter

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestPrefixes(t *testing.T) {
	color.NoColor = true

	var out, errOut bytes.Buffer
	w := NewConsoleWriter(&out, &errOut)

	w.Success("Added server: web -> ubuntu@10.0.0.5")
	w.Info("No servers configured.")
	w.Warning("No changes specified.")
	w.Error("Server 'x' not found")

	assert.Equal(t, "Success: Added server: web -> ubuntu@10.0.0.5\nInfo: No servers configured.\nWarning: No changes specified.\n", out.String())
	assert.Equal(t, "Error: Server 'x' not found\n", errOut.String())
}
