package components

import (
	"github.com/calween/opsdeck/ui/styles"
)

func RenderInput(input string, width int) string {
	return styles.InputStyle(width).Render(input)
}
