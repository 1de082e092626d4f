package components

import (
	"fmt"

	"github.com/calween/opsdeck/internal/models"
	"github.com/calween/opsdeck/ui/styles"
)

// RenderConfirmation draws the dialog for a staged deployment. Returns the
// empty string when nothing is pending.
func RenderConfirmation(pending *models.ConfirmationRequest) string {
	if pending == nil {
		return ""
	}

	title := styles.ConfirmTitleStyle().Render("Confirm deployment")
	body := fmt.Sprintf("%s\n\nPackage: %s\nNode:    %s", pending.Action, pending.Package, pending.NodeID)
	hint := styles.ConfirmHintStyle().Render("[y] confirm    [n/esc] cancel")

	return styles.ConfirmBoxStyle().Render(title+"\n\n"+body+"\n\n"+hint) + "\n"
}
