package report

import (
	"fmt"
	"io"

	"fjacquet/income-categories/internal/notification"

	"github.com/charmbracelet/lipgloss"
)

var (
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	SubtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

// WriteNotifications prints one styled line per notification.
func WriteNotifications(w io.Writer, notes []notification.Notification) error {
	for _, n := range notes {
		if _, err := fmt.Fprintln(w, styleFor(n.Type).Render(prefixFor(n.Type)+n.Message)); err != nil {
			return err
		}
	}
	return nil
}

func styleFor(t notification.Type) lipgloss.Style {
	switch t {
	case notification.Success:
		return SuccessStyle
	case notification.Warning:
		return WarningStyle
	case notification.Error:
		return ErrorStyle
	default:
		return lipgloss.NewStyle()
	}
}

func prefixFor(t notification.Type) string {
	switch t {
	case notification.Success:
		return "✓ "
	case notification.Warning:
		return "! "
	case notification.Error:
		return "✗ "
	default:
		return ""
	}
}
