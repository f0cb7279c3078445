package messages

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg is one display frame; it drives the board's frame clock
type FrameMsg time.Time

// ToastMsg shows a short notice in the status bar
type ToastMsg struct {
	Title       string
	Description string
	Failed      bool
}

// ToastExpiredMsg hides the toast with the given sequence number
type ToastExpiredMsg struct {
	Seq int
}

// Toast reports a success to the user
func Toast(title, description string) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{Title: title, Description: description}
	}
}

// Failure reports a failed action to the user
func Failure(title, description string) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{Title: title, Description: description, Failed: true}
	}
}

// NextFrame schedules a FrameMsg after one frame at the given rate
func NextFrame(frameRate int) tea.Cmd {
	if frameRate <= 0 {
		frameRate = 60
	}
	return tea.Tick(time.Second/time.Duration(frameRate), func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
