package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-dodgeball/internal/core"
	"github.com/vovakirdan/tui-dodgeball/internal/games/dodgeball"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorRed:         lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorCyan:        lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorBrightWhite: lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// Field layout in terminal cells.
const (
	cellWidth   = 2 // Each pixel is drawn two characters wide to look square
	fieldWidth  = dodgeball.GridCols*cellWidth + 2
	fieldHeight = dodgeball.GridRows + 2
	paneWidth   = 26
	paneHeight  = fieldHeight + 5
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// DrawField composes one node's frame into a screen buffer:
// title, bordered pixel grid, banner and a two-line status block.
func DrawField(f dodgeball.Frame, title string, tickRate int) *core.Screen {
	s := core.NewScreen(paneWidth, paneHeight)
	left := (paneWidth - fieldWidth) / 2

	s.DrawTextCentered(0, title, core.ColorCyan)
	s.DrawBox(core.NewRect(left, 1, fieldWidth, fieldHeight), roleColor(f.Role))

	for r := 0; r < dodgeball.GridRows; r++ {
		for c := 0; c < dodgeball.GridCols; c++ {
			x := left + 1 + c*cellWidth
			y := 2 + r
			if f.Pixels != nil && f.Pixels.Pixel(core.Pt(r, c)) {
				s.DrawText(x, y, "██", core.ColorBrightWhite)
			} else {
				s.DrawText(x, y, "· ", core.ColorGray)
			}
		}
	}

	row := 1 + fieldHeight
	if f.Banner != "" {
		s.DrawTextCentered(row, f.Banner, bannerColor(f))
	}

	led, ledColor := "○", core.ColorGray
	if f.Indicator {
		led, ledColor = "●", core.ColorGreen
	}
	status := fmt.Sprintf("%-6s R%d  hits %d/%d ", roleLabel(f), f.Round, f.Hits, dodgeball.MaxHits)
	s.DrawText(1, row+1, status, core.ColorDefault)
	s.DrawText(1+len([]rune(status)), row+1, led, ledColor)

	s.DrawText(1, row+2, fmt.Sprintf("R1 %s  R2 %s",
		formatTicks(f.RoundOneDuration, tickRate),
		formatTicks(f.RoundTwoDuration, tickRate)), core.ColorGray)
	s.DrawText(1, row+3, fmt.Sprintf("%s  balls %d", f.Phase, f.ActiveBalls), core.ColorGray)

	return s
}

// RenderField draws a frame as a styled string.
func RenderField(f dodgeball.Frame, title string, tickRate int) string {
	return RenderScreen(DrawField(f, title, tickRate))
}

func roleLabel(f dodgeball.Frame) string {
	if f.Phase == dodgeball.PhaseSetup {
		return "setup"
	}
	return f.Role.String()
}

func roleColor(r dodgeball.Role) core.Color {
	switch r {
	case dodgeball.RoleAttack:
		return core.ColorOrange
	case dodgeball.RoleDefend:
		return core.ColorCyan
	default:
		return core.ColorGray
	}
}

func bannerColor(f dodgeball.Frame) core.Color {
	if f.Phase != dodgeball.PhaseFinish {
		return core.ColorYellow
	}
	if f.Won {
		return core.ColorGreen
	}
	return core.ColorRed
}

// formatTicks renders a duration in master ticks as seconds.
func formatTicks(ticks uint32, tickRate int) string {
	if tickRate <= 0 {
		return fmt.Sprintf("%dt", ticks)
	}
	return fmt.Sprintf("%.1fs", float64(ticks)/float64(tickRate))
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
