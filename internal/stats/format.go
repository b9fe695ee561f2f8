package stats

import "fmt"

// EmptyCell is shown in grid cells with no logged time.
const EmptyCell = "—"

// FormatElapsed renders seconds as H:MM:SS with unbounded hours.
func FormatElapsed(totalSeconds int) string {
	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	s := totalSeconds % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// FormatHM renders seconds as H:MM.
func FormatHM(totalSeconds int) string {
	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	return fmt.Sprintf("%d:%02d", h, m)
}

// FormatCell renders a grid cell: H:MM, or EmptyCell for zero.
func FormatCell(totalSeconds int) string {
	if totalSeconds <= 0 {
		return EmptyCell
	}
	return FormatHM(totalSeconds)
}

// FormatGoal renders seconds as "Xh Ym", or "Ym" under an hour.
func FormatGoal(totalSeconds int) string {
	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
