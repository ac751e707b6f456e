package ui

type Color string

const (
	ColorDefault Color = "\033[0m"
	ColorGray    Color = "\033[38;2;150;150;150m"

	ColorRed    Color = "\033[38;2;255;0;0m"
	ColorOrange Color = "\033[38;2;255;165;0m"

	ColorLightBlue Color = "\033[38;2;150;150;255m"
)
