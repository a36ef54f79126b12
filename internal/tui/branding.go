package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"akiba/internal/config"
)

const AppName = "akiba"

// ASCII art logo lines for akiba - canonical definition
var LogoLines = []string{
	"  ▄▄▄  ██  ▄█▀ ██ ▄▄▄▄▄   ▄▄▄ ",
	" ▀▀ ██ ██ ▄█▀  ██ ██  ▀█ ▀▀ ██",
	" ▄█▀▀██ ████    ██ ██▄▄█▀ ▄█▀▀██",
	" ██ ▄██ ██ ▀█▄  ██ ██  ▄█ ██ ▄██",
	" ▀█▄▀██ ██  ▀█▄ ██ █████▀ ▀█▄▀██",
}

const CompactLogo = `akiba ›`

// Banner gradient colors, savanna dusk to acacia green.
var BannerColors = []lipgloss.Color{
	lipgloss.Color("#F59E0B"),
	lipgloss.Color("#FBBF24"),
	lipgloss.Color("#34D399"),
	lipgloss.Color("#10B981"),
	lipgloss.Color("#F59E0B"),
}

// Theme colors. Defaults match the product palette; ApplyTheme overrides
// them from config before the app starts.
var (
	PrimaryColor   = lipgloss.Color("#10B981")
	SecondaryColor = lipgloss.Color("#F59E0B")
	AccentColor    = lipgloss.Color("#34D399")

	BackgroundColor = lipgloss.Color("#0F172A")
	SurfaceColor    = lipgloss.Color("#1E293B")
	TextColor       = lipgloss.Color("#F1F5F9")
	MutedColor      = lipgloss.Color("#94A3B8")

	ErrorColor   = lipgloss.Color("#F87171")
	SuccessColor = lipgloss.Color("#4ADE80")
)

// ApplyTheme installs the configured colors and rebuilds the derived styles.
func ApplyTheme(cfg *config.Config) {
	colors := cfg.UI.Colors

	setColor := func(dst *lipgloss.Color, value string) {
		if value != "" {
			*dst = lipgloss.Color(value)
		}
	}

	setColor(&PrimaryColor, colors.Primary)
	setColor(&SecondaryColor, colors.Secondary)
	setColor(&AccentColor, colors.Accent)
	setColor(&BackgroundColor, colors.Background)
	setColor(&SurfaceColor, colors.Surface)
	setColor(&TextColor, colors.Text)
	setColor(&MutedColor, colors.Muted)
	setColor(&ErrorColor, colors.Error)
	setColor(&SuccessColor, colors.Success)

	rebuildStyles()
}

// Styled components
var (
	LogoStyle         lipgloss.Style
	TitleStyle        lipgloss.Style
	HeaderStyle       lipgloss.Style
	StatusBarStyle    lipgloss.Style
	FeaturedItemStyle lipgloss.Style
	HelpStyle         lipgloss.Style
	TimeStyle         lipgloss.Style
	ErrorMessageStyle lipgloss.Style
	SeparatorStyle    lipgloss.Style

	StatusInfoStyle    lipgloss.Style
	StatusSuccessStyle lipgloss.Style
	StatusWarnStyle    lipgloss.Style
	StatusErrorStyle   lipgloss.Style

	EmptyStyle = lipgloss.NewStyle()
)

func rebuildStyles() {
	LogoStyle = lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Bold(true)

	TitleStyle = lipgloss.NewStyle().
		Foreground(TextColor).
		Background(SurfaceColor).
		Bold(true).
		Padding(0, 2)

	HeaderStyle = lipgloss.NewStyle().
		Foreground(SecondaryColor).
		Bold(true)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Padding(0, 1)

	FeaturedItemStyle = lipgloss.NewStyle().
		Foreground(SecondaryColor).
		Bold(true)

	HelpStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Italic(true)

	TimeStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Faint(true)

	ErrorMessageStyle = lipgloss.NewStyle().
		Foreground(ErrorColor).
		Bold(true)

	SeparatorStyle = lipgloss.NewStyle().
		Foreground(MutedColor)

	StatusInfoStyle = lipgloss.NewStyle().
		Foreground(MutedColor)

	StatusSuccessStyle = lipgloss.NewStyle().
		Foreground(SuccessColor)

	StatusWarnStyle = lipgloss.NewStyle().
		Foreground(SecondaryColor)

	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ErrorColor).
		Bold(true)
}

func init() {
	rebuildStyles()
}

func GetWelcomeMessage() string {
	return GetCompactBanner("Sign in to browse your chama's library")
}

func GetCompactBanner(message string) string {
	var coloredLines []string
	for _, line := range LogoLines {
		coloredLines = append(coloredLines, LogoStyle.Render(line))
	}

	logo := lipgloss.JoinVertical(lipgloss.Center, coloredLines...)

	return lipgloss.JoinVertical(
		lipgloss.Center,
		logo,
		"",
		HelpStyle.Render(message),
	)
}

// ShowBanner prints the startup banner before the TUI takes the terminal.
func ShowBanner(version string) {
	lines := make([]string, len(LogoLines)+1)
	copy(lines, LogoLines)
	lines[len(LogoLines)] = ""

	versionTag := version
	if versionTag != "" && versionTag != "dev" {
		if versionTag[0] != 'v' && versionTag[0] != 'V' {
			versionTag = "v" + versionTag
		}
		lines = append(lines, fmt.Sprintf("    Chama companion %s", versionTag))
	} else {
		lines = append(lines, "    Chama companion")
	}

	var coloredLines []string
	for i, line := range lines {
		if line == "" {
			coloredLines = append(coloredLines, line)
			continue
		}

		colorIdx := i % len(BannerColors)
		style := lipgloss.NewStyle().
			Foreground(BannerColors[colorIdx]).
			Bold(i < len(LogoLines))

		coloredLines = append(coloredLines, style.Render(line))
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(PrimaryColor).
		Padding(1, 3).
		MarginTop(1)

	banner := lipgloss.JoinVertical(lipgloss.Center, coloredLines...)

	fmt.Println(lipgloss.NewStyle().
		Width(70).
		Align(lipgloss.Center).
		Render(borderStyle.Render(banner)))
}
