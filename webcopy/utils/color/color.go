// webcopy/utils/color/color.go
package color

import (
	"github.com/fatih/color"
)

// Console roles. Quota notices, pauses and progress each get their own color so a
// long run can be skimmed.
var (
	promptColor   = color.New(color.FgCyan, color.Bold)
	modelColor    = color.New(color.FgHiYellow, color.Bold)
	progressColor = color.New(color.FgHiBlack)
	pauseColor    = color.New(color.FgBlue)
	quotaColor    = color.New(color.FgMagenta, color.Bold)
	infoColor     = color.New(color.FgGreen)
	successColor  = color.New(color.FgGreen, color.Bold)
	errorColor    = color.New(color.FgRed, color.Bold)
)

func ColorPrompt(s string) string {
	return promptColor.Sprint(s)
}

// ColorModel highlights a model identifier in listings.
func ColorModel(s string) string {
	return modelColor.Sprint(s)
}

// ColorProgress dims per-page progress lines.
func ColorProgress(s string) string {
	return progressColor.Sprint(s)
}

// ColorPause marks a rate-limit pause.
func ColorPause(s string) string {
	return pauseColor.Sprint(s)
}

// ColorQuota marks a run stopped by the iteration cap or a daily limit.
func ColorQuota(s string) string {
	return quotaColor.Sprint(s)
}

func ColorInfo(s string) string {
	return infoColor.Sprint(s)
}

func ColorSuccess(s string) string {
	return successColor.Sprint(s)
}

func ColorError(s string) string {
	return errorColor.Sprint(s)
}
