package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/ntbtools/glbcheck/internal/domain"
	"github.com/ntbtools/glbcheck/internal/domain/check"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
	hint    = lipgloss.Color("#22D3EE") // cyan
)

var (
	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	fixStyle      = lipgloss.NewStyle().Foreground(hint)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	sectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	separatorLine = faintStyle.Render(strings.Repeat("═", 80))
)

// RenderResult renders one model's validation result. verbose adds
// per-accessor sizes and the external inspection report.
func RenderResult(r *domain.ValidationResult, t domain.Thresholds, verbose bool) string {
	var b strings.Builder

	// ── Header ──
	icon, style := statusIcon(r)
	b.WriteString("\n" + separatorLine + "\n")
	fmt.Fprintf(&b, "%s %s %s\n",
		style.Render(icon),
		style.Bold(true).Render(r.FileName),
		dimStyle.Render(fmt.Sprintf("(%s)", humanize.Bytes(uint64(r.FileSize)))),
	)
	if r.Generator != "" {
		fmt.Fprintf(&b, "  %s\n", dimStyle.Render("generator: "+r.Generator))
	}
	b.WriteString(separatorLine + "\n")

	renderMaterials(&b, r.Materials)
	renderBounds(&b, r, t, verbose)
	renderIssues(&b, r)

	if verbose && r.InspectionOutput != "" {
		b.WriteString("\n" + sectionStyle.Render("gltf-transform inspect") + "\n")
		b.WriteString(r.InspectionOutput)
		if !strings.HasSuffix(r.InspectionOutput, "\n") {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func statusIcon(r *domain.ValidationResult) (string, lipgloss.Style) {
	switch {
	case r.IsHealthy():
		return "✓", passStyle
	case !r.HasErrors():
		return "⚠", warnStyle
	default:
		return "✗", failStyle
	}
}

func renderMaterials(b *strings.Builder, materials []domain.Material) {
	if len(materials) == 0 {
		return
	}

	fmt.Fprintf(b, "\n%s %s\n", sectionStyle.Render("Materials"), dimStyle.Render(fmt.Sprintf("(%d)", len(materials))))
	for _, m := range materials {
		mark := failStyle.Render("✗")
		if m.HasAppearance() {
			mark = passStyle.Render("✓")
		}
		fmt.Fprintf(b, "  %s [%d] %s\n", mark, m.Index, m.Name)
		if m.BaseColor != nil {
			fmt.Fprintf(b, "      Color: %s\n", m.BaseColorDisplay)
		}
		if m.HasTexture {
			fmt.Fprintf(b, "      Texture: %s\n", passStyle.Render("Yes"))
		}
		if m.HasPBR {
			fmt.Fprintf(b, "      Metallic: %.2f | Roughness: %.2f\n", m.Metallic, m.Roughness)
		}
	}
}

const maxDetailedBoxes = 5

func renderBounds(b *strings.Builder, r *domain.ValidationResult, t domain.Thresholds, verbose bool) {
	if len(r.BoundingBoxes) == 0 {
		return
	}

	d := r.MaxDimension
	var label string
	var style lipgloss.Style
	switch check.Band(d, t) {
	case check.BandTooLarge:
		label, style = "✗ TOO LARGE", failStyle
	case check.BandLargerThanIdeal:
		label, style = "⚠ LARGER THAN IDEAL", warnStyle
	case check.BandVerySmall:
		label, style = "⚠ VERY SMALL", warnStyle
	default:
		label, style = "✓ OPTIMAL SIZE", passStyle
	}

	fmt.Fprintf(b, "\n%s\n", sectionStyle.Render("Bounding Boxes & Selection"))
	fmt.Fprintf(b, "  Max Dimension: %s %s\n", style.Render(fmt.Sprintf("%.3f units", d)), style.Render(label))
	fmt.Fprintf(b, "  Ideal Range: %s\n", passStyle.Render(fmt.Sprintf("%g - %g units", t.SmallTarget, t.IdealSize)))
	fmt.Fprintf(b, "  Selection Radius: %g units (fits models up to %g units)\n", t.SelectionRadius, t.MaxSelectable())

	if factor, target, ok := check.RecommendedScale(d, t); ok {
		fmt.Fprintf(b, "  %s\n", fixStyle.Render(fmt.Sprintf("Recommended Scale: %.3fx (will make it %.1f units)", factor, target)))
	} else if d <= 0 {
		fmt.Fprintf(b, "  %s\n", dimStyle.Render("Geometry has zero extent; no scale can be recommended"))
	}

	if verbose && len(r.BoundingBoxes) <= maxDetailedBoxes {
		fmt.Fprintf(b, "\n  %s\n", titleStyle.Render("Detailed Geometry:"))
		for _, box := range r.BoundingBoxes {
			fmt.Fprintf(b, "    Accessor %d: (%.2f, %.2f, %.2f)\n", box.Accessor, box.Size[0], box.Size[1], box.Size[2])
		}
	}
}

func renderIssues(b *strings.Builder, r *domain.ValidationResult) {
	if len(r.Issues) == 0 {
		b.WriteString("\n" + passStyle.Render("✓ No issues found - model is ready to use!") + "\n")
		return
	}

	groups := []struct {
		severity domain.Severity
		title    string
		style    lipgloss.Style
	}{
		{domain.SeverityError, "Errors", errorTagStyle},
		{domain.SeverityWarning, "Warnings", warnTagStyle},
		{domain.SeverityInfo, "Notes", infoTagStyle},
	}

	for _, g := range groups {
		issues := r.IssuesBySeverity(g.severity)
		if len(issues) == 0 {
			continue
		}
		fmt.Fprintf(b, "\n%s\n", g.style.Render(fmt.Sprintf("%s (%d)", g.title, len(issues))))
		for _, issue := range issues {
			fmt.Fprintf(b, "  %s %s\n",
				g.style.Render("• "+categoryTag(issue.Category)),
				issue.Message,
			)
			if issue.Fix != "" {
				fmt.Fprintf(b, "    %s\n", fixStyle.Render("Fix: "+issue.Fix))
			}
		}
	}
}

func categoryTag(c domain.Category) string {
	return "[" + strings.ToUpper(string(c)) + "]"
}

// RenderSkipped renders a notice for a path that could not be validated.
func RenderSkipped(path, reason string) string {
	return failStyle.Render(fmt.Sprintf("%s: %s", reason, path)) + "\n"
}
