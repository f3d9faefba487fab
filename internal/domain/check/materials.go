package check

import (
	"fmt"

	"github.com/ntbtools/glbcheck/internal/domain"
)

const defaultPBRFactor = 1.0

// InspectMaterials extracts a Material record for every entry in the
// document and reports materials that have neither a base color nor a
// texture. Records are returned for every material regardless of outcome.
func InspectMaterials(doc *domain.Document) ([]domain.Material, []domain.Issue) {
	if doc == nil || len(doc.Materials) == 0 {
		return []domain.Material{}, []domain.Issue{{
			Severity: domain.SeverityError,
			Category: domain.CategoryMaterial,
			Message:  "No materials found in model",
			Fix:      "In Blender: Ensure objects have materials assigned before export",
		}}
	}

	materials := make([]domain.Material, 0, len(doc.Materials))
	var issues []domain.Issue

	for i, entry := range doc.Materials {
		m := describeMaterial(i, entry)
		materials = append(materials, m)

		if !m.HasAppearance() {
			issues = append(issues, domain.Issue{
				Severity: domain.SeverityError,
				Category: domain.CategoryMaterial,
				Message:  fmt.Sprintf("Material %q has no color or texture", m.Name),
				Fix:      fmt.Sprintf("In Blender: Select material %q → Set Base Color in Principled BSDF", m.Name),
			})
		}
	}

	return materials, issues
}

func describeMaterial(index int, entry domain.MaterialEntry) domain.Material {
	m := domain.Material{
		Name:      materialName(index, entry),
		Index:     index,
		Metallic:  defaultPBRFactor,
		Roughness: defaultPBRFactor,
	}

	pbr := entry.PBRMetallicRoughness
	if pbr == nil {
		return m
	}
	m.HasPBR = true

	// A factor with fewer than 4 channels is malformed; treat it as absent.
	if len(pbr.BaseColorFactor) >= 4 {
		c := domain.RGBA{pbr.BaseColorFactor[0], pbr.BaseColorFactor[1], pbr.BaseColorFactor[2], pbr.BaseColorFactor[3]}
		m.BaseColor = &c
		m.BaseColorDisplay = FormatRGBA(c)
	}
	m.HasTexture = pbr.BaseColorTexture != nil
	if pbr.MetallicFactor != nil {
		m.Metallic = *pbr.MetallicFactor
	}
	if pbr.RoughnessFactor != nil {
		m.Roughness = *pbr.RoughnessFactor
	}
	return m
}

func materialName(index int, entry domain.MaterialEntry) string {
	if entry.Name != nil && *entry.Name != "" {
		return *entry.Name
	}
	return fmt.Sprintf("Material_%d", index)
}

// FormatRGBA renders a color as RGBA(r, g, b, a) with two decimals.
func FormatRGBA(c domain.RGBA) string {
	return fmt.Sprintf("RGBA(%.2f, %.2f, %.2f, %.2f)", c[0], c[1], c[2], c[3])
}
