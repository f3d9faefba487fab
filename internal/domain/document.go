package domain

import (
	"bytes"
	"encoding/json"
)

// SupportedContainerVersion is the GLB container version the checks were
// written against. Other versions are parsed anyway and flagged as info.
const SupportedContainerVersion uint32 = 2

// Document is the decoded JSON metadata chunk of a GLB container. Only the
// fields the validator reads are modelled; everything else is ignored.
type Document struct {
	Asset     *AssetInfo      `json:"asset,omitempty"`
	Materials []MaterialEntry `json:"materials,omitempty"`
	Accessors []Accessor      `json:"accessors,omitempty"`
}

type AssetInfo struct {
	Version   string `json:"version,omitempty"`
	Generator string `json:"generator,omitempty"`
}

// MaterialEntry mirrors one element of the document's "materials" array.
type MaterialEntry struct {
	Name                 *string               `json:"name,omitempty"`
	PBRMetallicRoughness *PBRMetallicRoughness `json:"pbrMetallicRoughness,omitempty"`
}

type PBRMetallicRoughness struct {
	BaseColorFactor  []float64   `json:"baseColorFactor,omitempty"`
	BaseColorTexture *TextureRef `json:"baseColorTexture,omitempty"`
	MetallicFactor   *float64    `json:"metallicFactor,omitempty"`
	RoughnessFactor  *float64    `json:"roughnessFactor,omitempty"`
}

type TextureRef struct {
	Index    int `json:"index"`
	TexCoord int `json:"texCoord,omitempty"`
}

// Accessor mirrors one element of the document's "accessors" array. Min and
// Max are only meaningful for bounds when both hold exactly 3 components.
type Accessor struct {
	Type  string    `json:"type,omitempty"`
	Count int       `json:"count,omitempty"`
	Min   []float64 `json:"min,omitempty"`
	Max   []float64 `json:"max,omitempty"`
}

// HasBounds reports whether the accessor carries a well-formed 3D bounding box.
func (a Accessor) HasBounds() bool {
	return len(a.Min) == 3 && len(a.Max) == 3
}

// Metadata written by exporters is loosely typed. Each field the validator
// reads is decoded on its own, and a value of the wrong JSON type is treated
// as absent instead of failing the whole document. A non-array "materials" or
// "accessors" counts as an empty list.

func (d *Document) UnmarshalJSON(data []byte) error {
	var raw struct {
		Asset     json.RawMessage `json:"asset"`
		Materials json.RawMessage `json:"materials"`
		Accessors json.RawMessage `json:"accessors"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*d = Document{}
	if isObject(raw.Asset) {
		d.Asset = &AssetInfo{}
		_ = json.Unmarshal(raw.Asset, d.Asset)
	}
	decodeField(raw.Materials, &d.Materials)
	decodeField(raw.Accessors, &d.Accessors)
	return nil
}

func (a *AssetInfo) UnmarshalJSON(data []byte) error {
	var raw struct {
		Version   json.RawMessage `json:"version"`
		Generator json.RawMessage `json:"generator"`
	}
	*a = AssetInfo{}
	if !decodeObject(data, &raw) {
		return nil
	}
	decodeField(raw.Version, &a.Version)
	decodeField(raw.Generator, &a.Generator)
	return nil
}

func (m *MaterialEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name json.RawMessage `json:"name"`
		PBR  json.RawMessage `json:"pbrMetallicRoughness"`
	}
	*m = MaterialEntry{}
	if !decodeObject(data, &raw) {
		return nil
	}

	var name string
	if decodeField(raw.Name, &name) {
		m.Name = &name
	}
	if isObject(raw.PBR) {
		m.PBRMetallicRoughness = &PBRMetallicRoughness{}
		_ = json.Unmarshal(raw.PBR, m.PBRMetallicRoughness)
	}
	return nil
}

func (p *PBRMetallicRoughness) UnmarshalJSON(data []byte) error {
	var raw struct {
		BaseColorFactor  json.RawMessage `json:"baseColorFactor"`
		BaseColorTexture json.RawMessage `json:"baseColorTexture"`
		MetallicFactor   json.RawMessage `json:"metallicFactor"`
		RoughnessFactor  json.RawMessage `json:"roughnessFactor"`
	}
	*p = PBRMetallicRoughness{}
	if !decodeObject(data, &raw) {
		return nil
	}

	decodeField(raw.BaseColorFactor, &p.BaseColorFactor)
	// Any declared texture counts, even one whose fields are mistyped.
	if present(raw.BaseColorTexture) {
		p.BaseColorTexture = &TextureRef{}
		_ = json.Unmarshal(raw.BaseColorTexture, p.BaseColorTexture)
	}
	var f float64
	if decodeField(raw.MetallicFactor, &f) {
		p.MetallicFactor = &f
	}
	var r float64
	if decodeField(raw.RoughnessFactor, &r) {
		p.RoughnessFactor = &r
	}
	return nil
}

func (a *Accessor) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type  json.RawMessage `json:"type"`
		Count json.RawMessage `json:"count"`
		Min   json.RawMessage `json:"min"`
		Max   json.RawMessage `json:"max"`
	}
	*a = Accessor{}
	if !decodeObject(data, &raw) {
		return nil
	}

	decodeField(raw.Type, &a.Type)
	decodeField(raw.Count, &a.Count)
	decodeField(raw.Min, &a.Min)
	decodeField(raw.Max, &a.Max)
	return nil
}

func present(raw json.RawMessage) bool {
	s := bytes.TrimSpace(raw)
	return len(s) > 0 && !bytes.Equal(s, []byte("null"))
}

func isObject(raw json.RawMessage) bool {
	s := bytes.TrimSpace(raw)
	return len(s) > 0 && s[0] == '{'
}

func decodeObject(data []byte, v any) bool {
	return isObject(data) && json.Unmarshal(data, v) == nil
}

// decodeField decodes raw into v and reports whether it held a value of the
// right type. On failure v is left at its zero value.
func decodeField[T any](raw json.RawMessage, v *T) bool {
	if !present(raw) {
		return false
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return false
	}
	*v = out
	return true
}
