package application_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ntbtools/glbcheck/internal/adapters/outbound/container"
	"github.com/ntbtools/glbcheck/internal/application"
	"github.com/ntbtools/glbcheck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubInspector struct {
	result domain.InspectResult
	calls  []string
}

func (s *stubInspector) Inspect(_ context.Context, path string) domain.InspectResult {
	s.calls = append(s.calls, path)
	return s.result
}

func colored(name string) domain.MaterialEntry {
	return domain.MaterialEntry{
		Name:                 &name,
		PBRMetallicRoughness: &domain.PBRMetallicRoughness{BaseColorFactor: []float64{0.5, 0.5, 0.5, 1}},
	}
}

func box(size float64) domain.Accessor {
	return domain.Accessor{Type: "VEC3", Min: []float64{0, 0, 0}, Max: []float64{size, size / 2, size / 4}}
}

func writeModel(t *testing.T, dir, name string, doc *domain.Document) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, container.WriteFile(path, doc))
	return path
}

func newService(insp domain.Inspector) *application.ValidateService {
	return application.NewValidateService(container.New(), insp, domain.DefaultThresholds(), nil)
}

func TestValidateFile_HealthyModel(t *testing.T) {
	path := writeModel(t, t.TempDir(), "chair.glb", &domain.Document{
		Asset:     &domain.AssetInfo{Version: "2.0", Generator: "Khronos glTF Blender I/O"},
		Materials: []domain.MaterialEntry{colored("Wood")},
		Accessors: []domain.Accessor{box(0.8)},
	})

	r, err := newService(nil).ValidateFile(context.Background(), path)
	require.NoError(t, err)

	assert.True(t, r.IsHealthy())
	assert.Empty(t, r.Issues)
	assert.Equal(t, "chair.glb", r.FileName)
	assert.Equal(t, "Khronos glTF Blender I/O", r.Generator)
	assert.Equal(t, uint32(2), r.ContainerVersion)
	assert.Positive(t, r.FileSize)
	require.Len(t, r.Materials, 1)
	assert.Equal(t, "RGBA(0.50, 0.50, 0.50, 1.00)", r.Materials[0].BaseColorDisplay)
	assert.InDelta(t, 0.8, r.MaxDimension, 1e-9)
}

func TestValidateFile_TooLarge(t *testing.T) {
	path := writeModel(t, t.TempDir(), "table.glb", &domain.Document{
		Materials: []domain.MaterialEntry{colored("Top")},
		Accessors: []domain.Accessor{box(0.8), box(1.4)},
	})

	r, err := newService(nil).ValidateFile(context.Background(), path)
	require.NoError(t, err)

	assert.InDelta(t, 1.4, r.MaxDimension, 1e-9)
	require.Len(t, r.Issues, 1)
	assert.Equal(t, domain.SeverityError, r.Issues[0].Severity)
	assert.Equal(t, domain.CategorySelection, r.Issues[0].Category)
	assert.True(t, r.HasErrors())
	assert.False(t, r.IsHealthy())
}

func TestValidateFile_BadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.glb")
	var buf bytes.Buffer
	require.NoError(t, container.EncodeRaw(&buf, 0xDEADBEEF, 2, []byte(`{"materials":[{}]}`)))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	insp := &stubInspector{result: domain.InspectResult{Available: true, Output: "report"}}
	r, err := newService(insp).ValidateFile(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, r.Issues, 1)
	assert.Equal(t, domain.SeverityError, r.Issues[0].Severity)
	assert.Equal(t, domain.CategoryStructure, r.Issues[0].Category)
	assert.Equal(t, "Failed to parse GLB file - may be corrupted", r.Issues[0].Message)
	assert.Empty(t, r.Materials)
	assert.Empty(t, r.BoundingBoxes)
	assert.Empty(t, r.InspectionOutput)
	assert.Empty(t, insp.calls, "unparseable files are not inspected")
}

func TestValidateFile_Truncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.glb")
	require.NoError(t, os.WriteFile(path, []byte("glTF"), 0644))

	r, err := newService(nil).ValidateFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, r.Issues, 1)
	assert.Equal(t, domain.CategoryStructure, r.Issues[0].Category)
}

func TestValidateFile_NoAccessorsHasNoScaleIssue(t *testing.T) {
	path := writeModel(t, t.TempDir(), "flat.glb", &domain.Document{
		Materials: []domain.MaterialEntry{colored("Paint")},
	})

	r, err := newService(nil).ValidateFile(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, r.BoundingBoxes)
	assert.Zero(t, r.MaxDimension)
	assert.Empty(t, r.Issues)
}

func TestValidateFile_MaterialAndScaleIssuesTogether(t *testing.T) {
	blank := "Blank"
	path := writeModel(t, t.TempDir(), "tiny.glb", &domain.Document{
		Materials: []domain.MaterialEntry{{Name: &blank}},
		Accessors: []domain.Accessor{box(0.1)},
	})

	r, err := newService(nil).ValidateFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, r.Issues, 2)
	assert.Equal(t, domain.CategoryMaterial, r.Issues[0].Category)
	assert.Equal(t, domain.CategoryScale, r.Issues[1].Category)
	assert.Equal(t, 1, r.ErrorCount())
	assert.Equal(t, 1, r.WarningCount())
}

func TestValidateFile_NoMaterials(t *testing.T) {
	path := writeModel(t, t.TempDir(), "bare.glb", &domain.Document{
		Accessors: []domain.Accessor{box(0.5)},
	})

	r, err := newService(nil).ValidateFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, r.Issues, 1)
	assert.Equal(t, "No materials found in model", r.Issues[0].Message)
}

func TestValidateFile_OtherContainerVersionIsInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v1.glb")
	var buf bytes.Buffer
	payload := []byte(`{"materials":[{"name":"M","pbrMetallicRoughness":{"baseColorFactor":[1,1,1,1]}}]}`)
	require.NoError(t, container.EncodeRaw(&buf, container.Magic, 1, payload))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	r, err := newService(nil).ValidateFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, r.Issues, 1)
	assert.Equal(t, domain.SeverityInfo, r.Issues[0].Severity)
	assert.Contains(t, r.Issues[0].Message, "Container version 1")
	assert.True(t, r.IsHealthy(), "info never affects health")
}

func TestValidateFile_MistypedFieldsDoNotFailTheFile(t *testing.T) {
	payloads := map[string]string{
		"bounds": `{"materials":[{"name":"Body","pbrMetallicRoughness":{"baseColorFactor":[1,1,1,1]}}],` +
			`"accessors":[{"min":"bad","max":[1,1,1]},{"min":[0,0,0],"max":[0.5,0.5,0.5]}]}`,
		"name": `{"materials":[{"name":7,"pbrMetallicRoughness":{"baseColorFactor":[1,1,1,1]}}],` +
			`"accessors":[{"min":["a","b","c"],"max":[1,1,1]},{"min":[0,0,0],"max":[0.5,0.5,0.5]}]}`,
	}

	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "loose.glb")
			var buf bytes.Buffer
			require.NoError(t, container.EncodeRaw(&buf, container.Magic, 2, []byte(payload)))
			require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

			r, err := newService(nil).ValidateFile(context.Background(), path)
			require.NoError(t, err)
			assert.Empty(t, r.Issues)
			require.Len(t, r.Materials, 1)
			require.Len(t, r.BoundingBoxes, 1)
			assert.Equal(t, 1, r.BoundingBoxes[0].Accessor)
			assert.InDelta(t, 0.5, r.MaxDimension, 1e-9)
		})
	}
}

func TestValidateFile_Inspection(t *testing.T) {
	dir := t.TempDir()
	path := writeModel(t, dir, "lamp.glb", &domain.Document{Materials: []domain.MaterialEntry{colored("Shade")}})

	available := &stubInspector{result: domain.InspectResult{Available: true, Output: "OVERVIEW\n"}}
	r, err := newService(available).ValidateFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "OVERVIEW\n", r.InspectionOutput)
	assert.Equal(t, []string{path}, available.calls)

	missing := &stubInspector{result: domain.InspectResult{Reason: "not found"}}
	r, err = newService(missing).ValidateFile(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, r.InspectionOutput)
	assert.True(t, r.IsHealthy(), "an unavailable inspector is not an issue")
}

func TestValidateFile_Idempotent(t *testing.T) {
	path := writeModel(t, t.TempDir(), "same.glb", &domain.Document{
		Materials: []domain.MaterialEntry{colored("A"), {}},
		Accessors: []domain.Accessor{box(1.1)},
	})
	svc := newService(nil)

	first, err := svc.ValidateFile(context.Background(), path)
	require.NoError(t, err)
	second, err := svc.ValidateFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestValidateFile_StatErrors(t *testing.T) {
	dir := t.TempDir()
	svc := newService(nil)

	_, err := svc.ValidateFile(context.Background(), filepath.Join(dir, "missing.glb"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = svc.ValidateFile(context.Background(), dir)
	assert.ErrorContains(t, err, "is a directory")
}

func TestValidateAll_SkipsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeModel(t, dir, "good.glb", &domain.Document{
		Materials: []domain.MaterialEntry{colored("A")},
		Accessors: []domain.Accessor{box(0.5)},
	})
	bad := writeModel(t, dir, "bad.glb", &domain.Document{Accessors: []domain.Accessor{box(2)}})
	missing := filepath.Join(dir, "missing.glb")

	var seen []string
	batch := newService(nil).ValidateAll(context.Background(), []string{good, missing, bad}, func(r *domain.ValidationResult) {
		seen = append(seen, r.FileName)
	})

	assert.Equal(t, []string{"good.glb", "bad.glb"}, seen)
	require.Len(t, batch.Results, 2)
	require.Len(t, batch.Skipped, 1)
	assert.Equal(t, missing, batch.Skipped[0].Path)
	assert.Equal(t, "File not found", batch.Skipped[0].Reason)

	assert.Equal(t, 2, batch.Summary.Total)
	assert.Equal(t, 1, batch.Summary.Healthy)
	assert.Equal(t, 1, batch.Summary.Errors)
	assert.Equal(t, 1, batch.ExitCode())
}

func TestValidateAll_WarningsDoNotFail(t *testing.T) {
	path := writeModel(t, t.TempDir(), "wide.glb", &domain.Document{
		Materials: []domain.MaterialEntry{colored("A")},
		Accessors: []domain.Accessor{box(1.1)},
	})

	batch := newService(nil).ValidateAll(context.Background(), []string{path}, nil)
	assert.Equal(t, 1, batch.Summary.WarningsOnly)
	assert.Equal(t, 0, batch.ExitCode())
}

func TestValidateAll_CancelledContext(t *testing.T) {
	path := writeModel(t, t.TempDir(), "a.glb", &domain.Document{Materials: []domain.MaterialEntry{colored("A")}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batch := newService(nil).ValidateAll(ctx, []string{path}, nil)
	assert.Empty(t, batch.Results)
	require.Len(t, batch.Skipped, 1)
	assert.Equal(t, 0, batch.ExitCode())
}
