package check

import "github.com/ntbtools/glbcheck/internal/domain"

// AggregateBounds builds a descriptor for every accessor with well-formed
// 3-component min/max and returns them with the largest extent seen on any
// axis. Accessors without usable bounds are skipped silently; maxDim is 0
// when none qualify.
func AggregateBounds(doc *domain.Document) (boxes []domain.BoundsDescriptor, maxDim float64) {
	boxes = []domain.BoundsDescriptor{}
	if doc == nil {
		return boxes, 0
	}

	for i, acc := range doc.Accessors {
		if !acc.HasBounds() {
			continue
		}

		var b domain.BoundsDescriptor
		b.Accessor = i
		for axis := 0; axis < 3; axis++ {
			b.Min[axis] = acc.Min[axis]
			b.Max[axis] = acc.Max[axis]
			b.Size[axis] = acc.Max[axis] - acc.Min[axis]
		}
		b.MaxDimension = max(b.Size[0], b.Size[1], b.Size[2])

		boxes = append(boxes, b)
		maxDim = max(maxDim, b.MaxDimension)
	}

	return boxes, maxDim
}
