package render

import "math"

const (
	defaultBinWidth = 0.1 // dB
	defaultMinSpan  = 6.0 // dB

	// For 20 samples:
	// - 5% percentile  = 1 sample
	// - 95% percentile = 19th sample
	minimumSampleCount = 20
)

// PowerBounds represents the signal strength range mapped onto the colour
// scale.
type PowerBounds struct {
	Min  float64 // 5th percentile in dB
	Max  float64 // 95th percentile in dB
	Mean float64 // Mean in dB
}

// Span returns Max - Min.
func (b PowerBounds) Span() float64 {
	return b.Max - b.Min
}

// PowerHistogram maintains a histogram of signal strength values with fixed
// width bins.
type PowerHistogram struct {
	bins       map[int]uint32 // Map of bin index to count
	totalCount uint64         // Total number of samples
	sum        float64        // Sum of all samples
	minBin     int            // Cache for min bin
	maxBin     int            // Cache for max bin
	binWidth   float64
	minSpan    float64
}

// NewPowerHistogram creates a histogram with binWidth wide bins. Bounds
// narrower than minSpan are widened around their centre.
func NewPowerHistogram(binWidth, minSpan float64) *PowerHistogram {
	if binWidth <= 0 {
		binWidth = defaultBinWidth
	}
	if minSpan < 0 {
		minSpan = 0
	}
	return &PowerHistogram{
		bins:     make(map[int]uint32),
		minBin:   math.MaxInt32,
		maxBin:   math.MinInt32,
		binWidth: binWidth,
		minSpan:  minSpan,
	}
}

func (h *PowerHistogram) binIndex(power float64) int {
	return int(math.Floor(power / h.binWidth))
}

// scaleDown scales all bin counts down by factor of 2
func (h *PowerHistogram) scaleDown() {
	h.minBin = math.MaxInt32
	h.maxBin = math.MinInt32

	for bin := range h.bins {
		h.bins[bin] /= 2
		if h.bins[bin] == 0 {
			delete(h.bins, bin)
			continue
		}

		if bin < h.minBin {
			h.minBin = bin
		}
		if bin > h.maxBin {
			h.maxBin = bin
		}
	}
	h.totalCount /= 2
	h.sum /= 2
}

// Update adds a reading. NaN and infinite values are ignored.
func (h *PowerHistogram) Update(power float64) {
	if math.IsNaN(power) || math.IsInf(power, 0) {
		return
	}

	bin := h.binIndex(power)

	if h.bins[bin] == math.MaxUint32 || h.totalCount == math.MaxUint64 {
		h.scaleDown()
	}

	h.bins[bin]++
	h.totalCount++
	h.sum += power

	if bin < h.minBin {
		h.minBin = bin
	}
	if bin > h.maxBin {
		h.maxBin = bin
	}
}

// Count returns the number of samples in the histogram.
func (h *PowerHistogram) Count() uint64 {
	return h.totalCount
}

// Clear resets the histogram
func (h *PowerHistogram) Clear() {
	h.bins = make(map[int]uint32)
	h.totalCount = 0
	h.sum = 0
	h.minBin = math.MaxInt32
	h.maxBin = math.MinInt32
}

// PercentileBounds returns the 5th and 95th percentiles widened to the
// minimum span plus a 10% margin. ok is false when fewer than 20 samples
// were seen.
func (h *PowerHistogram) PercentileBounds() (bounds PowerBounds, ok bool) {
	if h.totalCount < minimumSampleCount {
		return PowerBounds{}, false
	}

	target5th := h.totalCount * 5 / 100

	var count uint64
	lower, upper := h.minBin, h.maxBin

	for bin := h.minBin; bin <= h.maxBin; bin++ {
		count += uint64(h.bins[bin])
		if count > target5th {
			lower = bin
			break
		}
	}

	count = 0
	for bin := h.maxBin; bin >= h.minBin; bin-- {
		count += uint64(h.bins[bin])
		if count > target5th {
			upper = bin
			break
		}
	}

	minPower := float64(lower) * h.binWidth
	maxPower := float64(upper+1) * h.binWidth

	if maxPower-minPower < h.minSpan {
		center := (maxPower + minPower) / 2
		minPower = center - h.minSpan/2
		maxPower = center + h.minSpan/2
	}

	margin := (maxPower - minPower) / 10
	return PowerBounds{
		Min:  minPower - margin,
		Max:  maxPower + margin,
		Mean: h.sum / float64(h.totalCount),
	}, true
}
