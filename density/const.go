package density

// NumCurvePoints sets the number of points of an exported distribution curve.
// Longer curves are reduced to this size before rendering.
const NumCurvePoints = 300

// DefaultRange brackets the support of a distribution for plotting and
// sampling summaries: the curve spans the quantiles at DefaultRangeCut and
// 1-DefaultRangeCut.
const DefaultRangeCut = 0.001
