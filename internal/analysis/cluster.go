package analysis

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/storelens/storelens-cli/internal/dataset"
)

// Segmentation defaults, matching the original analysis pipeline.
const (
	DefaultClusters      = 3
	DefaultSeed          = 42
	DefaultMaxIterations = 300
)

// SegmentProfile summarizes one cluster of the segmentation.
type SegmentProfile struct {
	Segment      int
	Count        int
	MeanSales    float64
	MeanQuantity float64
	MeanRating   float64
}

// Standardize rescales each column of features to zero mean and unit
// variance, in place-safe fashion (a new matrix is returned). Zero-variance
// columns are left centered only.
func Standardize(features [][]float64) [][]float64 {
	if len(features) == 0 {
		return nil
	}
	ncol := len(features[0])
	col := make([]float64, len(features))
	means := make([]float64, ncol)
	stds := make([]float64, ncol)
	for j := 0; j < ncol; j++ {
		for i := range features {
			col[i] = features[i][j]
		}
		means[j] = stat.Mean(col, nil)
		stds[j] = stat.StdDev(col, nil)
		if stds[j] == 0 {
			stds[j] = 1
		}
	}
	out := make([][]float64, len(features))
	for i := range features {
		out[i] = make([]float64, ncol)
		for j := 0; j < ncol; j++ {
			out[i][j] = (features[i][j] - means[j]) / stds[j]
		}
	}
	return out
}

// KMeans partitions points into k clusters by iterative nearest-centroid
// assignment with Euclidean distance. The first centroid is a seeded random
// point and each further centroid is the point farthest from all chosen so
// far, so results are reproducible for a fixed seed. Iteration stops when
// assignments no longer change or after maxIter rounds. An empty cluster
// keeps its previous centroid.
func KMeans(points [][]float64, k int, seed int64, maxIter int) (labels []int, centroids [][]float64, err error) {
	if k <= 0 {
		return nil, nil, fmt.Errorf("kmeans: k must be positive, got %d", k)
	}
	if len(points) < k {
		return nil, nil, fmt.Errorf("kmeans: %d points cannot form %d clusters", len(points), k)
	}
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}
	dim := len(points[0])

	rng := rand.New(rand.NewSource(seed))
	centroids = make([][]float64, 0, k)
	centroids = append(centroids, append([]float64(nil), points[rng.Intn(len(points))]...))
	nearest := make([]float64, len(points))
	for len(centroids) < k {
		last := centroids[len(centroids)-1]
		farthest, farthestDist := 0, -1.0
		for i, p := range points {
			d := floats.Distance(p, last, 2)
			if len(centroids) == 1 || d < nearest[i] {
				nearest[i] = d
			}
			if nearest[i] > farthestDist {
				farthest, farthestDist = i, nearest[i]
			}
		}
		centroids = append(centroids, append([]float64(nil), points[farthest]...))
	}

	labels = make([]int, len(points))
	for i := range labels {
		labels[i] = -1
	}
	sums := make([][]float64, k)
	counts := make([]int, k)
	for i := range sums {
		sums[i] = make([]float64, dim)
	}

	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, p := range points {
			best, bestDist := 0, floats.Distance(p, centroids[0], 2)
			for c := 1; c < k; c++ {
				if d := floats.Distance(p, centroids[c], 2); d < bestDist {
					best, bestDist = c, d
				}
			}
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}
		for c := range sums {
			for j := range sums[c] {
				sums[c][j] = 0
			}
			counts[c] = 0
		}
		for i, p := range points {
			floats.Add(sums[labels[i]], p)
			counts[labels[i]]++
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				continue
			}
			for j := 0; j < dim; j++ {
				centroids[c][j] = sums[c][j] / float64(counts[c])
			}
		}
	}
	return labels, centroids, nil
}

// Segment standardizes the {sales, quantity, rating} features of every
// record, clusters them, applies the labels to the table, and returns the
// per-segment profiles ordered by segment id.
func Segment(t *dataset.Table, k int, seed int64, maxIter int) ([]SegmentProfile, error) {
	features := make([][]float64, len(t.Records))
	for i, r := range t.Records {
		features[i] = []float64{r.Sales, float64(r.Quantity), r.Rating}
	}
	labels, _, err := KMeans(Standardize(features), k, seed, maxIter)
	if err != nil {
		return nil, err
	}
	if err := t.ApplySegments(labels); err != nil {
		return nil, err
	}

	profiles := make([]SegmentProfile, k)
	for c := range profiles {
		profiles[c].Segment = c
	}
	for _, r := range t.Records {
		p := &profiles[r.Segment]
		p.Count++
		p.MeanSales += r.Sales
		p.MeanQuantity += float64(r.Quantity)
		p.MeanRating += r.Rating
	}
	for c := range profiles {
		if profiles[c].Count == 0 {
			continue
		}
		n := float64(profiles[c].Count)
		profiles[c].MeanSales /= n
		profiles[c].MeanQuantity /= n
		profiles[c].MeanRating /= n
	}
	return profiles, nil
}
