package analysis

import (
	"math"
	"reflect"
	"testing"

	"github.com/storelens/storelens-cli/internal/dataset"
)

// Three well-separated blobs in 3D feature space.
func blobPoints() [][]float64 {
	var points [][]float64
	for _, center := range [][]float64{{0, 0, 0}, {10, 10, 10}, {-10, 5, -10}} {
		for i := 0; i < 5; i++ {
			off := float64(i) * 0.1
			points = append(points, []float64{center[0] + off, center[1] - off, center[2] + off})
		}
	}
	return points
}

func TestStandardize(t *testing.T) {
	features := [][]float64{{1, 100}, {2, 200}, {3, 300}, {4, 400}}
	scaled := Standardize(features)
	for j := 0; j < 2; j++ {
		var sum, sumSq float64
		for i := range scaled {
			sum += scaled[i][j]
		}
		mean := sum / float64(len(scaled))
		if math.Abs(mean) > 1e-9 {
			t.Errorf("column %d mean = %v, want 0", j, mean)
		}
		for i := range scaled {
			d := scaled[i][j] - mean
			sumSq += d * d
		}
		std := math.Sqrt(sumSq / float64(len(scaled)-1))
		if math.Abs(std-1) > 1e-9 {
			t.Errorf("column %d std = %v, want 1", j, std)
		}
	}
	// Input must not be mutated.
	if features[0][0] != 1 || features[3][1] != 400 {
		t.Error("Standardize mutated its input")
	}
}

func TestStandardizeZeroVariance(t *testing.T) {
	scaled := Standardize([][]float64{{5, 1}, {5, 2}, {5, 3}})
	for i := range scaled {
		if scaled[i][0] != 0 {
			t.Errorf("zero-variance column should center to 0, got %v", scaled[i][0])
		}
	}
}

func TestKMeansLabelsInRange(t *testing.T) {
	points := blobPoints()
	labels, centroids, err := KMeans(points, 3, 42, 300)
	if err != nil {
		t.Fatalf("KMeans: %v", err)
	}
	if len(labels) != len(points) {
		t.Fatalf("expected %d labels, got %d", len(points), len(labels))
	}
	if len(centroids) != 3 {
		t.Fatalf("expected 3 centroids, got %d", len(centroids))
	}
	for i, l := range labels {
		if l < 0 || l >= 3 {
			t.Errorf("label %d of point %d out of [0,3)", l, i)
		}
	}
}

func TestKMeansDeterministic(t *testing.T) {
	points := blobPoints()
	labels1, cents1, err := KMeans(points, 3, 42, 300)
	if err != nil {
		t.Fatalf("KMeans: %v", err)
	}
	labels2, cents2, err := KMeans(points, 3, 42, 300)
	if err != nil {
		t.Fatalf("KMeans: %v", err)
	}
	if !reflect.DeepEqual(labels1, labels2) {
		t.Errorf("same seed produced different labels:\n%v\n%v", labels1, labels2)
	}
	if !reflect.DeepEqual(cents1, cents2) {
		t.Errorf("same seed produced different centroids")
	}
}

func TestKMeansSeparatesBlobs(t *testing.T) {
	points := blobPoints()
	labels, _, err := KMeans(points, 3, 42, 300)
	if err != nil {
		t.Fatalf("KMeans: %v", err)
	}
	// Each blob of 5 consecutive points must land in one cluster, and the
	// three blobs in three different clusters.
	seen := make(map[int]bool)
	for b := 0; b < 3; b++ {
		first := labels[b*5]
		for i := 1; i < 5; i++ {
			if labels[b*5+i] != first {
				t.Fatalf("blob %d split across clusters: %v", b, labels)
			}
		}
		if seen[first] {
			t.Fatalf("two blobs share cluster %d: %v", first, labels)
		}
		seen[first] = true
	}
}

func TestKMeansErrors(t *testing.T) {
	if _, _, err := KMeans([][]float64{{1}}, 0, 42, 10); err == nil {
		t.Error("expected error for k=0")
	}
	if _, _, err := KMeans([][]float64{{1}, {2}}, 3, 42, 10); err == nil {
		t.Error("expected error for fewer points than clusters")
	}
}

func TestSegment(t *testing.T) {
	table := &dataset.Table{}
	for _, p := range blobPoints() {
		table.Records = append(table.Records, dataset.Record{
			Sales:    100 + 50*p[0],
			Quantity: 5 + int(p[1]/2),
			Rating:   7 + p[2]/10,
			Segment:  dataset.UnlabeledSegment,
		})
	}
	profiles, err := Segment(table, 3, 42, 300)
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if len(profiles) != 3 {
		t.Fatalf("expected 3 profiles, got %d", len(profiles))
	}
	total := 0
	for _, p := range profiles {
		total += p.Count
	}
	if total != table.Len() {
		t.Errorf("profile counts sum to %d, want %d", total, table.Len())
	}
	for i, r := range table.Records {
		if r.Segment < 0 || r.Segment >= 3 {
			t.Errorf("record %d segment %d out of [0,3)", i, r.Segment)
		}
	}
	// Profile means must agree with a direct per-segment computation.
	for _, p := range profiles {
		var sum float64
		var n int
		for _, r := range table.Records {
			if r.Segment == p.Segment {
				sum += r.Sales
				n++
			}
		}
		if n != p.Count {
			t.Errorf("segment %d count mismatch: %d vs %d", p.Segment, n, p.Count)
			continue
		}
		if n > 0 && math.Abs(sum/float64(n)-p.MeanSales) > 1e-9 {
			t.Errorf("segment %d mean sales mismatch", p.Segment)
		}
	}
}
