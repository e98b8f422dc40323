package colour

import (
	"errors"
	"fmt"
	"image"
	"math"
	"math/rand/v2"
	"sort"
)

// Cluster is a dominant colour and the share of sampled pixels nearest to it.
type Cluster struct {
	Colour RGB
	Weight float64
}

const (
	maxClusters   = 64
	maxIterations = 20
	// convergence is the mean centroid movement, in RGB units, below which
	// iteration stops.
	convergence = 2.0
	// maxSamples caps how many pixels are clustered.
	maxSamples = 2000
)

// ErrEmptyImage is returned by Dominant for images without pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// Dominant finds up to k dominant colours of img with k-means, seeded with
// k-means++. Results are ordered by weight, heaviest first. rng drives
// centroid seeding; nil uses a fixed seed so equal images give equal
// clusters.
func Dominant(img image.Image, k int, rng *rand.Rand) ([]Cluster, error) {
	if img == nil {
		return nil, errors.New("image cannot be nil")
	}
	if k < 1 || k > maxClusters {
		return nil, fmt.Errorf("cluster count must be between 1 and %d, got %d", maxClusters, k)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(0x7e3a, 0x91c5))
	}

	points := samplePixels(img)
	if len(points) == 0 {
		return nil, ErrEmptyImage
	}

	counts := make(map[point3D]int)
	for _, p := range points {
		counts[p]++
	}
	var clusters []Cluster
	if len(counts) <= k {
		for p, n := range counts {
			clusters = append(clusters, Cluster{Colour: p.rgb(), Weight: float64(n) / float64(len(points))})
		}
	} else {
		centroids, weights := kmeans(points, k, rng)
		for i, c := range centroids {
			if weights[i] > 0 {
				clusters = append(clusters, Cluster{Colour: c.rgb(), Weight: weights[i]})
			}
		}
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		if clusters[i].Weight != clusters[j].Weight {
			return clusters[i].Weight > clusters[j].Weight
		}
		return clusters[i].Colour.Hex() < clusters[j].Colour.Hex()
	})
	return clusters, nil
}

// point3D is a colour in continuous RGB space.
type point3D struct {
	R, G, B float64
}

func (p point3D) distance(o point3D) float64 {
	dr, dg, db := p.R-o.R, p.G-o.G, p.B-o.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

func (p point3D) rgb() RGB {
	return RGB{R: channel(p.R), G: channel(p.G), B: channel(p.B)}
}

// samplePixels reads every pixel of small images and a regular grid of
// large ones. Fully transparent pixels are skipped.
func samplePixels(img image.Image) []point3D {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total <= 0 {
		return nil
	}
	step := max(int(math.Sqrt(float64(total)/maxSamples)), 1)

	points := make([]point3D, 0, min(total, maxSamples))
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			points = append(points, point3D{R: float64(r >> 8), G: float64(g >> 8), B: float64(b >> 8)})
			if len(points) >= maxSamples {
				return points
			}
		}
	}
	return points
}

// kmeans clusters points into k groups and returns the centroids with the
// fraction of points assigned to each.
func kmeans(points []point3D, k int, rng *rand.Rand) ([]point3D, []float64) {
	centroids := seedCentroids(points, k, rng)
	assignments := make([]int, len(points))

	for iter := 0; iter < maxIterations; iter++ {
		changed := 0
		for i, p := range points {
			nearest := nearestCentroid(p, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}
		if iter > 0 && float64(changed)/float64(len(points)) < 0.01 {
			break
		}

		next := recalculate(points, assignments, centroids)
		movement := 0.0
		for i := range centroids {
			movement += centroids[i].distance(next[i])
		}
		centroids = next
		if movement/float64(k) < convergence {
			break
		}
	}

	for i, p := range points {
		assignments[i] = nearestCentroid(p, centroids)
	}
	weights := make([]float64, k)
	for _, a := range assignments {
		weights[a]++
	}
	for i := range weights {
		weights[i] /= float64(len(points))
	}
	return centroids, weights
}

// seedCentroids picks k starting centroids with k-means++: each new
// centroid is drawn with probability proportional to its squared distance
// from the nearest existing one.
func seedCentroids(points []point3D, k int, rng *rand.Rand) []point3D {
	centroids := make([]point3D, 0, k)
	centroids = append(centroids, points[rng.IntN(len(points))])

	dist := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, p := range points {
			d := p.distance(centroids[nearestCentroid(p, centroids)])
			dist[i] = d * d
			total += dist[i]
		}
		if total == 0 {
			last := centroids[len(centroids)-1]
			centroids = append(centroids, point3D{R: last.R + 0.1, G: last.G + 0.1, B: last.B + 0.1})
			continue
		}

		target := rng.Float64() * total
		cumulative := 0.0
		chosen := len(points) - 1
		for i, d := range dist {
			cumulative += d
			if cumulative >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, points[chosen])
	}
	return centroids
}

func nearestCentroid(p point3D, centroids []point3D) int {
	best, bestDist := 0, math.MaxFloat64
	for i, c := range centroids {
		if d := p.distance(c); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// recalculate moves each centroid to the mean of its points. Empty
// clusters keep their previous position.
func recalculate(points []point3D, assignments []int, prev []point3D) []point3D {
	sums := make([]point3D, len(prev))
	counts := make([]int, len(prev))
	for i, p := range points {
		c := assignments[i]
		sums[c].R += p.R
		sums[c].G += p.G
		sums[c].B += p.B
		counts[c]++
	}

	next := make([]point3D, len(prev))
	for i := range next {
		if counts[i] == 0 {
			next[i] = prev[i]
			continue
		}
		n := float64(counts[i])
		next[i] = point3D{R: sums[i].R / n, G: sums[i].G / n, B: sums[i].B / n}
	}
	return next
}
