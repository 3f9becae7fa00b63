package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/akmonengine/tindem"
	"github.com/akmonengine/tindem/surface"
	"gopkg.in/yaml.v3"
)

// Job describes one rasterization run
type Job struct {
	Resolution float64 `yaml:"resolution"`
	Workers    int     `yaml:"workers"`
	EPSG       uint32  `yaml:"epsg"`
	Bounds     *struct {
		MinX float64 `yaml:"min_x"`
		MaxX float64 `yaml:"max_x"`
		MinY float64 `yaml:"min_y"`
		MaxY float64 `yaml:"max_y"`
	} `yaml:"bounds"`
	Synthetic struct {
		Cols    int     `yaml:"cols"`
		Rows    int     `yaml:"rows"`
		Spacing float64 `yaml:"spacing"`
	} `yaml:"synthetic"`
}

var configPtr = flag.String("config", "", "YAML job file")
var resolutionPtr = flag.Float64("resolution", 0, "cell size, overrides the job file")
var workersPtr = flag.Int("workers", 0, "worker goroutines, 0 for one per CPU")
var verbosePtr = flag.Bool("v", false, "debug logging")

func loadJob(path string) (Job, error) {
	job := Job{Resolution: 1.0}
	job.Synthetic.Cols, job.Synthetic.Rows, job.Synthetic.Spacing = 200, 150, 5.0

	if path == "" {
		return job, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return job, err
	}
	err = yaml.Unmarshal(data, &job)
	return job, err
}

// syntheticSurface builds a rolling terrain lattice split into triangles
func syntheticSurface(cols, rows int, spacing float64) (*surface.Model, error) {
	points := make([]surface.Point3D, 0, cols*rows)
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			x, y := float64(i)*spacing, float64(j)*spacing
			z := 100 + 10*math.Sin(x/70) + 6*math.Cos(y/45)
			points = append(points, surface.Point3D{X: x, Y: y, Z: float32(z)})
		}
	}

	triangles := make([]surface.Triangle, 0, 2*(cols-1)*(rows-1))
	for j := 0; j < rows-1; j++ {
		for i := 0; i < cols-1; i++ {
			a, b := j*cols+i, j*cols+i+1
			c, d := (j+1)*cols+i, (j+1)*cols+i+1
			triangles = append(triangles, surface.Triangle{a, b, c}, surface.Triangle{b, d, c})
		}
	}

	return surface.FromSurface(points, triangles)
}

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *verbosePtr {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	job, err := loadJob(*configPtr)
	if err != nil {
		logger.Error("loading job", slog.Any("error", err))
		os.Exit(1)
	}
	if *resolutionPtr > 0 {
		job.Resolution = *resolutionPtr
	}
	if *workersPtr > 0 {
		job.Workers = *workersPtr
	}

	model, err := syntheticSurface(job.Synthetic.Cols, job.Synthetic.Rows, job.Synthetic.Spacing)
	if err != nil {
		logger.Error("building surface", slog.Any("error", err))
		os.Exit(1)
	}

	quality := tindem.AssessQuality(model)
	fmt.Printf("Points: %d (unique %d)\n", quality.PointCount, len(model.UniquePoints()))
	fmt.Printf("Triangles: %d (expected %d, completeness %.3f)\n",
		quality.TriangleCount, quality.ExpectedTriangles, quality.CompletenessRatio())
	fmt.Printf("Point density: %.4f pts/m²\n", quality.PointDensity)
	fmt.Printf("Surface area: %.2f m² (planar %.2f m²)\n", quality.SurfaceArea, quality.PlanarArea)

	var override *surface.Bounds
	if job.Bounds != nil {
		b := surface.NewBounds(job.Bounds.MinX, job.Bounds.MaxX, job.Bounds.MinY, job.Bounds.MaxY, 0, 0)
		override = &b
	}

	r := tindem.Rasterizer{Workers: job.Workers, Logger: logger}
	dem, err := r.Generate(model, job.Resolution, override)
	if err != nil {
		logger.Error("rasterizing", slog.Any("error", err))
		os.Exit(1)
	}
	if job.EPSG != 0 {
		dem.SetEPSG(job.EPSG)
	}

	stats := dem.Statistics()
	fmt.Printf("Grid: %d rows x %d cols, geotransform %v\n", dem.Rows, dem.Cols, dem.GeoTransform())
	fmt.Printf("Elevation - Min: %.2f, Max: %.2f, Mean: %.2f, Valid: %.1f%%\n",
		stats.Min, stats.Max, stats.Mean, 100*stats.ValidRatio())
}
