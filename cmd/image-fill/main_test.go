package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-fill-mcp/internal/config"
	"github.com/ironsheep/image-fill-mcp/internal/fill"
	"github.com/ironsheep/image-fill-mcp/internal/imaging"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func solid(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestParseBox(t *testing.T) {
	box, err := parseBox("1, 2,30,40")
	require.NoError(t, err)
	assert.Equal(t, fill.NewBox(1, 2, 30, 40), box)

	for _, bad := range []string{"", "1,2,3", "1,2,3,4,5", "a,2,3,4"} {
		_, err := parseBox(bad)
		assert.ErrorIs(t, err, errBoxFormat, "input %q", bad)
	}
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "photo_filled.png"), outputPath("out", "/tmp/in/photo.jpg"))
	assert.Equal(t, filepath.Join("out", "noext_filled.png"), outputPath("out", "noext"))
}

func TestMergeConfigAndFlags(t *testing.T) {
	f := newFillFlags(&bytes.Buffer{})
	require.NoError(t, f.fs.Parse([]string{"-box", "0,0,5,5", "-connectivity", "8", "-exponent", "3", "-gray", "lab"}))

	req, err := mergeConfigAndFlags(config.Default(), f)
	require.NoError(t, err)
	assert.Equal(t, fill.Eight, req.Connectivity)
	assert.Equal(t, fill.InverseDistance{Exponent: 3, Epsilon: fill.DefaultEpsilon}, req.Weigher)
	assert.Equal(t, imaging.GrayLab, req.GrayMode)
	require.NotNil(t, req.Box)
	assert.Equal(t, fill.NewBox(0, 0, 5, 5), *req.Box)
	assert.True(t, req.OmitPreview)

	f = newFillFlags(&bytes.Buffer{})
	require.NoError(t, f.fs.Parse([]string{"-gray", "sepia"}))
	_, err = mergeConfigAndFlags(config.Default(), f)
	assert.ErrorIs(t, err, imaging.ErrUnknownGrayMode)
}

func TestRunFill(t *testing.T) {
	dir := t.TempDir()
	in1 := filepath.Join(dir, "a.png")
	in2 := filepath.Join(dir, "b.png")
	writePNG(t, in1, solid(20, 20, color.RGBA{60, 60, 60, 255}))
	writePNG(t, in2, solid(16, 12, color.White))
	outDir := filepath.Join(dir, "out")

	var stderr bytes.Buffer
	code := runFill([]string{"-quiet", "-config", filepath.Join(dir, "none.toml"),
		"-box", "2,2,10,10", "-out", outDir, in1, in2}, &stderr)
	assert.Equal(t, 0, code, stderr.String())

	for _, name := range []string{"a_filled.png", "b_filled.png"} {
		f, err := os.Open(filepath.Join(outDir, name))
		require.NoError(t, err)
		img, err := png.Decode(f)
		f.Close()
		require.NoError(t, err)
		_, isGray := img.(*image.Gray)
		assert.True(t, isGray, "%s should be grayscale", name)
	}
}

func TestRunFill_Mask(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "photo.png")
	writePNG(t, in, solid(8, 8, color.White))

	mask := image.NewGray(image.Rect(0, 0, 8, 8))
	mask.SetGray(3, 3, color.Gray{Y: 255})
	maskPath := filepath.Join(dir, "mask.png")
	writePNG(t, maskPath, mask)

	var stderr bytes.Buffer
	code := runFill([]string{"-quiet", "-mask", maskPath, "-out", dir, in}, &stderr)
	assert.Equal(t, 0, code, stderr.String())
	assert.FileExists(t, filepath.Join(dir, "photo_filled.png"))
}

func TestRunFill_Errors(t *testing.T) {
	dir := t.TempDir()
	var stderr bytes.Buffer

	assert.Equal(t, 2, runFill([]string{"-box", "1,1,4,4"}, &stderr), "no input files")
	assert.Equal(t, 2, runFill([]string{"x.png"}, &stderr), "no hole region")
	assert.Equal(t, 2, runFill([]string{"-nosuchflag"}, &stderr))
	assert.Equal(t, 2, runFill([]string{"-box", "1,1", "x.png"}, &stderr))

	good := filepath.Join(dir, "good.png")
	writePNG(t, good, solid(8, 8, color.White))
	code := runFill([]string{"-quiet", "-box", "1,1,6,6", "-out", dir,
		filepath.Join(dir, "missing.png"), good}, &stderr)
	assert.Equal(t, 1, code, "a missing input fails the batch")
	assert.FileExists(t, filepath.Join(dir, "good_filled.png"), "other files are still processed")
}

func TestRunConfig(t *testing.T) {
	t.Setenv(config.EnvLogLevel, "")
	dir := t.TempDir()
	path := filepath.Join(dir, "fill.toml")
	require.NoError(t, os.WriteFile(path, []byte("[fill]\nexponent = 3\nconnectivity = 8\n"), 0o600))

	var stdout, stderr bytes.Buffer
	code := runConfig([]string{"-config", path}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	var printed config.Config
	require.NoError(t, toml.Unmarshal(stdout.Bytes(), &printed))
	assert.Equal(t, 3.0, printed.Fill.Exponent)
	assert.Equal(t, 8, printed.Fill.Connectivity)
	assert.Equal(t, "bt601", printed.Image.GrayMode)

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, loaded, printed, "printed config loads back unchanged")

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[image]\ngray_mode = \"sepia\"\n"), 0o600))
	assert.Equal(t, 1, runConfig([]string{"-config", bad}, &stdout, &stderr))
	assert.Equal(t, 2, runConfig([]string{"-nosuchflag"}, &stdout, &stderr))
}

func TestFillBatch_AdvancesAfterEachFile(t *testing.T) {
	var events []string
	failed := fillBatch([]string{"a.png", "b.png", "c.png"}, func(path string) error {
		events = append(events, "fill "+path)
		if path == "b.png" {
			return errors.New("boom")
		}
		return nil
	}, func() { events = append(events, "advance") })

	assert.Equal(t, 1, failed)
	assert.Equal(t, []string{
		"fill a.png", "advance",
		"fill b.png", "advance",
		"fill c.png", "advance",
	}, events)
}
