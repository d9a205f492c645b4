package ui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/yllada/ip-applet/common"
)

// IconConfig defines the configuration for tray icon generation.
type IconConfig struct {
	Size        int
	FillColor   color.RGBA
	BorderColor color.RGBA
	LineColor   color.RGBA
}

// OnlineIconConfig is used while at least one address is known.
func OnlineIconConfig() IconConfig {
	return IconConfig{
		Size:        common.TrayIconSize,
		FillColor:   color.RGBA{53, 132, 228, 255},  // Blue
		BorderColor: color.RGBA{98, 160, 234, 255},  // Light blue
		LineColor:   color.RGBA{255, 255, 255, 255}, // White
	}
}

// OfflineIconConfig is used when nothing is known.
func OfflineIconConfig() IconConfig {
	return IconConfig{
		Size:        common.TrayIconSize,
		FillColor:   color.RGBA{117, 117, 117, 255}, // Dark gray
		BorderColor: color.RGBA{158, 158, 158, 255}, // Gray
		LineColor:   color.RGBA{220, 220, 220, 255}, // Light gray
	}
}

// IconGenerator generates PNG globe icons for the system tray.
type IconGenerator struct {
	config IconConfig
}

// NewIconGenerator creates a new icon generator with the given config.
func NewIconGenerator(config IconConfig) *IconGenerator {
	return &IconGenerator{config: config}
}

// Generate creates a PNG icon and returns the bytes.
func (g *IconGenerator) Generate() []byte {
	size := g.config.Size
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	g.drawGlobe(img)

	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

// drawGlobe draws a disc with an equator, two parallels and a meridian ellipse.
func (g *IconGenerator) drawGlobe(img *image.RGBA) {
	size := g.config.Size
	c := float64(size) / 2
	r := c - 1.5

	inside := func(x, y float64) bool {
		dx, dy := x-c, y-c
		return dx*dx+dy*dy <= r*r
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			fx, fy := float64(x)+0.5, float64(y)+0.5
			if !inside(fx, fy) {
				continue
			}

			border := !inside(fx-1, fy) || !inside(fx+1, fy) ||
				!inside(fx, fy-1) || !inside(fx, fy+1)
			if border {
				img.Set(x, y, g.config.BorderColor)
				continue
			}

			dx, dy := fx-c, fy-c
			onEquator := math.Abs(dy) < 0.5
			onParallel := math.Abs(math.Abs(dy)-r/2) < 0.5
			onMeridian := math.Abs(dx) < 0.5
			// Ellipse with half the globe's horizontal radius.
			e := (dx*dx)/(r*r/4) + (dy*dy)/(r*r)
			onEllipse := math.Abs(e-1) < 0.18

			if onEquator || onParallel || onMeridian || onEllipse {
				img.Set(x, y, g.config.LineColor)
			} else {
				img.Set(x, y, g.config.FillColor)
			}
		}
	}
}

// GenerateOnlineIcon generates the icon shown while addresses are known.
func GenerateOnlineIcon() []byte {
	return NewIconGenerator(OnlineIconConfig()).Generate()
}

// GenerateOfflineIcon generates the icon shown when nothing is known.
func GenerateOfflineIcon() []byte {
	return NewIconGenerator(OfflineIconConfig()).Generate()
}
