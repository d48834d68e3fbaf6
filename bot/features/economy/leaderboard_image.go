package economy

import (
	"bytes"
	"fmt"
	"time"

	"cardbot/domain/entities"
	"cardbot/domain/utils"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
)

// maxNameRunes is the longest display name drawn before truncation
const maxNameRunes = 18

// LeaderboardStyle defines the visual style of the leaderboard image
type LeaderboardStyle struct {
	Width     int
	MinHeight int
	Padding   int
	RowHeight int
	Medals    [3][4]float64 // RGBA row tint for 1st, 2nd and 3rd place
}

// LeaderboardImageGenerator renders the balance leaderboard as a PNG
type LeaderboardImageGenerator struct {
	style LeaderboardStyle
}

// NewLeaderboardImageGenerator creates a generator with the default style
func NewLeaderboardImageGenerator() *LeaderboardImageGenerator {
	return &LeaderboardImageGenerator{
		style: LeaderboardStyle{
			Width:     340,
			MinHeight: 120,
			Padding:   15,
			RowHeight: 26,
			Medals: [3][4]float64{
				{1, 0.84, 0, 0.1},     // Gold
				{0.8, 0.8, 0.8, 0.08}, // Silver
				{0.8, 0.5, 0.2, 0.06}, // Bronze
			},
		},
	}
}

// Generate draws one row per entry. names maps user ids to display names.
func (g *LeaderboardImageGenerator) Generate(entries []*entities.LeaderboardEntry, names map[int64]string) ([]byte, error) {
	start := time.Now()
	defer func() {
		log.WithField("duration_ms", time.Since(start).Milliseconds()).
			WithField("row_count", len(entries)).
			Debug("Leaderboard image generation completed")
	}()

	// Header (25px) + header padding (30px) + rows + bottom padding (15px)
	height := 25 + 30 + len(entries)*g.style.RowHeight + 15
	if height < g.style.MinHeight {
		height = g.style.MinHeight
	}

	dc := gg.NewContext(g.style.Width, height)

	// Vertical gradient background
	for y := 0; y < height; y++ {
		t := float64(y) / float64(height)
		dc.SetRGB(0.02+t*0.03, 0.02+t*0.05, 0.05+t*0.1)
		dc.DrawLine(0, float64(y), float64(g.style.Width), float64(y))
		dc.Stroke()
	}

	face, err := loadFont(gomono.TTF, 12)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	boldFace, err := loadFont(gobold.TTF, 9)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	dc.SetFontFace(face)

	rankX := float64(g.style.Padding)
	nameX := rankX + 30
	balanceX := float64(g.style.Width - g.style.Padding)

	// Header
	y := float64(25)
	dc.SetRGBA(0.3, 0.3, 0.4, 0.4)
	dc.DrawRectangle(0, y-15, float64(g.style.Width), 20)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	drawSharpText(dc, "#", rankX, y, 0)
	drawSharpText(dc, "User", nameX, y, 0)
	drawSharpText(dc, "Points", balanceX, y, 1)

	dc.SetRGBA(0.6, 0.6, 0.7, 0.7)
	dc.SetLineWidth(1)
	dc.DrawLine(0, y+8, float64(g.style.Width), y+8)
	dc.Stroke()

	y += 30
	for idx, entry := range entries {
		if idx < len(g.style.Medals) {
			c := g.style.Medals[idx]
			dc.SetRGBA(c[0], c[1], c[2], c[3])
			dc.DrawRectangle(0, y-15, float64(g.style.Width), float64(g.style.RowHeight))
			dc.Fill()

			// Medal circle with the rank inside
			dc.SetRGBA(c[0], c[1], c[2], 1)
			dc.DrawCircle(rankX+5, y-4, 7)
			dc.Fill()
			dc.SetRGB(0, 0, 0)
			dc.SetFontFace(boldFace)
			dc.DrawStringAnchored(fmt.Sprintf("%d", entry.Rank), rankX+5, y-5, 0.5, 0.4)
			dc.SetFontFace(face)
		} else {
			dc.SetRGB(0.85, 0.85, 0.9)
			drawSharpText(dc, fmt.Sprintf("%d", entry.Rank), rankX, y, 0)
		}

		name := []rune(names[entry.UserID])
		if len(name) == 0 {
			name = []rune(fmt.Sprintf("User%d", entry.UserID))
		}
		if len(name) > maxNameRunes {
			name = append(name[:maxNameRunes-1], '…')
		}

		dc.SetRGB(1, 1, 1)
		drawSharpText(dc, string(name), nameX, y, 0)

		dc.SetRGB(0.85, 1, 0.85)
		drawSharpText(dc, utils.FormatShortNotation(entry.Balance), balanceX, y, 1)

		y += float64(g.style.RowHeight)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}

	return buf.Bytes(), nil
}

// drawSharpText draws text over a faint shadow. ax is the horizontal anchor (0 left, 1 right).
func drawSharpText(dc *gg.Context, text string, x, y, ax float64) {
	dc.Push()
	dc.SetRGBA(0, 0, 0, 0.5)
	dc.DrawStringAnchored(text, x+0.5, y+0.5, ax, 0)
	dc.Pop()

	dc.DrawStringAnchored(text, x, y, ax, 0)
}

// loadFont loads a font from byte data
func loadFont(fontData []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(fontData)
	if err != nil {
		return nil, err
	}

	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
