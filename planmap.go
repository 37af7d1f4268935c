package urbangraph

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/boljen/go-bitmap"
	"github.com/fogleman/gg"
	"github.com/unixpickle/model3d/model2d"
	"golang.org/x/image/colornames"

	"github.com/voidshard/urbangraph/internal/encoding"
	"github.com/voidshard/urbangraph/internal/geom"
)

const (
	// bit numbers for our bitmap
	bitRoad     = 0
	bitKerb     = 1
	bitBuilding = 2
	bitPark     = 3
)

// PlanMap is a top down raster of a Model. Pixel (0,0) is the top left of
// the precinct's bounding box; y grows downward (south).
type PlanMap interface {
	// Save as custom file in a format defined by the library
	Save(fpath string) error

	// SaveAdv saves as an image with the given color scheme
	SaveAdv(fpath string, scheme *ColourScheme) error

	// CustomImage returns an image with the given color scheme
	CustomImage(scheme *ColourScheme) (image.Image, error)

	IsRoad(x, y int) bool
	IsKerb(x, y int) bool
	IsBuilding(x, y int) bool
	IsPark(x, y int) bool

	// Block returns the block type & id at x,y (id -1 if there is no block)
	Block(x, y int) (BlockType, int, error)

	// PlotID returns the plot id at x,y (-1 if there is no plot)
	PlotID(x, y int) (int, error)

	// Pixel returns the pixel holding the given precinct coordinate
	Pixel(c model2d.Coord) image.Point
}

// imageMap is the PlanMap implementation over an RGBA64 image, each pixel
// holding block, plot, type & flags (see encoding.Pixel).
type imageMap struct {
	im *image.RGBA64

	// scratch image roads & kerbs are stroked on before being copied
	// into im by endDraw()
	ctx *gg.Context

	origin model2d.Coord // precinct coordinate of the top left corner
	scale  float64       // pixels per unit

	heights map[int]float64 // building height by plot id
}

// ColourScheme defines how features of a layout should be coloured.
type ColourScheme struct {
	Background color.Color
	Roads      color.Color
	Kerbs      color.Color

	// Buildings colour; if nil buildings are coloured by height (see HeightColour)
	Buildings color.Color

	Blocks map[BlockType]color.Color
}

// DefaultScheme returns a reasonable default ColourScheme.
func DefaultScheme() *ColourScheme {
	return &ColourScheme{
		Background: colornames.White,
		Roads:      colornames.Dimgray,
		Kerbs:      colornames.Black,
		Buildings:  nil,
		Blocks: map[BlockType]color.Color{
			Park:     color.RGBA{0, 153, 76, 255},
			LowRise:  colornames.Wheat,
			MidRise:  colornames.Lightsteelblue,
			HighRise: colornames.Lightslategray,
		},
	}
}

// HeightColour returns the colour band for a building of the given height,
// running red (low) through to violet (tall).
func HeightColour(height float64) color.Color {
	switch {
	case height < 10:
		return color.RGBA{204, 0, 0, 255}
	case height < 36:
		return color.RGBA{204, 102, 0, 255}
	case height < 50:
		return color.RGBA{204, 204, 0, 255}
	case height < 73:
		return color.RGBA{0, 204, 204, 255}
	case height < 91:
		return color.RGBA{0, 102, 204, 255}
	}
	return color.RGBA{102, 0, 204, 255}
}

// newMap renders the model at the given scale (pixels per unit)
func newMap(m *Model, scale float64) *imageMap {
	bnds := m.Precinct.Boundary.Bounds()
	w := int(math.Ceil(bnds.Size().X*scale)) + 1
	h := int(math.Ceil(bnds.Size().Y*scale)) + 1

	c := &imageMap{
		im:      image.NewRGBA64(image.Rect(0, 0, w, h)),
		ctx:     gg.NewContext(w, h),
		origin:  model2d.Coord{X: bnds.Lo().X, Y: bnds.Hi().Y},
		scale:   scale,
		heights: map[int]float64{},
	}

	for _, b := range m.Blocks {
		for _, p := range b.Plots {
			c.paintPlot(b, p)
		}
	}

	if m.Roads != nil {
		c.ctx.SetLineCapSquare()
		for _, r := range m.Roads.Roads {
			c.drawCurve(r.Centerline, 2*r.HalfWidth*scale, color.RGBA{255, 0, 0, 255})
		}
		for _, k := range m.Roads.Kerbs {
			c.drawCurve(k, 1, color.RGBA{0, 255, 0, 255})
		}
	}
	c.endDraw()

	return c
}

// paintPlot writes block, plot & building info for every pixel whose
// centre lies in the plot
func (c *imageMap) paintPlot(b *Block, p *Plot) {
	if p.Building != nil {
		c.heights[p.ID] = p.Building.Height
	}

	bnds := p.Face.Bounds()
	lo := c.Pixel(model2d.Coord{X: bnds.Lo().X, Y: bnds.Hi().Y})
	hi := c.Pixel(model2d.Coord{X: bnds.Hi().X, Y: bnds.Lo().Y})

	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			if c.isOutOfBounds(x, y) {
				continue
			}
			at := c.coord(x, y)
			if !p.Face.Contains(at) {
				continue
			}

			bm := encoding.NewFlags()
			if b.Type == Park {
				bm.Set(bitPark, true)
			}
			if p.Building != nil && p.Building.Footprint.Contains(at) {
				bm.Set(bitBuilding, true)
			}

			c.im.SetRGBA64(x, y, encoding.Pack(encoding.Pixel{
				Block: uint16(b.ID + 1),
				Plot:  uint32(p.ID + 1),
				Kind:  uint8(b.Type.ID()),
				Flags: bm,
			}))
		}
	}
}

// drawCurve strokes a curve on to our scratch image
func (c *imageMap) drawCurve(curve geom.Curve, width float64, col color.Color) {
	a := c.point(curve.Start)
	b := c.point(curve.End)
	c.ctx.SetColor(col)
	c.ctx.SetLineWidth(width)
	c.ctx.DrawLine(a.X, a.Y, b.X, b.Y)
	c.ctx.Stroke()
}

// endDraw copies the stroked roads & kerbs from the scratch image into
// the flags of our main image.
func (c *imageMap) endDraw() {
	temp := c.ctx.Image()
	bnds := temp.Bounds()

	for dy := bnds.Min.Y; dy < bnds.Max.Y; dy++ {
		for dx := bnds.Min.X; dx < bnds.Max.X; dx++ {
			r, g, _, _ := temp.At(dx, dy).RGBA()
			r = r >> 8
			g = g >> 8
			if r == 0 && g == 0 {
				continue
			}

			bm := c.getBM(dx, dy)
			if g > 0 {
				bm.Set(bitKerb, true)
			} else if r > 0 {
				bm.Set(bitRoad, true)
			}
			bm.Set(bitBuilding, false) // roads win over anything placed under them
			c.setBM(dx, dy, bm)
		}
	}
}

// Save the PlanMap as is to disk
func (c *imageMap) Save(fpath string) error {
	return savePNG(fpath, c.im)
}

// CustomImage returns the PlanMap coloured with the given scheme
func (c *imageMap) CustomImage(scheme *ColourScheme) (image.Image, error) {
	if scheme == nil {
		scheme = DefaultScheme()
	}
	bnds := c.im.Bounds()
	im := image.NewRGBA(bnds)

	for dy := bnds.Min.Y; dy < bnds.Max.Y; dy++ {
		for dx := bnds.Min.X; dx < bnds.Max.X; dx++ {
			px := encoding.Unpack(c.im.RGBA64At(dx, dy))
			bm := px.Flags

			if bm.Get(bitKerb) {
				im.Set(dx, dy, scheme.Kerbs)
				continue
			} else if bm.Get(bitRoad) {
				im.Set(dx, dy, scheme.Roads)
				continue
			} else if bm.Get(bitBuilding) {
				col := scheme.Buildings
				if col == nil {
					col = HeightColour(c.heights[int(px.Plot)-1])
				}
				im.Set(dx, dy, col)
				continue
			}

			if px.Block == 0 {
				if scheme.Background != nil {
					im.Set(dx, dy, scheme.Background)
				}
				continue
			}
			col, ok := scheme.Blocks[blockTypeForID(int(px.Kind))]
			if ok {
				im.Set(dx, dy, col)
			}
		}
	}

	return im, nil
}

// SaveAdv saves the PlanMap coloured with the given scheme.
func (c *imageMap) SaveAdv(fpath string, scheme *ColourScheme) error {
	im, err := c.CustomImage(scheme)
	if err != nil {
		return err
	}
	ctx := gg.NewContextForRGBA(im.(*image.RGBA))
	return ctx.SavePNG(fpath)
}

// Block returns the block type & ID at x,y
func (c *imageMap) Block(x, y int) (BlockType, int, error) {
	if c.isOutOfBounds(x, y) {
		return Park, -1, fmt.Errorf("(%d,%d) is out of bounds", x, y)
	}
	px := encoding.Unpack(c.im.RGBA64At(x, y))
	if px.Block == 0 {
		return Park, -1, nil
	}
	return blockTypeForID(int(px.Kind)), int(px.Block) - 1, nil
}

// PlotID returns the plot ID at x,y
func (c *imageMap) PlotID(x, y int) (int, error) {
	if c.isOutOfBounds(x, y) {
		return -1, fmt.Errorf("(%d,%d) is out of bounds", x, y)
	}
	px := encoding.Unpack(c.im.RGBA64At(x, y))
	return int(px.Plot) - 1, nil
}

// IsRoad returns if there is a road at x,y
func (c *imageMap) IsRoad(x, y int) bool {
	return c.flag(x, y, bitRoad)
}

// IsKerb returns if there is a kerb at x,y
func (c *imageMap) IsKerb(x, y int) bool {
	return c.flag(x, y, bitKerb)
}

// IsBuilding returns if there is a building at x,y
func (c *imageMap) IsBuilding(x, y int) bool {
	return c.flag(x, y, bitBuilding)
}

// IsPark returns if x,y is in a park block
func (c *imageMap) IsPark(x, y int) bool {
	return c.flag(x, y, bitPark)
}

// Pixel returns the pixel holding the precinct coordinate
func (c *imageMap) Pixel(at model2d.Coord) image.Point {
	p := c.point(at)
	return image.Pt(int(math.Floor(p.X)), int(math.Floor(p.Y)))
}

// point returns the (fractional) image position of a precinct coordinate
func (c *imageMap) point(at model2d.Coord) gg.Point {
	return gg.Point{
		X: (at.X - c.origin.X) * c.scale,
		Y: (c.origin.Y - at.Y) * c.scale,
	}
}

// coord returns the precinct coordinate at the centre of pixel x,y
func (c *imageMap) coord(x, y int) model2d.Coord {
	return model2d.Coord{
		X: c.origin.X + (float64(x)+0.5)/c.scale,
		Y: c.origin.Y - (float64(y)+0.5)/c.scale,
	}
}

func (c *imageMap) flag(x, y, bit int) bool {
	if c.isOutOfBounds(x, y) {
		return false
	}
	return c.getBM(x, y).Get(bit)
}

// setBM sets the 8 bit bitmap at x,y
func (c *imageMap) setBM(x, y int, bm bitmap.Bitmap) {
	px := encoding.Unpack(c.im.RGBA64At(x, y))
	px.Flags = bm
	c.im.SetRGBA64(x, y, encoding.Pack(px))
}

// getBM gets the 8 bit bitmap at x,y
func (c *imageMap) getBM(x, y int) bitmap.Bitmap {
	return encoding.Unpack(c.im.RGBA64At(x, y)).Flags
}

// isOutOfBounds determines if x,y is outside of the image area
func (c *imageMap) isOutOfBounds(x, y int) bool {
	return !image.Pt(x, y).In(c.im.Bounds())
}
