package raster

import (
	"os"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// faceKey identifies a cached face. The size is stored in quarter
// pixels so float sizes make stable map keys.
type faceKey struct {
	family string
	size   int
	bold   bool
	italic bool
}

// faceCache resolves and caches font faces. Generic families map to the
// embedded Go fonts; named families are looked up in the system font
// directories with the embedded faces covering any miss.
type faceCache struct {
	mu            sync.Mutex
	faces         map[faceKey]font.Face
	parsed        map[string]*truetype.Font
	noSystemFonts bool
}

func newFaceCache(noSystemFonts bool) *faceCache {
	return &faceCache{
		faces:         make(map[faceKey]font.Face),
		parsed:        make(map[string]*truetype.Font),
		noSystemFonts: noSystemFonts,
	}
}

// Face returns a font face for the family at the pixel size. A face is
// always returned; unknown families fall back to the embedded fonts.
func (c *faceCache) Face(family string, sizePx float64, bold, italic bool) font.Face {
	if sizePx <= 0 {
		sizePx = 12
	}
	key := faceKey{
		family: strings.ToLower(strings.TrimSpace(family)),
		size:   int(sizePx*4 + 0.5),
		bold:   bold,
		italic: italic,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if face, ok := c.faces[key]; ok {
		return face
	}

	fnt := c.resolve(key.family, bold, italic)
	face := truetype.NewFace(fnt, &truetype.Options{Size: sizePx, DPI: 72})
	c.faces[key] = face
	return face
}

func (c *faceCache) resolve(family string, bold, italic bool) *truetype.Font {
	switch family {
	case "", "sans-serif", "sans", "serif":
		return embeddedSans(bold, italic)
	case "monospace", "mono":
		return embeddedMono(bold, italic)
	}

	if !c.noSystemFonts {
		for _, name := range candidateFiles(family, bold, italic) {
			path, err := findfont.Find(name)
			if err != nil {
				continue
			}
			if fnt := c.parseFile(path); fnt != nil {
				return fnt
			}
		}
	}
	return embeddedSans(bold, italic)
}

func (c *faceCache) parseFile(path string) *truetype.Font {
	if fnt, ok := c.parsed[path]; ok {
		return fnt
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	fnt, err := truetype.Parse(data)
	if err != nil {
		// Matched a file freetype cannot parse (CFF .otf, .ttc).
		return nil
	}
	c.parsed[path] = fnt
	return fnt
}

// candidateFiles lists likely file names for a family and variant, most
// specific first. The lookup is best effort.
func candidateFiles(family string, bold, italic bool) []string {
	base := strings.ReplaceAll(family, " ", "")
	var suffixes []string
	switch {
	case bold && italic:
		suffixes = []string{"-BoldItalic.ttf", "BoldItalic.ttf", "bi.ttf"}
	case bold:
		suffixes = []string{"-Bold.ttf", "Bold.ttf", "bd.ttf"}
	case italic:
		suffixes = []string{"-Italic.ttf", "Italic.ttf", "i.ttf"}
	default:
		suffixes = []string{"-Regular.ttf"}
	}

	names := make([]string, 0, len(suffixes)+1)
	for _, s := range suffixes {
		names = append(names, base+s)
	}
	return append(names, base+".ttf")
}

// The embedded Go fonts, parsed once on first use. Parsing compile-time
// constant data cannot fail in a released binary.
var (
	embeddedOnce  sync.Once
	embeddedFonts map[string]*truetype.Font
)

func loadEmbedded() {
	parse := func(data []byte) *truetype.Font {
		fnt, err := truetype.Parse(data)
		if err != nil {
			panic("raster: embedded font failed to parse: " + err.Error())
		}
		return fnt
	}
	embeddedFonts = map[string]*truetype.Font{
		"sans":            parse(goregular.TTF),
		"sans-bold":       parse(gobold.TTF),
		"sans-italic":     parse(goitalic.TTF),
		"sans-bolditalic": parse(gobolditalic.TTF),
		"mono":            parse(gomono.TTF),
		"mono-bold":       parse(gomonobold.TTF),
		"mono-italic":     parse(gomonoitalic.TTF),
		"mono-bolditalic": parse(gomonobolditalic.TTF),
	}
}

func embeddedSans(bold, italic bool) *truetype.Font {
	embeddedOnce.Do(loadEmbedded)
	return embeddedFonts["sans"+variantSuffix(bold, italic)]
}

func embeddedMono(bold, italic bool) *truetype.Font {
	embeddedOnce.Do(loadEmbedded)
	return embeddedFonts["mono"+variantSuffix(bold, italic)]
}

func variantSuffix(bold, italic bool) string {
	switch {
	case bold && italic:
		return "-bolditalic"
	case bold:
		return "-bold"
	case italic:
		return "-italic"
	}
	return ""
}
