package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// snapshotter captures labelled PNG snapshots of the rendered frame.
// Labels queue up during Update and are written at the end of Draw.
type snapshotter struct {
	dir    string
	logger *zap.Logger
	queue  []string
	now    func() time.Time
}

func newSnapshotter(dir string, logger *zap.Logger) *snapshotter {
	if dir == "" {
		dir = "snapshots"
	}
	return &snapshotter{dir: dir, logger: logger, now: time.Now}
}

// request queues a snapshot. Safe to call from Update or Draw.
func (s *snapshotter) request(label string) {
	s.queue = append(s.queue, label)
}

// flush captures screen once for every queued label.
func (s *snapshotter) flush(screen *ebiten.Image) {
	if len(s.queue) == 0 {
		return
	}
	defer func() { s.queue = s.queue[:0] }()

	bounds := screen.Bounds()
	pixels := make([]byte, 4*bounds.Dx()*bounds.Dy())
	screen.ReadPixels(pixels)
	s.save(unpremultiply(pixels, bounds.Dx(), bounds.Dy()), s.queue)
}

// save encodes img once and writes it under every label, returning the
// paths written. Labels that collide within one frame get a numeric suffix.
func (s *snapshotter) save(img image.Image, labels []string) []string {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		s.logger.Warn("snapshot encode", zap.Error(err))
		return nil
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.logger.Warn("snapshot", zap.String("dir", s.dir), zap.Error(err))
		return nil
	}

	stamp := s.now().Format("20060102_150405")
	seen := make(map[string]int, len(labels))
	var written []string
	for _, label := range labels {
		name := slugLabel(label)
		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s-%d", name, n)
		}
		path := filepath.Join(s.dir, stamp+"_"+name+".png")
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			s.logger.Warn("snapshot", zap.String("label", label), zap.Error(err))
			continue
		}
		s.logger.Info("snapshot written", zap.String("label", label), zap.String("path", path))
		written = append(written, path)
	}
	return written
}

// unpremultiply converts premultiplied RGBA pixels to straight-alpha NRGBA.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, b, a
	}
	return img
}

// slugLabel lowercases a script label and joins its letter and digit runs
// with '-', so "After Intro!" becomes "after-intro". Empty labels become
// "snapshot".
func slugLabel(label string) string {
	words := strings.FieldsFunc(strings.ToLower(label), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	if len(words) == 0 {
		return "snapshot"
	}
	return strings.Join(words, "-")
}
