package render

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/png"
	"time"

	"tg-wheel-bot/internal/game"
)

// holdLastFrame сколько держать последний кадр, в сотых секунды
const holdLastFrame = 300

// Animation рисует текущее вращение spinner кадрами с частотой fps.
// Кадры берутся через RotationAt, состояние аниматора не меняется.
// Последний кадр ровно в целевом повороте.
func (r *Renderer) Animation(sp *game.Spinner, boosted bool, fps int) *gif.GIF {
	if fps <= 0 {
		fps = 20
	}
	step := time.Second / time.Duration(fps)
	start := sp.StartedAt()
	frames := int(sp.Duration() / step)
	delay := 100 / fps

	anim := &gif.GIF{LoopCount: -1}
	for k := 0; k < frames; k++ {
		rotation := sp.RotationAt(start.Add(time.Duration(k) * step))
		anim.Image = append(anim.Image, r.Frame(rotation, boosted))
		anim.Delay = append(anim.Delay, delay)
	}

	anim.Image = append(anim.Image, r.Frame(sp.Target(), boosted))
	anim.Delay = append(anim.Delay, holdLastFrame)

	return anim
}

// EncodeGIF кодирует анимацию в байты
func EncodeGIF(anim *gif.GIF) ([]byte, error) {
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		return nil, fmt.Errorf("encode gif: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodePNG кодирует один кадр в PNG
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
