package services

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"

	_ "image/jpeg"
	_ "image/png"
)

// A signature counts as drawn once this many pixels are darker than near
// white. Matches the anti-empty-signature threshold of the capture canvas.
const signatureInkThreshold = 200

const nearWhite = 250

// IsBlankSignature reports whether a base64 signature image is missing,
// undecodable, or effectively empty (fewer than signatureInkThreshold
// non-near-white pixels).
func IsBlankSignature(b64 string) bool {
	if b64 == "" {
		return true
	}
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return true
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return true
	}

	bounds := img.Bounds()
	ink := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			if gray.Y < nearWhite {
				ink++
				if ink >= signatureInkThreshold {
					return false
				}
			}
		}
	}
	return true
}
