package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
)

func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r := uint8((x * 255) / width)
			g := uint8((y * 255) / height)
			b := uint8((x + y) % 255)
			img.Set(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}

	return img
}

func main() {
	// Create clean JPEGs without EXIF so only the filename patterns can
	// supply a date
	img := createTestImage(400, 300)

	files := []string{
		"inbox/IMG_20240305_143000.jpg",
		"inbox/VID_20240305_143045.jpg",
		"inbox/PXL_20240305_143000123.jpg",
		"inbox/Screenshot_2024-03-05-14-30-00.jpg",
		"inbox/2024-03-05 14.30.00.jpg",
		"inbox/20240305_143000.jpg",
		"inbox/IMG-20240305-WA0012.jpg",
		"inbox/scan_2024-03-05.jpg",
		"inbox/img_20240320_120000.JPG", // Case test
		"inbox/photo.jpg",               // No date evidence at all
	}

	for _, filename := range files {
		if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
			fmt.Printf("Error creating directory for %s: %v\n", filename, err)
			continue
		}

		file, err := os.Create(filename)
		if err != nil {
			fmt.Printf("Error creating %s: %v\n", filename, err)
			continue
		}

		// Save without EXIF metadata
		options := &jpeg.Options{Quality: 85}
		if err := jpeg.Encode(file, img, options); err != nil {
			fmt.Printf("Error encoding %s: %v\n", filename, err)
		} else {
			fmt.Printf("Created clean file: %s\n", filename)
		}
		file.Close()
	}

	fmt.Println("\nClean test files created without EXIF metadata!")
	fmt.Println("Run 'narsil organize --dry-run inbox' to preview the assignments.")
}
