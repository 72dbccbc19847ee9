package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"
)

const logFlags = log.Ltime | log.Lshortfile

var debugLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	log.SetFlags(logFlags)

	if os.Getenv("SVGTURTLE_DEBUG") == "1" {
		debugLogger = log.New(os.Stderr, "[debug] ", log.Ltime|log.Lmsgprefix)
	}
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n", os.Args[0])
		flag.PrintDefaults()
	}
	config := flag.String("config", "", "YAML scene file")
	out := flag.String("out", "", "output file (default "+defaultScene().Image.Name+")")
	width := flag.Float64("width", 0, "canvas width in pixels")
	height := flag.Float64("height", 0, "canvas height in pixels")
	background := flag.String("bg", "", "background color")
	mode := flag.String("mode", "", "what to draw: turtle, crossings or shapes")
	flag.Parse()

	scene := defaultScene()
	if *config != "" {
		var err error
		if scene, err = loadScene(*config); err != nil {
			log.Fatalf("Failed to load scene: %v", err)
		}
	}
	scene.apply(overrides{
		out:        *out,
		background: *background,
		mode:       *mode,
		width:      *width,
		height:     *height,
	})
	if err := scene.validate(); err != nil {
		log.Fatalf("Invalid scene: %v", err)
	}

	s := seed()
	debugLogger.Printf("drawing %s into %s (seed %d)", scene.Mode, scene.Image.Name, s)
	if err := draw(scene, s); err != nil {
		log.Fatalf("Failed to draw %s: %v", scene.Mode, err)
	}
	log.Printf("Wrote %s", scene.Image.Name)
}

func seed() int64 {
	seedStr := os.Getenv("SVGTURTLE_SEED")
	seed, err := parseSeed(seedStr, time.Now().Unix())
	if err != nil {
		log.Fatalf("Invalid SVGTURTLE_SEED value '%s': %v", seedStr, err)
	}
	return seed
}

// parseSeed returns fallback when seedStr is empty.
func parseSeed(seedStr string, fallback int64) (int64, error) {
	if seedStr == "" {
		return fallback, nil
	}
	return strconv.ParseInt(seedStr, 10, 64)
}
