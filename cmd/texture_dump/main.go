// texture_dump writes every chapter's generated planet texture to PNG so the
// patterns can be reviewed without opening a window.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"

	"galaxy/core"
	"galaxy/textures"
)

func main() {
	var (
		outDir  = flag.String("out", "textures_out", "Output directory")
		seed    = flag.Int64("seed", 1, "Random seed")
		pattern = flag.String("pattern", "", "Only dump chapters with this pattern")
	)
	flag.Parse()

	var only textures.Pattern
	if *pattern != "" {
		p, err := textures.ParsePattern(*pattern)
		if err != nil {
			log.Fatalf("Invalid pattern: %v", err)
		}
		only = p
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create %s: %v", *outDir, err)
	}

	rng := rand.New(rand.NewSource(*seed))
	cat := core.DefaultCatalog()
	written := 0
	for _, ch := range cat.Chapters {
		if *pattern != "" && ch.Pattern != only {
			continue
		}
		start := time.Now()
		img := textures.Generate(ch.Pattern, ch.Color, rng)
		path := filepath.Join(*outDir, fmt.Sprintf("%s-%s.png", ch.ID, ch.Pattern))
		if err := gg.SavePNG(path, img); err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}
		fmt.Printf("%-28s %v\n", path, time.Since(start).Round(time.Millisecond))
		written++
	}
	fmt.Printf("Wrote %d textures to %s\n", written, *outDir)
}
