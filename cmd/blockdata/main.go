package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	get "github.com/hashicorp/go-getter"

	"github.com/OCharnyshevich/voxel-engine/pkg/blockdef"
)

// Downloads a block-definition / atlas pack and verifies the block file
// parses before anything uses it.
func main() {
	var (
		src  = flag.String("src", "", "pack source url (any go-getter scheme, e.g. git::https://... or https://...)")
		out  = flag.String("o", "./packs", "output dir path")
		name = flag.String("name", "default", "pack name, used as the output subdirectory")
	)
	flag.Parse()

	if *src == "" {
		log.Fatal("pack source url required")
	}
	if *out == "" {
		log.Fatal("output dir path required")
	}

	path := fmt.Sprintf("%s/%s", *out, *name)

	if err := os.RemoveAll(path); err != nil {
		log.Fatal(err)
	}

	log.Printf("start downloading pack %s", path)

	if err := get.Get(path, *src); err != nil {
		log.Fatal(err)
	}

	blocksPath := path + "/blocks.json"
	if _, err := os.Stat(blocksPath); err == nil {
		reg, err := blockdef.LoadFile(blocksPath)
		if err != nil {
			log.Fatalf("pack downloaded but blocks.json is invalid: %v", err)
		}
		log.Printf("pack ok: %d block definitions", len(reg.All()))
	} else {
		log.Printf("pack has no blocks.json, skipping validation")
	}

	log.Printf("done downloading pack %s", path)
}
