package mcgen

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/reallyoldfogie/mc-voxelshape/loader"
)

// shardRecords writes one <ns>/<block>.json file per block below outRoot.
func shardRecords(records []loader.BlockStateRecord, outRoot string) error {
	// Group by block_id
	byBlock := make(map[string][]loader.BlockStateRecordSlim)
	for _, r := range records {
		byBlock[r.BlockID] = append(byBlock[r.BlockID], r.Slim())
	}

	// Process blocks in sorted order for deterministic output
	var blockIDs []string
	for blockID := range byBlock {
		blockIDs = append(blockIDs, blockID)
	}
	sort.Strings(blockIDs)

	for _, blockID := range blockIDs {
		ns, path := splitBlockID(blockID) // e.g. "examplemod", "chair"
		outFile := filepath.Join(outRoot, ns, path+".json")
		file := loader.BlockStatesFile{
			BlockID: blockID,
			States:  byBlock[blockID],
		}
		if err := loader.WriteBlocksFile(outFile, file); err != nil {
			return fmt.Errorf("shard %s: %w", blockID, err)
		}
	}

	return nil
}

func splitBlockID(blockID string) (namespace, path string) {
	// blockID like "minecraft:oak_fence"
	parts := strings.SplitN(blockID, ":", 2)
	if len(parts) == 1 {
		return "minecraft", parts[0]
	}
	return parts[0], parts[1]
}

// writeArchive streams records into a fresh archive at path.
func writeArchive(records []loader.BlockStateRecord, path string) (err error) {
	a, err := CreateArchive(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close archive: %w", cerr)
		}
	}()
	for _, r := range records {
		if err := a.Write(r); err != nil {
			return fmt.Errorf("archive %s: %w", r.BlockID, err)
		}
	}
	return nil
}

func sortRecords(records []loader.BlockStateRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].BlockID != records[j].BlockID {
			return records[i].BlockID < records[j].BlockID
		}
		return loader.MakePropsKey(records[i].Properties) < loader.MakePropsKey(records[j].Properties)
	})
}
