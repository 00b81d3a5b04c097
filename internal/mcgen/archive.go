package mcgen

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/reallyoldfogie/mc-voxelshape/loader"
)

// Archive writes block state records as zstd-compressed JSON lines.
type Archive struct {
	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

// CreateArchive truncates path and opens it for writing.
func CreateArchive(path string) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir archive dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create archive: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("zstd writer: %w", err)
	}
	return &Archive{f: f, enc: enc, w: bufio.NewWriterSize(enc, 128*1024)}, nil
}

func (a *Archive) Write(r loader.BlockStateRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", r.BlockID, err)
	}
	if _, err := a.w.Write(b); err != nil {
		return err
	}
	return a.w.WriteByte('\n')
}

func (a *Archive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	err := a.w.Flush()
	if cerr := a.enc.Close(); err == nil {
		err = cerr
	}
	if cerr := a.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// ReadArchive decodes every record of an archive written by Archive.
func ReadArchive(path string) ([]loader.BlockStateRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()

	var out []loader.BlockStateRecord
	jd := json.NewDecoder(dec)
	for jd.More() {
		var r loader.BlockStateRecord
		if err := jd.Decode(&r); err != nil {
			return nil, fmt.Errorf("decode record %d: %w", len(out), err)
		}
		out = append(out, r)
	}
	return out, nil
}
