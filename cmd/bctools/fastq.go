package main

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
)

// fastqRecord is one de-interleaved FASTQ entry: name without the leading
// '@' or trailing comment, sequence and quality lines verbatim.
type fastqRecord struct {
	Name string
	Seq  []byte
	Qual []byte
}

// fastqReader yields successive records from a (possibly gzip-compressed)
// FASTQ file, four lines at a time.
type fastqReader struct {
	sc    *bufio.Scanner
	close func()
}

func openFastqReader(fs afero.Fs, path string) (*fastqReader, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	var r io.Reader = f
	closeFn := func() { f.Close() }
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		r = gz
		closeFn = func() { gz.Close(); f.Close() }
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &fastqReader{sc: sc, close: closeFn}, nil
}

// Next reads the next record, returning io.EOF once the file is exhausted.
func (r *fastqReader) Next() (fastqRecord, error) {
	var lines [4]string
	for i := 0; i < 4; i++ {
		if !r.sc.Scan() {
			if err := r.sc.Err(); err != nil {
				return fastqRecord{}, err
			}
			return fastqRecord{}, io.EOF
		}
		lines[i] = r.sc.Text()
	}

	name := strings.TrimPrefix(lines[0], "@")
	if sp := strings.IndexByte(name, ' '); sp >= 0 {
		name = name[:sp]
	}
	return fastqRecord{Name: name, Seq: []byte(lines[1]), Qual: []byte(lines[3])}, nil
}

func (r *fastqReader) Close() { r.close() }
