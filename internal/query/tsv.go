package query

import "bytes"

// Row is one TSV output row describing a corrected read pair.
// CorrectedBarcodes is empty for UNRECOGNIZED/INVALID; for MATCH it holds
// the single observed barcode and for ONE_ERROR the quality-sorted
// candidate list from Retrieve.
type Row struct {
	ReadName          string
	CorrectedBarcodes [][]byte
	RawBarcode        []byte
	Spacer            []byte
	Read1Seq          []byte
	Read2Seq          []byte
	QualBarcode       []byte
	QualSpacer        []byte
	Qual1             []byte
	Qual2             []byte
}

// FormatRow renders a Row as one TSV line (no trailing newline), matching
// write_tsv in bctools.cpp field for field: qname, corrected barcode list
// (comma-joined, or "*" if empty), raw barcode, spacer, then read1/read2
// sequence, then the four quality substrings.
//
// Column order is: qname, corrected, raw_barcode, spacer, read1_seq,
// read2_seq, qual_barcode, qual_spacer, qual1, qual2.
func FormatRow(r Row) string {
	var buf bytes.Buffer
	buf.WriteString(r.ReadName)
	buf.WriteByte('\t')

	if len(r.CorrectedBarcodes) == 0 {
		buf.WriteByte('*')
	} else {
		for i, bc := range r.CorrectedBarcodes {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.Write(bc)
		}
	}

	fields := [][]byte{
		r.RawBarcode, r.Spacer, r.Read1Seq, r.Read2Seq,
		r.QualBarcode, r.QualSpacer, r.Qual1, r.Qual2,
	}
	for _, f := range fields {
		buf.WriteByte('\t')
		buf.Write(f)
	}
	return buf.String()
}
