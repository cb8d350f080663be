package index

// ExportVersion increments when the exported structure changes shape; the
// consuming widget refuses artifacts it does not understand.
const ExportVersion = 1

// Exported is the index's native serialized form, embedded verbatim in the
// per-partition artifact. Postings reference documents by the same string
// refs listed in Refs; the artifact's document summaries must cover exactly
// that set.
type Exported struct {
	Version         int                                  `json:"version"`
	K1              float64                              `json:"k1"`
	B               float64                              `json:"b"`
	Fields          []Field                              `json:"fields"`
	Refs            []string                             `json:"refs"`
	FieldLengths    map[string]map[string]int            `json:"fieldLengths"`
	AvgFieldLengths map[string]float64                   `json:"avgFieldLengths"`
	InvertedIndex   map[string]map[string]map[string]int `json:"invertedIndex"`
}

// Export produces the serializable form. The maps are shared with the index,
// which is read-only after Build; callers must not mutate them.
func (idx *Index) Export() *Exported {
	return &Exported{
		Version:         ExportVersion,
		K1:              idx.params.K1,
		B:               idx.params.B,
		Fields:          idx.params.Fields,
		Refs:            idx.refs,
		FieldLengths:    idx.lengths,
		AvgFieldLengths: idx.avgLens,
		InvertedIndex:   idx.postings,
	}
}
