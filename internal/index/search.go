package index

import (
	"math"
	"sort"
)

// Hit is a scored document reference.
type Hit struct {
	Ref   string
	Score float64
}

// Search scores the index against a query with BM25 term weighting and the
// configured per-field boosts. It exists to verify built indices in-process;
// production queries run in the consuming widget against the exported form
// using the same formula.
func (idx *Index) Search(query string, limit int) []Hit {
	scores := make(map[string]float64)
	n := float64(len(idx.refs))
	if n == 0 {
		return nil
	}

	for _, tok := range idx.analyzer.Analyze([]byte(query)) {
		byField, ok := idx.postings[string(tok.Term)]
		if !ok {
			continue
		}
		for _, f := range idx.params.Fields {
			byRef, ok := byField[f.Name]
			if !ok {
				continue
			}
			idf := computeIDF(n, float64(len(byRef)))
			for ref, tf := range byRef {
				norm := idx.tfNorm(float64(tf), float64(idx.lengths[f.Name][ref]), idx.avgLens[f.Name])
				scores[ref] += f.Boost * idf * norm
			}
		}
	}

	hits := make([]Hit, 0, len(scores))
	for ref, score := range scores {
		hits = append(hits, Hit{Ref: ref, Score: score})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Ref < hits[j].Ref
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

func computeIDF(totalDocs, docFreq float64) float64 {
	return math.Log(1 + (totalDocs-docFreq+0.5)/(docFreq+0.5))
}

func (idx *Index) tfNorm(tf, docLen, avgLen float64) float64 {
	k1, b := idx.params.K1, idx.params.B
	lengthRatio := 0.0
	if avgLen > 0 {
		lengthRatio = docLen / avgLen
	}
	return (tf * (k1 + 1)) / (tf + k1*(1-b+b*lengthRatio))
}
