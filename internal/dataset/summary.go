package dataset

// Valence-arousal classes in display order. The order is part of the
// presentation contract and is not the order the classes appear in the file.
var RefinedOrder = []string{"positive_high", "positive_low", "negative_low", "negative_high"}

// CategoryCount pairs a category with its row count.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Summary is the headline block shown under the chart.
type Summary struct {
	TotalCalls     int             `json:"total_calls"`
	AudioAvailable int             `json:"audio_available"`
	Subjects       int             `json:"subjects"`
	Contexts       int             `json:"contexts"`
	Distribution   []CategoryCount `json:"valence_arousal_distribution"`
}

// Summary computes the headline counts. Distribution lists only the
// valence-arousal classes that occur, in RefinedOrder.
func (t *Table) Summary() Summary {
	subjects, _ := t.Categories(FieldSubject)
	contexts, _ := t.Categories(FieldContext)

	s := Summary{
		TotalCalls:     t.Len(),
		AudioAvailable: t.AudioCount(),
		Subjects:       len(subjects),
		Contexts:       len(contexts),
	}
	for _, cat := range RefinedOrder {
		if n := t.Count(FieldValenceArousalRefined, cat); n > 0 {
			s.Distribution = append(s.Distribution, CategoryCount{Category: cat, Count: n})
		}
	}
	return s
}
